package models

// BadgeTier awards a badge once a user's visited-region count reaches
// MinRegions. Tiers are cumulative: reaching a higher tier never removes a
// lower one.
type BadgeTier struct {
	Name       string
	MinRegions int
}

// DefaultBadgeTiers is the canonical monotonic threshold table, ordered by
// ascending threshold.
var DefaultBadgeTiers = []BadgeTier{
	{Name: "Bronze Explorer", MinRegions: 1},
	{Name: "Silver Nomad", MinRegions: 3},
	{Name: "Golden Voyager", MinRegions: 5},
}

// BadgesForCount returns every badge earned at the given visited-region count.
func BadgesForCount(tiers []BadgeTier, count int) []string {
	var earned []string
	for _, tier := range tiers {
		if count >= tier.MinRegions {
			earned = append(earned, tier.Name)
		}
	}
	return earned
}
