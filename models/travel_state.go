package models

// TravelState is a user's cumulative travel record. A missing document is
// equivalent to one with empty sets. VisitedRegions and Badges only ever grow;
// both are mutated exclusively through set-union merges.
type TravelState struct {
	UserID         string   `json:"user_id" bson:"_id"`
	VisitedRegions []string `json:"visited_regions" bson:"visited_regions"`
	Badges         []string `json:"badges" bson:"badges"`
}

func (t *TravelState) HasVisited(region string) bool {
	for _, r := range t.VisitedRegions {
		if r == region {
			return true
		}
	}
	return false
}

func (t *TravelState) HasBadge(badge string) bool {
	for _, b := range t.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
