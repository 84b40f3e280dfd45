package geo

import (
	"math"

	"github.com/aayushkhanna09/rahi-app/models"
)

// UnknownRegion is the sentinel returned when a fix lies outside every
// boundary. Unknown check-ins never count toward travel progress.
const UnknownRegion = "Unknown"

// Resolver maps a GPS fix to the name of the containing region boundary.
// Boundaries are tested in canonical dataset order and the first match wins,
// so overlaps in the simplified region data resolve deterministically.
type Resolver struct {
	boundaries []models.RegionBoundary
	bboxes     [][4]float64 // minLon, minLat, maxLon, maxLat per boundary
}

// NewResolver builds a resolver over a fixed boundary set. The slice is not
// copied; boundaries must not be mutated afterwards.
func NewResolver(boundaries []models.RegionBoundary) *Resolver {
	bboxes := make([][4]float64, len(boundaries))
	for i, boundary := range boundaries {
		bboxes[i] = boundingBox(boundary)
	}
	return &Resolver{boundaries: boundaries, bboxes: bboxes}
}

// Resolve returns the name of the first boundary containing the fix, or
// UnknownRegion if none does. Pure function: no I/O, never fails.
func (r *Resolver) Resolve(fix models.GeoFix) string {
	if !validFix(fix) {
		return UnknownRegion
	}

	for i, boundary := range r.boundaries {
		if !inBBox(fix, r.bboxes[i]) {
			continue
		}
		for _, poly := range boundary.Polygons {
			if pointInPolygon(fix, poly) {
				return boundary.Name
			}
		}
	}
	return UnknownRegion
}

// Boundaries returns the canonical boundary list in resolution order.
func (r *Resolver) Boundaries() []models.RegionBoundary {
	return r.boundaries
}

func validFix(fix models.GeoFix) bool {
	if math.IsNaN(fix.Latitude) || math.IsNaN(fix.Longitude) ||
		math.IsInf(fix.Latitude, 0) || math.IsInf(fix.Longitude, 0) {
		return false
	}
	return fix.Latitude >= -90 && fix.Latitude <= 90 &&
		fix.Longitude >= -180 && fix.Longitude <= 180
}

// pointInPolygon reports containment with hole support: the point must be
// inside the outer ring and outside every hole ring.
func pointInPolygon(fix models.GeoFix, poly models.Polygon) bool {
	if len(poly.Rings) == 0 {
		return false
	}
	if !pointInRing(fix, poly.Rings[0]) {
		return false
	}
	for i := 1; i < len(poly.Rings); i++ {
		if pointInRing(fix, poly.Rings[i]) {
			return false
		}
	}
	return true
}

// pointInRing is the even-odd ray casting test. The small epsilon guards the
// division when an edge is horizontal.
func pointInRing(fix models.GeoFix, ring []models.GeoPoint) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	x := fix.Longitude
	y := fix.Latitude
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi) {
			inside = !inside
		}
	}
	return inside
}

func inBBox(fix models.GeoFix, b [4]float64) bool {
	return fix.Longitude >= b[0] && fix.Longitude <= b[2] &&
		fix.Latitude >= b[1] && fix.Latitude <= b[3]
}

func boundingBox(boundary models.RegionBoundary) [4]float64 {
	box := [4]float64{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, poly := range boundary.Polygons {
		if len(poly.Rings) == 0 {
			continue
		}
		for _, pt := range poly.Rings[0] {
			box[0] = math.Min(box[0], pt.Lon)
			box[1] = math.Min(box[1], pt.Lat)
			box[2] = math.Max(box[2], pt.Lon)
			box[3] = math.Max(box[3], pt.Lat)
		}
	}
	return box
}
