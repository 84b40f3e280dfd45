package models

// GeoFix is a single GPS observation reported by a device. It is consumed by
// the check-in flow and optionally denormalized into the resulting post; it is
// never persisted on its own.
type GeoFix struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// GeoPoint is a single polygon vertex in WGS84 degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Polygon is one part of a region boundary. Rings follow the GeoJSON
// convention: the first ring is the outer boundary, any further rings are
// holes.
type Polygon struct {
	Rings [][]GeoPoint `json:"rings"`
}

// RegionBoundary is a named administrative region. Multi-part regions carry
// one Polygon per part. Boundaries are loaded once at startup and never
// mutated.
type RegionBoundary struct {
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	Polygons []Polygon `json:"polygons"`
}
