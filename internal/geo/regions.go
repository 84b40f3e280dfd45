package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aayushkhanna09/rahi-app/models"
)

// DefaultBoundaries returns the built-in simplified Indian state rectangles.
// These are intentionally coarse boxes, not exact administrative borders, so
// overlaps are possible; the resolver's first-match rule keeps resolution
// deterministic regardless.
func DefaultBoundaries() []models.RegionBoundary {
	return []models.RegionBoundary{
		rectangle("Delhi", "DL", 76.8, 28.2, 77.6, 29.0),
		rectangle("Maharashtra", "MH", 72.0, 18.0, 74.0, 20.0),
		rectangle("Karnataka", "KA", 76.5, 12.0, 78.5, 14.0),
		rectangle("Rajasthan", "RJ", 74.0, 25.0, 77.0, 28.0),
		rectangle("Goa", "GA", 73.5, 14.5, 74.5, 16.0),
	}
}

func rectangle(name, code string, minLon, minLat, maxLon, maxLat float64) models.RegionBoundary {
	ring := []models.GeoPoint{
		{Lon: minLon, Lat: minLat},
		{Lon: maxLon, Lat: minLat},
		{Lon: maxLon, Lat: maxLat},
		{Lon: minLon, Lat: maxLat},
		{Lon: minLon, Lat: minLat},
	}
	return models.RegionBoundary{
		Name:     name,
		Code:     code,
		Polygons: []models.Polygon{{Rings: [][]models.GeoPoint{ring}}},
	}
}

// GeoJSON wire types for dataset overrides.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string `json:"type"`
	Properties struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// LoadBoundaries reads a GeoJSON FeatureCollection of Polygon or MultiPolygon
// features. Feature order in the file is the canonical resolution order.
func LoadBoundaries(path string) ([]models.RegionBoundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region dataset: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse region dataset: %w", err)
	}

	var boundaries []models.RegionBoundary
	for _, f := range fc.Features {
		if f.Properties.Name == "" {
			return nil, fmt.Errorf("region dataset feature missing name")
		}

		boundary := models.RegionBoundary{
			Name: f.Properties.Name,
			Code: f.Properties.StateCode,
		}

		switch f.Geometry.Type {
		case "Polygon":
			var coords [][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("invalid polygon for %s: %w", boundary.Name, err)
			}
			boundary.Polygons = []models.Polygon{polygonFromCoords(coords)}
		case "MultiPolygon":
			var coords [][][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &coords); err != nil {
				return nil, fmt.Errorf("invalid multipolygon for %s: %w", boundary.Name, err)
			}
			for _, part := range coords {
				boundary.Polygons = append(boundary.Polygons, polygonFromCoords(part))
			}
		default:
			return nil, fmt.Errorf("unsupported geometry %q for %s", f.Geometry.Type, boundary.Name)
		}

		boundaries = append(boundaries, boundary)
	}

	if len(boundaries) == 0 {
		return nil, fmt.Errorf("region dataset contains no features")
	}

	return boundaries, nil
}

// polygonFromCoords converts GeoJSON [lon, lat] rings.
func polygonFromCoords(coords [][][2]float64) models.Polygon {
	var poly models.Polygon
	for _, ring := range coords {
		points := make([]models.GeoPoint, len(ring))
		for i, pair := range ring {
			points[i] = models.GeoPoint{Lon: pair[0], Lat: pair[1]}
		}
		poly.Rings = append(poly.Rings, points)
	}
	return poly
}
