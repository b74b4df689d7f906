package schema

import "fmt"

// Location is a latitude / longitude pair as sent by clients
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Address   string  `json:"address,omitempty" bson:"address,omitempty"`
	Country   string  `json:"country,omitempty" bson:"country,omitempty"`
	State     string  `json:"state,omitempty" bson:"state,omitempty"`
	County    string  `json:"county,omitempty" bson:"county,omitempty"`
}

// Validate checks the coordinates are within the valid ranges
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range", l.Longitude)
	}
	return nil
}

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoJSONPoint converts a location into a GeoJSON point. GeoJSON orders
// coordinates as [longitude, latitude].
func NewGeoJSONPoint(loc Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{loc.Longitude, loc.Latitude},
	}
}

// Location returns the point as a latitude / longitude pair. It returns nil
// if the point is malformed.
func (g *GeoJSON) Location() *Location {
	if g == nil || len(g.Coordinates) != 2 {
		return nil
	}
	return &Location{
		Latitude:  g.Coordinates[1],
		Longitude: g.Coordinates[0],
	}
}
