package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type GeoFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

// GeoJSON is a feature collection of dump sites published as open data
type GeoJSON struct {
	Name     string       `json:"name"`
	Features []GeoFeature `json:"features"`
}

// Decode reads a feature collection
func Decode(r io.Reader) (*GeoJSON, error) {
	var result GeoJSON
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func stringProperty(props map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Reports converts point features into dump reports. Features which are not
// points or have no description are returned as errors and skipped.
func (g *GeoJSON) Reports(reportedBy string, now time.Time) ([]schema.Report, []error) {
	reports := make([]schema.Report, 0, len(g.Features))
	var errs []error

	for i, f := range g.Features {
		if f.Geometry.Type != "Point" || len(f.Geometry.Coordinates) < 2 {
			errs = append(errs, fmt.Errorf("feature %d: not a point", i))
			continue
		}

		loc := schema.Location{
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
		}
		if err := loc.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("feature %d: %s", i, err))
			continue
		}

		description := stringProperty(f.Properties, "description", "name", "popis")
		if description == "" {
			errs = append(errs, fmt.Errorf("feature %d: missing description", i))
			continue
		}

		accessibility, err := schema.ParseAccessibilityLevel(stringProperty(f.Properties, "accessibility"))
		if err != nil {
			errs = append(errs, fmt.Errorf("feature %d: %s", i, err))
			continue
		}

		reports = append(reports, schema.Report{
			Description:   description,
			Accessibility: accessibility,
			Location:      schema.NewGeoJSONPoint(loc),
			Address:       stringProperty(f.Properties, "address"),
			PhotoURL:      stringProperty(f.Properties, "photo_url"),
			ReportedBy:    reportedBy,
			Timestamp:     now.UnixNano() / int64(time.Millisecond),
		})
	}

	return reports, errs
}
