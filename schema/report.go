package schema

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportCollection = "quick_dump_reports"
)

// AccessibilityLevel describes how hard it is to reach a dump site
type AccessibilityLevel string

const (
	AccessibilityEasy   AccessibilityLevel = "EASY"
	AccessibilityMedium AccessibilityLevel = "MEDIUM"
	AccessibilityHard   AccessibilityLevel = "HARD"
)

// AccessibilityLevels lists every level in the order clients present them
var AccessibilityLevels = []AccessibilityLevel{
	AccessibilityEasy,
	AccessibilityMedium,
	AccessibilityHard,
}

// ParseAccessibilityLevel parses a level case-insensitively. An empty value
// falls back to EASY.
func ParseAccessibilityLevel(s string) (AccessibilityLevel, error) {
	if strings.TrimSpace(s) == "" {
		return AccessibilityEasy, nil
	}

	level := AccessibilityLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range AccessibilityLevels {
		if l == level {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown accessibility level: %s", s)
}

// Report is a dump site reported by a user. It is created on submission,
// removed on cleanup and never updated in place.
type Report struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Description   string             `json:"description" bson:"description"`
	Accessibility AccessibilityLevel `json:"accessibility" bson:"accessibility"`
	Location      *GeoJSON           `json:"location" bson:"location,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Country       string             `json:"country,omitempty" bson:"country,omitempty"`
	State         string             `json:"state,omitempty" bson:"state,omitempty"`
	County        string             `json:"county,omitempty" bson:"county,omitempty"`
	PhotoURL      string             `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	ReportedBy    string             `json:"reported_by,omitempty" bson:"reported_by,omitempty"`
	Timestamp     int64              `json:"ts" bson:"ts"`
}
