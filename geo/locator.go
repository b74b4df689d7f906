package geo

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"
)

const logPrefix = "geo"

var (
	ErrNoLocationFix   = fmt.Errorf("failed to obtain a valid location")
	ErrUnknownPriority = fmt.Errorf("unknown location priority")
)

// Priority trades accuracy of a fix against what the device has to offer
type Priority string

const (
	PriorityHighAccuracy Priority = "HIGH_ACCURACY"
	PriorityBalanced     Priority = "BALANCED_POWER_ACCURACY"
)

// ParsePriority defaults to high accuracy
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PriorityHighAccuracy:
		return PriorityHighAccuracy, nil
	case PriorityBalanced:
		return PriorityBalanced, nil
	}
	return "", ErrUnknownPriority
}

type WiFiAccessPoint struct {
	MACAddress     string  `json:"mac_address"`
	SignalStrength float64 `json:"signal_strength"`
}

type CellTower struct {
	CellID            int `json:"cell_id"`
	LocationAreaCode  int `json:"location_area_code"`
	MobileCountryCode int `json:"mobile_country_code"`
	MobileNetworkCode int `json:"mobile_network_code"`
}

// LocateRequest carries what a device observed around it
type LocateRequest struct {
	Priority         Priority          `json:"priority"`
	ConsiderIP       bool              `json:"consider_ip"`
	WiFiAccessPoints []WiFiAccessPoint `json:"wifi_access_points"`
	CellTowers       []CellTower       `json:"cell_towers"`
}

// Fix is a resolved position with its accuracy radius in meters
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// Locator resolves the current position of a device in one shot
type Locator interface {
	CurrentLocation(LocateRequest) (*Fix, error)
}

// geolocater is the part of *maps.Client used for geolocation
type geolocater interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// GoogleLocator resolves positions with the Google Geolocation API
type GoogleLocator struct {
	client geolocater

	// maximum accepted accuracy radius per priority, in meters
	maxAccuracy map[Priority]float64
}

func NewGoogleLocator(client *maps.Client, highAccuracy, balancedAccuracy float64) *GoogleLocator {
	return newGoogleLocator(client, highAccuracy, balancedAccuracy)
}

func newGoogleLocator(client geolocater, highAccuracy, balancedAccuracy float64) *GoogleLocator {
	return &GoogleLocator{
		client: client,
		maxAccuracy: map[Priority]float64{
			PriorityHighAccuracy: highAccuracy,
			PriorityBalanced:     balancedAccuracy,
		},
	}
}

func (g *GoogleLocator) CurrentLocation(r LocateRequest) (*Fix, error) {
	priority, err := ParsePriority(string(r.Priority))
	if err != nil {
		return nil, err
	}

	req := &maps.GeolocationRequest{
		ConsiderIP: r.ConsiderIP,
	}
	for _, ap := range r.WiFiAccessPoints {
		req.WiFiAccessPoints = append(req.WiFiAccessPoints, maps.WiFiAccessPoint{
			MACAddress:     ap.MACAddress,
			SignalStrength: ap.SignalStrength,
		})
	}
	for _, t := range r.CellTowers {
		req.CellTowers = append(req.CellTowers, maps.CellTower{
			CellID:            t.CellID,
			LocationAreaCode:  t.LocationAreaCode,
			MobileCountryCode: t.MobileCountryCode,
			MobileNetworkCode: t.MobileNetworkCode,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := g.client.Geolocate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return nil, ErrNoLocationFix
	}

	if limit := g.maxAccuracy[priority]; limit > 0 && result.Accuracy > limit {
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"priority": priority,
			"accuracy": result.Accuracy,
			"limit":    limit,
		}).Warn("location fix is not accurate enough")
		return nil, ErrNoLocationFix
	}

	return &Fix{
		Latitude:  result.Location.Lat,
		Longitude: result.Location.Lng,
		Accuracy:  result.Accuracy,
	}, nil
}
