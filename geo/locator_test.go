package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"
)

type fakeGeolocater struct {
	request *maps.GeolocationRequest
	result  *maps.GeolocationResult
	err     error
}

func (f *fakeGeolocater) Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error) {
	f.request = r
	return f.result, f.err
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHighAccuracy, p)

	p, err = ParsePriority("balanced_power_accuracy")
	assert.NoError(t, err)
	assert.Equal(t, PriorityBalanced, p)

	_, err = ParsePriority("LOW_POWER")
	assert.Equal(t, ErrUnknownPriority, err)
}

func TestCurrentLocation(t *testing.T) {
	f := &fakeGeolocater{
		result: &maps.GeolocationResult{
			Location: maps.LatLng{Lat: 48.1486, Lng: 17.1077},
			Accuracy: 40,
		},
	}
	l := newGoogleLocator(f, 100, 2000)

	fix, err := l.CurrentLocation(LocateRequest{
		ConsiderIP: true,
		WiFiAccessPoints: []WiFiAccessPoint{
			{MACAddress: "00:25:9c:cf:1c:ac", SignalStrength: -43},
		},
		CellTowers: []CellTower{
			{CellID: 42, LocationAreaCode: 415, MobileCountryCode: 231, MobileNetworkCode: 1},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, &Fix{Latitude: 48.1486, Longitude: 17.1077, Accuracy: 40}, fix)

	assert.True(t, f.request.ConsiderIP)
	assert.Equal(t, "00:25:9c:cf:1c:ac", f.request.WiFiAccessPoints[0].MACAddress)
	assert.Equal(t, 231, f.request.CellTowers[0].MobileCountryCode)
}

func TestCurrentLocationRejectsInaccurateFix(t *testing.T) {
	f := &fakeGeolocater{
		result: &maps.GeolocationResult{
			Location: maps.LatLng{Lat: 48.1486, Lng: 17.1077},
			Accuracy: 1500,
		},
	}
	l := newGoogleLocator(f, 100, 2000)

	_, err := l.CurrentLocation(LocateRequest{Priority: PriorityHighAccuracy})
	assert.Equal(t, ErrNoLocationFix, err)

	fix, err := l.CurrentLocation(LocateRequest{Priority: PriorityBalanced})
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, fix.Accuracy)
}

func TestCurrentLocationErrors(t *testing.T) {
	l := newGoogleLocator(&fakeGeolocater{}, 100, 2000)
	_, err := l.CurrentLocation(LocateRequest{})
	assert.Equal(t, ErrNoLocationFix, err)

	providerErr := errors.New("quota exceeded")
	l = newGoogleLocator(&fakeGeolocater{err: providerErr}, 100, 2000)
	_, err = l.CurrentLocation(LocateRequest{})
	assert.Equal(t, providerErr, err)

	_, err = l.CurrentLocation(LocateRequest{Priority: "PASSIVE"})
	assert.Equal(t, ErrUnknownPriority, err)
}
