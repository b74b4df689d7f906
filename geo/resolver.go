package geo

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

const (
	defaultTimeout = 5 * time.Second
)

var (
	ErrNoGeoInfoFound = fmt.Errorf("no geo information found")
)

var (
	US = "United States"
)

// LocationResolver - interface for resolving location
type LocationResolver interface {
	GetPoliticalInfo(schema.Location) (schema.Location, error)
}

// geocoder is the part of *maps.Client used for reverse geocoding
type geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type GeocodingLocationResolver struct {
	client geocoder
}

func NewGeocodingLocationResolver(client *maps.Client) *GeocodingLocationResolver {
	return &GeocodingLocationResolver{
		client: client,
	}
}

// GetPoliticalInfo fills the address, country, state and county of a location
func (g *GeocodingLocationResolver) GetPoliticalInfo(loc schema.Location) (schema.Location, error) {
	if loc.Address != "" {
		return loc, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		Language: "en",
	})
	if nil != err {
		return loc, err
	}

	if len(geos) == 0 {
		return loc, ErrNoGeoInfoFound
	}

	var level1, level2 string
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) > 0 {
			switch a.Types[0] {
			case "administrative_area_level_1":
				level1 = a.LongName
			case "administrative_area_level_2":
				level2 = a.LongName
			case "country":
				loc.Country = a.LongName
			}
		}
	}

	loc.Address = geos[0].FormattedAddress
	loc.County = level2

	switch loc.Country {
	case US:
		loc.State = level1
	default:
		if loc.County == "" {
			loc.County = level1
		}
	}

	return loc, nil
}
