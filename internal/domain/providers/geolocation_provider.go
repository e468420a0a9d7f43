package providers

import (
	"context"
)

// GeolocationProvider defines the interface for place search, geocoding
// and routing. The production adapter proxies AWS Location Service; a
// mock adapter serves development and tests.
type GeolocationProvider interface {
	// SearchPlaces finds places matching a free-text query
	SearchPlaces(ctx context.Context, text string, bias *Coordinates) ([]*Place, error)

	// SuggestPlaces returns autocomplete suggestions for a partial query
	SuggestPlaces(ctx context.Context, text string, bias *Coordinates) ([]*Suggestion, error)

	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodedAddress, error)

	// GetPlace returns the details for a place identifier
	GetPlace(ctx context.Context, placeID string) (*Place, error)

	// CalculateRoute computes a route between two points
	CalculateRoute(ctx context.Context, from, to Coordinates) (*Route, error)

	// CalculateDistance calculates the distance between two points in kilometers
	CalculateDistance(ctx context.Context, from, to Coordinates) (float64, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string      `json:"formattedAddress"`
	Street           string      `json:"street,omitempty"`
	Barangay         string      `json:"barangay,omitempty"`
	City             string      `json:"city,omitempty"`
	Region           string      `json:"region,omitempty"`
	PostalCode       string      `json:"postalCode,omitempty"`
	Country          string      `json:"country,omitempty"`
	Coordinates      Coordinates `json:"coordinates"`
}

// Place represents a geographical place
type Place struct {
	ID          string      `json:"placeId"`
	Label       string      `json:"label"`
	Address     string      `json:"address,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	Categories  []string    `json:"categories,omitempty"`
}

// Suggestion is an autocomplete entry; the place ID may be empty when
// the upstream index cannot resolve one for the text.
type Suggestion struct {
	PlaceID string `json:"placeId,omitempty"`
	Text    string `json:"text"`
}

// Route is a computed route summary between two points.
type Route struct {
	DistanceKm      float64       `json:"distanceKm"`
	DurationSeconds float64       `json:"durationSeconds"`
	Geometry        []Coordinates `json:"geometry,omitempty"`
}
