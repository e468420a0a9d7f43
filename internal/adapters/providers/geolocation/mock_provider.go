package geolocation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// MockGeolocationProvider serves development and tests with canned
// places around Metro Manila.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider.
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

var mockPlaces = []*providers.Place{
	{
		ID:          "mock-brgy-commonwealth",
		Label:       "Barangay Commonwealth, Quezon City",
		Address:     "Commonwealth Ave, Quezon City, Metro Manila",
		Coordinates: providers.Coordinates{Latitude: 14.6969, Longitude: 121.0862},
	},
	{
		ID:          "mock-brgy-bagumbayan",
		Label:       "Barangay Bagumbayan, Taguig",
		Address:     "Bagumbayan, Taguig, Metro Manila",
		Coordinates: providers.Coordinates{Latitude: 14.5243, Longitude: 121.0792},
	},
	{
		ID:          "mock-pasig-river",
		Label:       "Pasig River, Manila",
		Address:     "Pasig River, Manila, Metro Manila",
		Coordinates: providers.Coordinates{Latitude: 14.5896, Longitude: 120.9810},
	},
	{
		ID:          "mock-brgy-poblacion",
		Label:       "Barangay Poblacion, Makati",
		Address:     "Poblacion, Makati, Metro Manila",
		Coordinates: providers.Coordinates{Latitude: 14.5657, Longitude: 121.0322},
	},
}

// SearchPlaces matches canned places by substring.
func (m *MockGeolocationProvider) SearchPlaces(ctx context.Context, text string, bias *providers.Coordinates) ([]*providers.Place, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("search text is required")
	}

	var matches []*providers.Place
	lower := strings.ToLower(trimmed)
	for _, place := range mockPlaces {
		if strings.Contains(strings.ToLower(place.Label), lower) {
			matches = append(matches, place)
		}
	}
	if matches == nil {
		matches = mockPlaces
	}
	return matches, nil
}

// SuggestPlaces returns suggestions derived from the canned places.
func (m *MockGeolocationProvider) SuggestPlaces(ctx context.Context, text string, bias *providers.Coordinates) ([]*providers.Suggestion, error) {
	places, err := m.SearchPlaces(ctx, text, bias)
	if err != nil {
		return nil, err
	}
	suggestions := make([]*providers.Suggestion, 0, len(places))
	for _, place := range places {
		suggestions = append(suggestions, &providers.Suggestion{
			PlaceID: place.ID,
			Text:    place.Label,
		})
	}
	return suggestions, nil
}

// ReverseGeocode returns a synthetic address echoing the coordinates.
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%.5f, %.5f, Quezon City, Metro Manila", lat, lon),
		Barangay:         "Commonwealth",
		City:             "Quezon City",
		Region:           "Metro Manila",
		Country:          "PHL",
		Coordinates:      providers.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}

// GetPlace returns the canned place with the given ID.
func (m *MockGeolocationProvider) GetPlace(ctx context.Context, placeID string) (*providers.Place, error) {
	for _, place := range mockPlaces {
		if place.ID == placeID {
			return place, nil
		}
	}
	return nil, apperrors.NewNotFoundError("place not found")
}

// CalculateRoute returns a straight-line route between the points.
func (m *MockGeolocationProvider) CalculateRoute(ctx context.Context, from, to providers.Coordinates) (*providers.Route, error) {
	distance := haversineKm(from, to)
	return &providers.Route{
		DistanceKm:      distance,
		DurationSeconds: distance / 30.0 * 3600, // 30 km/h city traffic
		Geometry:        []providers.Coordinates{from, to},
	}, nil
}

// CalculateDistance computes straight-line distance in kilometers.
func (m *MockGeolocationProvider) CalculateDistance(ctx context.Context, from, to providers.Coordinates) (float64, error) {
	return haversineKm(from, to), nil
}

func haversineKm(from, to providers.Coordinates) float64 {
	const earthRadiusKm = 6371.0

	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
