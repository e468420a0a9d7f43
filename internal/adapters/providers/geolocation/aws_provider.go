package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/aws-sdk-go-v2/service/location/types"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const (
	defaultMaxResults     = 10
	searchCacheTTL        = 60 * 60      // 1 hour
	reverseCacheTTL       = 60 * 60 * 24 // positions do not move
	defaultCountryFilter  = "PHL"
	defaultSuggestResults = 5
)

// LocationAPI is the slice of the AWS Location Service client the
// provider uses.
type LocationAPI interface {
	SearchPlaceIndexForText(ctx context.Context, params *location.SearchPlaceIndexForTextInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForTextOutput, error)
	SearchPlaceIndexForSuggestions(ctx context.Context, params *location.SearchPlaceIndexForSuggestionsInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForSuggestionsOutput, error)
	SearchPlaceIndexForPosition(ctx context.Context, params *location.SearchPlaceIndexForPositionInput, optFns ...func(*location.Options)) (*location.SearchPlaceIndexForPositionOutput, error)
	GetPlace(ctx context.Context, params *location.GetPlaceInput, optFns ...func(*location.Options)) (*location.GetPlaceOutput, error)
	CalculateRoute(ctx context.Context, params *location.CalculateRouteInput, optFns ...func(*location.Options)) (*location.CalculateRouteOutput, error)
}

// AWSGeolocationProvider implements GeolocationProvider against AWS
// Location Service. Geocoding results are cached in Redis keyed by a
// hash of the query; the cache is optional and lookups degrade to the
// upstream call when it is nil or down.
type AWSGeolocationProvider struct {
	client     LocationAPI
	cache      providers.CacheProvider
	placeIndex string
	calculator string
}

// NewAWSGeolocationProvider creates a new AWS Location provider.
func NewAWSGeolocationProvider(client LocationAPI, cache providers.CacheProvider, placeIndex, calculator string) providers.GeolocationProvider {
	return &AWSGeolocationProvider{
		client:     client,
		cache:      cache,
		placeIndex: placeIndex,
		calculator: calculator,
	}
}

// SearchPlaces finds places matching a free-text query.
func (p *AWSGeolocationProvider) SearchPlaces(ctx context.Context, text string, bias *providers.Coordinates) ([]*providers.Place, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("search text is required")
	}

	cacheKey := "geo:v1:search:" + hashKey(strings.ToLower(trimmed)+biasKey(bias))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var places []*providers.Place
			if err := json.Unmarshal(cached, &places); err == nil {
				return places, nil
			}
		}
	}

	input := &location.SearchPlaceIndexForTextInput{
		IndexName:       aws.String(p.placeIndex),
		Text:            aws.String(trimmed),
		MaxResults:      aws.Int32(defaultMaxResults),
		FilterCountries: []string{defaultCountryFilter},
	}
	if bias != nil {
		input.BiasPosition = []float64{bias.Longitude, bias.Latitude}
	}

	out, err := p.client.SearchPlaceIndexForText(ctx, input)
	if err != nil {
		return nil, apperrors.NewExternalError("place search failed", err)
	}

	places := make([]*providers.Place, 0, len(out.Results))
	for _, result := range out.Results {
		places = append(places, placeFromResult(result.PlaceId, result.Place))
	}

	p.cacheSet(ctx, cacheKey, places, searchCacheTTL)
	return places, nil
}

// SuggestPlaces returns autocomplete suggestions for a partial query.
func (p *AWSGeolocationProvider) SuggestPlaces(ctx context.Context, text string, bias *providers.Coordinates) ([]*providers.Suggestion, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("search text is required")
	}

	input := &location.SearchPlaceIndexForSuggestionsInput{
		IndexName:       aws.String(p.placeIndex),
		Text:            aws.String(trimmed),
		MaxResults:      aws.Int32(defaultSuggestResults),
		FilterCountries: []string{defaultCountryFilter},
	}
	if bias != nil {
		input.BiasPosition = []float64{bias.Longitude, bias.Latitude}
	}

	out, err := p.client.SearchPlaceIndexForSuggestions(ctx, input)
	if err != nil {
		return nil, apperrors.NewExternalError("place suggestion failed", err)
	}

	suggestions := make([]*providers.Suggestion, 0, len(out.Results))
	for _, result := range out.Results {
		s := &providers.Suggestion{Text: aws.ToString(result.Text)}
		if result.PlaceId != nil {
			s.PlaceID = *result.PlaceId
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// ReverseGeocode converts coordinates to an address.
func (p *AWSGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	cacheKey := "geo:v1:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var addr providers.GeocodedAddress
			if err := json.Unmarshal(cached, &addr); err == nil && addr.FormattedAddress != "" {
				return &addr, nil
			}
		}
	}

	out, err := p.client.SearchPlaceIndexForPosition(ctx, &location.SearchPlaceIndexForPositionInput{
		IndexName:  aws.String(p.placeIndex),
		Position:   []float64{lon, lat},
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("reverse geocoding failed", err)
	}
	if len(out.Results) == 0 {
		return nil, apperrors.NewNotFoundError("no address found for coordinates")
	}

	addr := addressFromPlace(out.Results[0].Place)
	p.cacheSet(ctx, cacheKey, addr, reverseCacheTTL)
	return addr, nil
}

// GetPlace returns the details for a place identifier.
func (p *AWSGeolocationProvider) GetPlace(ctx context.Context, placeID string) (*providers.Place, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, apperrors.NewValidationError("place id is required")
	}

	out, err := p.client.GetPlace(ctx, &location.GetPlaceInput{
		IndexName: aws.String(p.placeIndex),
		PlaceId:   aws.String(placeID),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("place lookup failed", err)
	}
	if out.Place == nil {
		return nil, apperrors.NewNotFoundError("place not found")
	}

	id := placeID
	return placeFromResult(&id, out.Place), nil
}

// CalculateRoute computes a route between two points.
func (p *AWSGeolocationProvider) CalculateRoute(ctx context.Context, from, to providers.Coordinates) (*providers.Route, error) {
	out, err := p.client.CalculateRoute(ctx, &location.CalculateRouteInput{
		CalculatorName:      aws.String(p.calculator),
		DeparturePosition:   []float64{from.Longitude, from.Latitude},
		DestinationPosition: []float64{to.Longitude, to.Latitude},
		IncludeLegGeometry:  aws.Bool(true),
	})
	if err != nil {
		return nil, apperrors.NewExternalError("route calculation failed", err)
	}
	if out.Summary == nil {
		return nil, apperrors.NewExternalError("route calculation returned no summary", nil)
	}

	route := &providers.Route{
		DistanceKm:      aws.ToFloat64(out.Summary.Distance),
		DurationSeconds: aws.ToFloat64(out.Summary.DurationSeconds),
	}
	for _, leg := range out.Legs {
		if leg.Geometry == nil {
			continue
		}
		for _, point := range leg.Geometry.LineString {
			if len(point) == 2 {
				route.Geometry = append(route.Geometry, providers.Coordinates{
					Longitude: point[0],
					Latitude:  point[1],
				})
			}
		}
	}
	return route, nil
}

// CalculateDistance computes straight-line distance in kilometers. No
// upstream call is needed; the Haversine formula is accurate enough
// for proximity checks between reports.
func (p *AWSGeolocationProvider) CalculateDistance(ctx context.Context, from, to providers.Coordinates) (float64, error) {
	return haversineKm(from, to), nil
}

func (p *AWSGeolocationProvider) cacheSet(ctx context.Context, key string, value any, ttlSeconds int) {
	if p.cache == nil {
		return
	}
	if payload, err := json.Marshal(value); err == nil {
		_ = p.cache.Set(ctx, key, payload, ttlSeconds)
	}
}

func placeFromResult(placeID *string, place *types.Place) *providers.Place {
	if place == nil {
		return &providers.Place{ID: aws.ToString(placeID)}
	}
	result := &providers.Place{
		ID:         aws.ToString(placeID),
		Label:      aws.ToString(place.Label),
		Categories: place.Categories,
	}
	if addr := addressFromPlace(place); addr != nil {
		result.Address = addr.FormattedAddress
		result.Coordinates = addr.Coordinates
	}
	return result
}

func addressFromPlace(place *types.Place) *providers.GeocodedAddress {
	if place == nil {
		return nil
	}
	addr := &providers.GeocodedAddress{
		FormattedAddress: aws.ToString(place.Label),
		Street:           aws.ToString(place.Street),
		Barangay:         aws.ToString(place.Neighborhood),
		City:             aws.ToString(place.Municipality),
		Region:           aws.ToString(place.Region),
		PostalCode:       aws.ToString(place.PostalCode),
		Country:          aws.ToString(place.Country),
	}
	if place.Geometry != nil && len(place.Geometry.Point) == 2 {
		addr.Coordinates = providers.Coordinates{
			Longitude: place.Geometry.Point[0],
			Latitude:  place.Geometry.Point[1],
		}
	}
	return addr
}

func biasKey(bias *providers.Coordinates) string {
	if bias == nil {
		return ""
	}
	return fmt.Sprintf("|%.3f,%.3f", bias.Latitude, bias.Longitude)
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
