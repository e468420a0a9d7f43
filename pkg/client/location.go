package client

import (
	"context"
	"fmt"
	"net/url"
)

type placeList struct {
	Places []Place `json:"places"`
	Count  int     `json:"count"`
}

type suggestionList struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// SearchPlaces finds places matching a free-text query.
func (c *Client) SearchPlaces(ctx context.Context, text string) ([]Place, error) {
	endpoint := "/location/search?text=" + url.QueryEscape(text)
	var list placeList
	if err := c.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Places, nil
}

// SuggestPlaces returns autocomplete suggestions for a partial query.
func (c *Client) SuggestPlaces(ctx context.Context, text string) ([]Suggestion, error) {
	endpoint := "/location/places/suggest?text=" + url.QueryEscape(text)
	var list suggestionList
	if err := c.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Suggestions, nil
}

// ReverseGeocode converts coordinates to an address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error) {
	endpoint := fmt.Sprintf("/location/geocode/reverse?lat=%f&lng=%f", lat, lng)
	var address Address
	if err := c.Get(ctx, endpoint, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

// GetPlace fetches the details for a place identifier.
func (c *Client) GetPlace(ctx context.Context, placeID string) (*Place, error) {
	var place Place
	if err := c.Get(ctx, "/location/places/"+url.PathEscape(placeID), &place); err != nil {
		return nil, err
	}
	return &place, nil
}

// CalculateRoute computes a route between two points.
func (c *Client) CalculateRoute(ctx context.Context, from, to Location) (*Route, error) {
	body := map[string]Location{"from": from, "to": to}
	var route Route
	if err := c.Post(ctx, "/location/route", body, &route); err != nil {
		return nil, err
	}
	return &route, nil
}
