package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
)

// LocationHandler handles place search, geocoding and routing.
type LocationHandler struct {
	geo providers.GeolocationProvider
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(geo providers.GeolocationProvider) *LocationHandler {
	return &LocationHandler{geo: geo}
}

// SearchPlaces handles GET /location/search?text=...&lat=&lng=
func (h *LocationHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respondError(w, http.StatusBadRequest, "text parameter is required")
		return
	}

	places, err := h.geo.SearchPlaces(r.Context(), text, biasFromQuery(r))
	if err != nil {
		respondAppError(w, err, "place search failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"places": places,
		"count":  len(places),
	})
}

// SuggestPlaces handles GET /location/places/suggest?text=...
func (h *LocationHandler) SuggestPlaces(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respondError(w, http.StatusBadRequest, "text parameter is required")
		return
	}

	suggestions, err := h.geo.SuggestPlaces(r.Context(), text, biasFromQuery(r))
	if err != nil {
		respondAppError(w, err, "place suggestion failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// ReverseGeocode handles GET /location/geocode/reverse?lat=...&lng=...
func (h *LocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(w, http.StatusBadRequest, "lat and lng parameters are required")
		return
	}

	address, err := h.geo.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		respondAppError(w, err, "reverse geocoding failed")
		return
	}
	respondSuccess(w, http.StatusOK, address)
}

// GetPlace handles GET /location/places/{id}
func (h *LocationHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.geo.GetPlace(r.Context(), r.PathValue("id"))
	if err != nil {
		respondAppError(w, err, "place lookup failed")
		return
	}
	respondSuccess(w, http.StatusOK, place)
}

// CalculateRoute handles POST /location/route
func (h *LocationHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var input struct {
		From *providers.Coordinates `json:"from"`
		To   *providers.Coordinates `json:"to"`
	}
	if err := decodeBody(r, &input); err != nil {
		respondAppError(w, err, "invalid request body")
		return
	}
	if input.From == nil || input.To == nil {
		respondError(w, http.StatusBadRequest, "from and to coordinates are required")
		return
	}

	route, err := h.geo.CalculateRoute(r.Context(), *input.From, *input.To)
	if err != nil {
		respondAppError(w, err, "route calculation failed")
		return
	}
	respondSuccess(w, http.StatusOK, route)
}

func biasFromQuery(r *http.Request) *providers.Coordinates {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		return nil
	}
	return &providers.Coordinates{Latitude: lat, Longitude: lng}
}
