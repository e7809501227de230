package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pintdiary/models"
)

const placesBaseURL = "https://maps.googleapis.com/maps/api/place"

var placesAPIKey string

var placesHTTPClient = &http.Client{Timeout: 10 * time.Second}

// InitPlacesService stores the Places API key. With no key configured the
// search calls fall back to fixed sample venues so the logging flow works
// without credentials.
func InitPlacesService(apiKey string) {
	placesAPIKey = apiKey
}

type placesResponse struct {
	Results []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		Vicinity         string `json:"vicinity"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// SearchNearbyPubs finds pubs around a coordinate.
func SearchNearbyPubs(ctx context.Context, lat, lng float64) ([]models.PlaceResult, error) {
	if placesAPIKey == "" {
		return mockPubs(lat, lng), nil
	}

	endpoint := fmt.Sprintf("%s/nearbysearch/json?location=%f,%f&radius=1500&type=bar&keyword=pub&key=%s",
		placesBaseURL, lat, lng, placesAPIKey)
	return fetchPlaces(ctx, endpoint)
}

// SearchPubsByText finds pubs matching a free-text query.
func SearchPubsByText(ctx context.Context, query string) ([]models.PlaceResult, error) {
	if placesAPIKey == "" {
		return mockPubs(51.5, -0.12), nil
	}

	endpoint := fmt.Sprintf("%s/textsearch/json?query=%s&type=bar&key=%s",
		placesBaseURL, url.QueryEscape(query+" pub"), placesAPIKey)
	return fetchPlaces(ctx, endpoint)
}

func fetchPlaces(ctx context.Context, endpoint string) ([]models.PlaceResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := placesHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request returned status %d", resp.StatusCode)
	}

	var parsed placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places request failed with status %s", parsed.Status)
	}

	results := make([]models.PlaceResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		address := r.Vicinity
		if address == "" {
			address = r.FormattedAddress
		}
		results = append(results, models.PlaceResult{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: address,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return results, nil
}

func mockPubs(lat, lng float64) []models.PlaceResult {
	return []models.PlaceResult{
		{
			PlaceID: "mock_1",
			Name:    "The Black Harp",
			Address: "123 Stout Street, Dublin",
			Lat:     lat + 0.001,
			Lng:     lng + 0.001,
		},
		{
			PlaceID: "mock_2",
			Name:    "Mulligan's",
			Address: "8 Poolbeg Street, Dublin 2",
			Lat:     lat + 0.002,
			Lng:     lng - 0.001,
		},
		{
			PlaceID: "mock_3",
			Name:    "The Long Hall",
			Address: "51 S Great George's St, Dublin 2",
			Lat:     lat - 0.001,
			Lng:     lng + 0.002,
		},
	}
}
