package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rides/internal/domain"
)

// NominatimClient resolves addresses against a Nominatim-compatible search
// endpoint. Retries belong to the HTTP client layer, not here.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimClient creates a client for the given base URL
// (e.g. "https://nominatim.openstreetmap.org").
func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// nominatimResult is a single candidate in the provider response.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve geocodes the address, returning the first (highest-confidence)
// candidate. An empty result set is ErrNoResult; transport failures are
// ErrUnavailable.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (domain.Location, error) {
	if address == "" {
		return domain.Location{}, ErrEmptyAddress
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Location{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(results) == 0 {
		return domain.Location{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: malformed latitude %q", ErrUnavailable, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: malformed longitude %q", ErrUnavailable, results[0].Lon)
	}

	loc := domain.Location{Address: address, Lat: lat, Lng: lng}
	if !loc.Valid() {
		return domain.Location{}, ErrNoResult
	}

	return loc, nil
}
