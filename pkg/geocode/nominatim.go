package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Nominatim queries an OpenStreetMap Nominatim compatible search endpoint.
type Nominatim struct {
	baseURL   string
	userAgent string
	httpc     *http.Client
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpc:     &http.Client{Timeout: timeout},
	}
}

func (n *Nominatim) Resolve(ctx context.Context, address string) *Coordinates {
	c, err := n.Search(ctx, address)
	if err != nil {
		log.WithError(err).WithField("address", address).Debug("geocode miss")
		return nil
	}
	return c
}

// Search returns the best match for address, ErrNoResults when there is
// none.
func (n *Nominatim) Search(ctx context.Context, address string) (*Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrNoResults
	}
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	// lat/lon come back as strings
	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(hits) == 0 {
		return nil, ErrNoResults
	}
	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim lat %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim lon %q: %w", hits[0].Lon, err)
	}
	c := Round(Coordinates{Lat: lat, Lng: lng})
	if !valid(c) {
		return nil, fmt.Errorf("nominatim coordinates out of range: %v,%v", lat, lng)
	}
	return &c, nil
}
