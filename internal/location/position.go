package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"moviespot/internal/config"
	"moviespot/internal/domain"
)

// geoIPResponse is the ip-api.com JSON shape
type geoIPResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// GeoIPPosition estimates the position from the public IP address
type GeoIPPosition struct {
	httpClient *http.Client
	url        string
	now        func() time.Time
}

func NewGeoIPPosition(url string, timeout time.Duration) *GeoIPPosition {
	return &GeoIPPosition{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		now:        time.Now,
	}
}

func (g *GeoIPPosition) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Coordinates{}, fmt.Errorf("geoip: unexpected status %s", resp.Status)
	}

	var body geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: decode: %w", err)
	}
	if body.Status != "success" {
		return domain.Coordinates{}, fmt.Errorf("geoip: lookup failed: %s", body.Message)
	}

	return domain.Coordinates{
		Latitude:  body.Lat,
		Longitude: body.Lon,
		Source:    config.ProviderGeoIP,
		Timestamp: g.now(),
	}, nil
}

// StaticPosition always reports the same configured point
type StaticPosition struct {
	latitude  float64
	longitude float64
	now       func() time.Time
}

func NewStaticPosition(latitude, longitude float64) *StaticPosition {
	return &StaticPosition{latitude: latitude, longitude: longitude, now: time.Now}
}

func (s *StaticPosition) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{
		Latitude:  s.latitude,
		Longitude: s.longitude,
		Source:    config.ProviderStatic,
		Timestamp: s.now(),
	}, nil
}

// NewPositionService builds the provider named in the location settings
func NewPositionService(s config.LocationSettings) (PositionService, error) {
	switch s.Provider {
	case config.ProviderStatic:
		return NewStaticPosition(s.Latitude, s.Longitude), nil
	case config.ProviderGeoIP, "":
		return NewGeoIPPosition(s.GeoIPURL, time.Duration(s.TimeoutSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown position provider %q", s.Provider)
	}
}
