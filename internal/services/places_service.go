package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"lakbay/internal/models/response_models"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
	"lakbay/pkg/utils"
)

const (
	geocodeTTL  = 7 * 24 * time.Hour
	weatherTTL  = 30 * time.Minute
	lookupShare = time.Minute
)

type WeatherInfo struct {
	TemperatureC float64 `json:"temperatureC"`
	Condition    string  `json:"condition"`
	WindKph      float64 `json:"windKph"`
}

// PlacesServiceInterface wraps the geocoding and weather collaborators.
// Every outbound call is deduplicated and cached; these lookups are cheap
// to recompute, so last-write-wins caching is fine.
type PlacesServiceInterface interface {
	GeocodePlace(ctx context.Context, placeName string, destination string) (*response_models.GeoPoint, error)
	GetWeather(ctx context.Context, destination string) (*WeatherInfo, error)
}

type PlacesService struct {
	http        *http.Client
	accessToken string
	dedup       *dedupe.Deduplicator
	store       cache.Store
}

func NewPlacesService(dedup *dedupe.Deduplicator, store cache.Store) PlacesServiceInterface {
	return &PlacesService{
		http:        &http.Client{Timeout: 15 * time.Second},
		accessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		dedup:       dedup,
		store:       store,
	}
}

func (p *PlacesService) GeocodePlace(ctx context.Context, placeName string, destination string) (*response_models.GeoPoint, error) {
	key := dedupe.Key(map[string]string{"op": "geocode", "place": placeName, "dest": destination})

	if raw, ok, err := p.store.Get(ctx, cache.NamespaceGeocode, key); err == nil && ok {
		var point response_models.GeoPoint
		if err := json.Unmarshal(raw, &point); err == nil {
			return &point, nil
		}
	}

	result, err := p.dedup.Do(ctx, key, func(ctx context.Context) (any, error) {
		return p.fetchGeocode(ctx, placeName, destination)
	}, lookupShare)
	if err != nil {
		return nil, err
	}
	point := result.(*response_models.GeoPoint)

	if raw, err := json.Marshal(point); err == nil {
		_ = p.store.Set(ctx, cache.NamespaceGeocode, key, raw, geocodeTTL, "")
	}
	return point, nil
}

func (p *PlacesService) fetchGeocode(ctx context.Context, placeName string, destination string) (*response_models.GeoPoint, error) {
	query := url.QueryEscape(fmt.Sprintf("%s, %s, Philippines", placeName, destination))
	endpoint := fmt.Sprintf(
		"https://api.mapbox.com/geocoding/v5/mapbox.places/%s.json?limit=1&access_token=%s",
		query, p.accessToken,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, utils.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, utils.ErrUpstreamUnavailable
	}

	var payload struct {
		Features []struct {
			Center []float64 `json:"center"` // lng, lat
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.Features) == 0 || len(payload.Features[0].Center) < 2 {
		return nil, fmt.Errorf("no geocoding result for %q", placeName)
	}
	return &response_models.GeoPoint{
		Latitude:  payload.Features[0].Center[1],
		Longitude: payload.Features[0].Center[0],
	}, nil
}

func (p *PlacesService) GetWeather(ctx context.Context, destination string) (*WeatherInfo, error) {
	key := dedupe.Key(map[string]string{"op": "weather", "dest": destination})

	if raw, ok, err := p.store.Get(ctx, cache.NamespaceAPI, key); err == nil && ok {
		var info WeatherInfo
		if err := json.Unmarshal(raw, &info); err == nil {
			return &info, nil
		}
	}

	result, err := p.dedup.Do(ctx, key, func(ctx context.Context) (any, error) {
		return p.fetchWeather(ctx, destination)
	}, lookupShare)
	if err != nil {
		return nil, err
	}
	info := result.(*WeatherInfo)

	if raw, err := json.Marshal(info); err == nil {
		_ = p.store.Set(ctx, cache.NamespaceAPI, key, raw, weatherTTL, "open-meteo")
	}
	return info, nil
}

func (p *PlacesService) fetchWeather(ctx context.Context, destination string) (*WeatherInfo, error) {
	point, err := p.fetchGeocode(ctx, destination, "")
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://api.open-meteo.com/v1/forecast?latitude=%f&longitude=%f&current_weather=true",
		point.Latitude, point.Longitude,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, utils.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, utils.ErrUpstreamUnavailable
	}

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &WeatherInfo{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindKph:      payload.CurrentWeather.WindSpeed,
		Condition:    weatherCondition(payload.CurrentWeather.WeatherCode),
	}, nil
}

// WMO weather interpretation codes, coarse buckets.
func weatherCondition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	default:
		return "thunderstorm"
	}
}
