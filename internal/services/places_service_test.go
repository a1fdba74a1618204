package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lakbay/internal/models/response_models"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
)

func TestGeocodePlace_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	p := NewPlacesService(dedupe.New(0), store)

	cached := response_models.GeoPoint{Latitude: 11.9674, Longitude: 121.9248}
	raw, _ := json.Marshal(cached)
	key := dedupe.Key(map[string]string{"op": "geocode", "place": "White Beach", "dest": "Boracay"})
	if err := store.Set(ctx, cache.NamespaceGeocode, key, raw, time.Minute, ""); err != nil {
		t.Fatal(err)
	}

	point, err := p.GeocodePlace(ctx, "White Beach", "Boracay")
	if err != nil {
		t.Fatalf("cached lookup should not touch the network: %v", err)
	}
	if point.Latitude != cached.Latitude || point.Longitude != cached.Longitude {
		t.Errorf("point = %+v", point)
	}
}

func TestGetWeather_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	p := NewPlacesService(dedupe.New(0), store)

	cached := WeatherInfo{TemperatureC: 31.5, Condition: "partly cloudy", WindKph: 12}
	raw, _ := json.Marshal(cached)
	key := dedupe.Key(map[string]string{"op": "weather", "dest": "Boracay"})
	if err := store.Set(ctx, cache.NamespaceAPI, key, raw, time.Minute, "open-meteo"); err != nil {
		t.Fatal(err)
	}

	info, err := p.GetWeather(ctx, "Boracay")
	if err != nil {
		t.Fatalf("cached lookup should not touch the network: %v", err)
	}
	if info.Condition != "partly cloudy" || info.TemperatureC != 31.5 {
		t.Errorf("info = %+v", info)
	}
}

func TestWeatherCondition_Buckets(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "clear"},
		{2, "partly cloudy"},
		{45, "fog"},
		{61, "rain"},
		{71, "snow"},
		{80, "rain showers"},
		{95, "thunderstorm"},
	}

	for _, tt := range tests {
		if got := weatherCondition(tt.code); got != tt.want {
			t.Errorf("weatherCondition(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
