package services

import (
	"encoding/json"
	"strings"
	"testing"

	"lakbay/internal/models/response_models"
)

func newNormalizer() NormalizerServiceInterface {
	return NewNormalizerService(NewParserService())
}

func TestNormalize_NeverReturnsNilSlices(t *testing.T) {
	n := newNormalizer()

	trip, _ := n.Normalize("garbage that is not json")
	if trip == nil {
		t.Fatal("trip must never be nil")
	}
	if trip.Hotels == nil || trip.Itinerary == nil || trip.PlacesToVisit == nil || trip.DailyCosts == nil {
		t.Error("slice fields must be empty, not nil")
	}
	if trip.Budget.Source != response_models.BudgetSourceUnset {
		t.Errorf("unexpected budget source: %s", trip.Budget.Source)
	}
}

func TestNormalize_FieldAliases(t *testing.T) {
	n := newNormalizer()

	trip, _ := n.Normalize(map[string]any{
		"hotelOptions": []any{
			map[string]any{"hotelName": "Henann Regency"},
		},
		"attractions": []any{
			map[string]any{"placeName": "White Beach"},
		},
		"daily_itinerary": []any{
			map[string]any{"day": float64(1), "theme": "arrival", "plan": []any{}},
		},
	})

	if len(trip.Hotels) != 1 || trip.Hotels[0].HotelName != "Henann Regency" {
		t.Errorf("hotelOptions alias not honored: %+v", trip.Hotels)
	}
	if len(trip.PlacesToVisit) != 1 || trip.PlacesToVisit[0].PlaceName != "White Beach" {
		t.Errorf("attractions alias not honored: %+v", trip.PlacesToVisit)
	}
	if len(trip.Itinerary) != 1 || trip.Itinerary[0].Theme != "arrival" {
		t.Errorf("daily_itinerary alias not honored: %+v", trip.Itinerary)
	}
}

func TestNormalize_FlattensSelfNestedPayload(t *testing.T) {
	n := newNormalizer()

	trip, warnings := n.Normalize(map[string]any{
		"tripData": map[string]any{
			"hotels": []any{
				map[string]any{"hotelName": "Henann Regency"},
			},
		},
	})

	if len(trip.Hotels) != 1 {
		t.Fatalf("nested payload not flattened: %+v", trip.Hotels)
	}
	if !containsSubstring(warnings, "nested") {
		t.Errorf("expected a nesting warning, got %v", warnings)
	}
}

func TestNormalize_StringEncodedField(t *testing.T) {
	n := newNormalizer()

	trip, _ := n.Normalize(map[string]any{
		"hotels": `[{"hotelName":"City Garden Grand Hotel"}]`,
	})

	if len(trip.Hotels) != 1 || trip.Hotels[0].HotelName != "City Garden Grand Hotel" {
		t.Errorf("string-encoded hotels not decoded: %+v", trip.Hotels)
	}
}

func TestNormalize_SingleObjectWrappedAsSlice(t *testing.T) {
	n := newNormalizer()

	trip, _ := n.Normalize(map[string]any{
		"hotels": map[string]any{"hotelName": "Henann Regency"},
	})

	if len(trip.Hotels) != 1 {
		t.Errorf("single hotel object should be wrapped, got %+v", trip.Hotels)
	}
}

func TestNormalize_KeyedItinerary(t *testing.T) {
	n := newNormalizer()

	trip, warnings := n.Normalize(map[string]any{
		"itinerary": map[string]any{
			"day2": map[string]any{"theme": "islands", "plan": []any{}},
			"day1": map[string]any{"theme": "arrival", "plan": []any{}},
			"notes": "ignored",
		},
	})

	if len(trip.Itinerary) != 2 {
		t.Fatalf("expected 2 days, got %d", len(trip.Itinerary))
	}
	if trip.Itinerary[0].Day != 1 || trip.Itinerary[0].Theme != "arrival" {
		t.Errorf("days not ordered: %+v", trip.Itinerary)
	}
	if trip.Itinerary[1].Day != 2 {
		t.Errorf("day numbers not taken from keys: %+v", trip.Itinerary)
	}
	if !containsSubstring(warnings, "keyed") {
		t.Errorf("expected keyed-itinerary warning, got %v", warnings)
	}
}

func TestNormalize_ItineraryMissingDayNumbers(t *testing.T) {
	n := newNormalizer()

	trip, _ := n.Normalize(map[string]any{
		"itinerary": []any{
			map[string]any{"theme": "arrival"},
			map[string]any{"theme": "islands"},
		},
	})

	if len(trip.Itinerary) != 2 {
		t.Fatalf("expected 2 days, got %d", len(trip.Itinerary))
	}
	if trip.Itinerary[0].Day != 1 || trip.Itinerary[1].Day != 2 {
		t.Errorf("positional day numbers not assigned: %+v", trip.Itinerary)
	}
	if trip.Itinerary[0].Plan == nil {
		t.Error("day plan must be empty, not nil")
	}
}

func TestResolveBudget_PriorityChain(t *testing.T) {
	costs := []response_models.CostEntry{{Day: 1, Amount: 1500}, {Day: 2, Amount: 2500}}

	tests := []struct {
		name       string
		data       map[string]any
		costs      []response_models.CostEntry
		wantAmount float64
		wantSource string
	}{
		{
			name:       "explicit numeric wins over everything",
			data:       map[string]any{"budget": float64(20000), "customBudget": "PHP 5,000"},
			costs:      costs,
			wantAmount: 20000,
			wantSource: response_models.BudgetSourceExplicit,
		},
		{
			name:       "explicit string amount",
			data:       map[string]any{"budget": "PHP 12,500.50"},
			wantAmount: 12500.50,
			wantSource: response_models.BudgetSourceExplicit,
		},
		{
			name:       "custom budget string",
			data:       map[string]any{"customBudget": "around 8,000 pesos"},
			costs:      costs,
			wantAmount: 8000,
			wantSource: response_models.BudgetSourceCustom,
		},
		{
			name:       "computed from daily costs",
			data:       map[string]any{},
			costs:      costs,
			wantAmount: 4000,
			wantSource: response_models.BudgetSourceComputed,
		},
		{
			name:       "nothing available",
			data:       map[string]any{"budget": "luxury"},
			wantAmount: 0,
			wantSource: response_models.BudgetSourceUnset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveBudget(tt.data, tt.costs)
			if got.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", got.Source, tt.wantSource)
			}
		})
	}
}

func TestNormalize_RoundTripPreservesTrip(t *testing.T) {
	n := newNormalizer()

	first, _ := n.Normalize(map[string]any{
		"budget": float64(5000),
		"hotels": []any{
			map[string]any{"hotelName": "Henann Regency", "isRecommended": true},
		},
		"itinerary": []any{
			map[string]any{"day": float64(1), "theme": "arrival", "plan": []any{
				map[string]any{"placeName": "Check-in at Henann Regency", "time": "2:00 PM"},
			}},
		},
		"dailyCosts": []any{
			map[string]any{"day": float64(1), "amount": float64(1500)},
		},
	})
	if first.Budget.Amount != 5000 || first.Budget.Source != response_models.BudgetSourceExplicit {
		t.Fatalf("first pass budget: %+v", first.Budget)
	}

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, _ := n.Normalize(string(serialized))

	if second.Budget.Amount != 5000 {
		t.Errorf("explicit budget lost on re-normalization: %+v", second.Budget)
	}
	if second.Budget.Source != response_models.BudgetSourceExplicit {
		t.Errorf("budget source changed on re-normalization: %s", second.Budget.Source)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("re-normalization changed the trip:\n first: %s\nsecond: %s", a, b)
	}
}

func containsSubstring(items []string, sub string) bool {
	for _, item := range items {
		if strings.Contains(item, sub) {
			return true
		}
	}
	return false
}
