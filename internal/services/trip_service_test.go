package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"lakbay/internal/models/db_models"
	"lakbay/internal/models/request_models"
	"lakbay/internal/repositories"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
)

type stubTripRepo struct {
	record *db_models.Trip
}

func (s *stubTripRepo) Insert(ctx context.Context, trip *db_models.Trip) (string, error) {
	trip.ID = uuid.New()
	s.record = trip
	return trip.ID.String(), nil
}

func (s *stubTripRepo) Update(ctx context.Context, trip *db_models.Trip) error {
	s.record = trip
	return nil
}

func (s *stubTripRepo) GetById(ctx context.Context, tripId string) (*db_models.Trip, error) {
	return s.record, nil
}

func (s *stubTripRepo) ListByUser(ctx context.Context, userId string, page int, pageSize int) ([]db_models.Trip, error) {
	if s.record == nil {
		return nil, nil
	}
	return []db_models.Trip{*s.record}, nil
}

func (s *stubTripRepo) Delete(ctx context.Context, tripId string, userId string) error {
	s.record = nil
	return nil
}

type stubGenerator struct {
	calls  atomic.Int32
	output string
}

func (s *stubGenerator) GenerateItinerary(ctx context.Context, selection request_models.TripSelection) (string, error) {
	s.calls.Add(1)
	return s.output, nil
}

func newTripServiceForTest(gen *stubGenerator, repo repositories.TripRepository, store cache.Store) TripServiceInterface {
	return NewTripService(
		gen,
		NewNormalizerService(NewParserService()),
		NewGeoValidatorService(repositories.NewRegionRepository()),
		NewHotelService(),
		NewItineraryValidatorService(),
		repo,
		dedupe.New(0),
		store,
	)
}

func manilaPayload() map[string]any {
	return map[string]any{
		"budget": float64(9000),
		"hotels": []any{
			map[string]any{"hotelName": "City Garden Grand Hotel", "isRecommended": true},
		},
		"itinerary": []any{
			map[string]any{"day": float64(1), "plan": []any{
				map[string]any{"placeName": "Hotel Check-in"},
				map[string]any{"placeName": "Rizal Park"},
			}},
			map[string]any{"day": float64(2), "plan": []any{
				map[string]any{"placeName": "Intramuros"},
				map[string]any{"placeName": "Fort Santiago"},
				map[string]any{"placeName": "National Museum"},
				map[string]any{"placeName": "Return to hotel"},
			}},
			map[string]any{"day": float64(3), "plan": []any{
				map[string]any{"placeName": "Hotel Check-out"},
			}},
		},
	}
}

func TestSaveTrip_PersistsActivityPreference(t *testing.T) {
	ctx := context.Background()
	repo := &stubTripRepo{}
	svc := newTripServiceForTest(&stubGenerator{}, repo, cache.NewMemoryStore())

	req := request_models.SaveTripRequest{
		Selection: request_models.TripSelection{
			Destination:        "Manila",
			DurationDays:       3,
			ActivityPreference: 2,
		},
		TripData: manilaPayload(),
	}

	if _, err := svc.SaveTrip(ctx, "user-1", req); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}
	if repo.record.ActivityPreference != 2 {
		t.Errorf("persisted ActivityPreference = %d, want 2", repo.record.ActivityPreference)
	}
}

func TestGetTripById_ReloadKeepsBudgetAndPreference(t *testing.T) {
	ctx := context.Background()
	repo := &stubTripRepo{}
	store := cache.NewMemoryStore()
	svc := newTripServiceForTest(&stubGenerator{}, repo, store)

	req := request_models.SaveTripRequest{
		Selection: request_models.TripSelection{
			Destination:        "Manila",
			DurationDays:       3,
			ActivityPreference: 2,
		},
		TripData: manilaPayload(),
	}
	tripId, err := svc.SaveTrip(ctx, "user-1", req)
	if err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	bundle, err := svc.GetTripById(ctx, tripId)
	if err != nil {
		t.Fatalf("GetTripById: %v", err)
	}
	if bundle.TripID != tripId {
		t.Errorf("TripID = %s, want %s", bundle.TripID, tripId)
	}

	// The explicit budget survives re-normalization of the stored payload.
	if bundle.Trip.Budget.Amount != 9000 {
		t.Errorf("budget on reload = %+v", bundle.Trip.Budget)
	}

	// Policy validation re-runs against the saved preference: day 2 has
	// three main activities against a preference of two.
	if bundle.Policy == nil || bundle.Policy.IsValid {
		t.Fatalf("policy = %+v", bundle.Policy)
	}
	if !containsSubstring(bundle.Policy.Errors, "expected exactly 2") {
		t.Errorf("policy errors: %v", bundle.Policy.Errors)
	}

	// The snapshot was cached under the owner's id.
	n, err := store.InvalidateBy(ctx, cache.NamespaceSnapshot, "user-1")
	if err != nil || n != 1 {
		t.Errorf("snapshot index: n=%d err=%v", n, err)
	}
}

func TestGenerateTrip_SharesCollaboratorCall(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{output: `{"hotels":[{"hotelName":"Henann Regency"}]}`}
	svc := newTripServiceForTest(gen, &stubTripRepo{}, cache.NewMemoryStore())

	selection := request_models.TripSelection{Destination: "Boracay", DurationDays: 3}

	first, err := svc.GenerateTrip(ctx, selection)
	if err != nil {
		t.Fatalf("GenerateTrip: %v", err)
	}
	if len(first.Trip.Hotels) != 1 {
		t.Errorf("trip: %+v", first.Trip)
	}

	if _, err := svc.GenerateTrip(ctx, selection); err != nil {
		t.Fatalf("GenerateTrip: %v", err)
	}
	if got := gen.calls.Load(); got != 1 {
		t.Errorf("collaborator called %d times for an identical brief, want 1", got)
	}
}
