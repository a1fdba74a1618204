package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lakbay/internal/models/db_models"
	"lakbay/internal/models/request_models"
	"lakbay/internal/models/response_models"
	"lakbay/internal/repositories"
	"lakbay/pkg/cache"
	"lakbay/pkg/dedupe"
	"lakbay/pkg/utils"
)

const (
	generationShareTTL = 2 * time.Minute
	snapshotTTL        = 5 * time.Minute
)

type TripServiceInterface interface {
	// GenerateTrip asks the generation collaborator for an itinerary and
	// pushes its raw output through the full pipeline. Identical briefs
	// issued concurrently share one upstream call.
	GenerateTrip(ctx context.Context, selection request_models.TripSelection) (*response_models.TripBundle, error)

	// RunPipeline normalizes and validates an already-obtained payload.
	RunPipeline(raw any, destination string, activityPreference int) *response_models.TripBundle

	SaveTrip(ctx context.Context, userId string, req request_models.SaveTripRequest) (string, error)
	GetTripById(ctx context.Context, tripId string) (*response_models.TripBundle, error)
	ListTripsByUser(ctx context.Context, userId string, page int, pageSize int) ([]response_models.TripBundle, error)
	DeleteTrip(ctx context.Context, tripId string, userId string) error
}

type TripService struct {
	generator  utils.GeneratorClientInterface
	normalizer NormalizerServiceInterface
	geo        GeoValidatorServiceInterface
	hotels     HotelServiceInterface
	policy     ItineraryValidatorServiceInterface
	tripRepo   repositories.TripRepository
	dedup      *dedupe.Deduplicator
	store      cache.Store
}

func NewTripService(
	generator utils.GeneratorClientInterface,
	normalizer NormalizerServiceInterface,
	geo GeoValidatorServiceInterface,
	hotels HotelServiceInterface,
	policy ItineraryValidatorServiceInterface,
	tripRepo repositories.TripRepository,
	dedup *dedupe.Deduplicator,
	store cache.Store,
) TripServiceInterface {
	return &TripService{
		generator:  generator,
		normalizer: normalizer,
		geo:        geo,
		hotels:     hotels,
		policy:     policy,
		tripRepo:   tripRepo,
		dedup:      dedup,
		store:      store,
	}
}

func (t *TripService) GenerateTrip(ctx context.Context, selection request_models.TripSelection) (*response_models.TripBundle, error) {
	key := dedupe.Key(selection)
	raw, err := t.dedup.Do(ctx, key, func(ctx context.Context) (any, error) {
		return t.generator.GenerateItinerary(ctx, selection)
	}, generationShareTTL)
	if err != nil {
		log.Printf("trip generation failed: %v", err)
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	bundle := t.RunPipeline(raw, selection.Destination, selection.ActivityPreference)
	return bundle, nil
}

// RunPipeline is the normalization and validation spine: recovery parse +
// normalize, hotel self-heal, then geographic and policy validation on
// the corrected trip. It never fails; defects become report entries.
func (t *TripService) RunPipeline(raw any, destination string, activityPreference int) *response_models.TripBundle {
	bundle := &response_models.TripBundle{Warnings: []string{}}

	defer func() {
		// A panic in a validator must degrade to a report entry, not
		// escape to the caller.
		if r := recover(); r != nil {
			log.Printf("pipeline: unexpected failure: %v", r)
			bundle.Warnings = append(bundle.Warnings, fmt.Sprintf("pipeline degraded: %v", r))
			if bundle.Trip == nil {
				bundle.Trip = emptyTrip()
			}
		}
	}()

	trip, warnings := t.normalizer.Normalize(raw)
	bundle.Warnings = append(bundle.Warnings, warnings...)

	fixPlan := t.hotels.ValidateConsistency(trip)
	bundle.HotelFix = fixPlan
	if fixPlan.Data != nil {
		trip = fixPlan.Data
	}
	bundle.Trip = trip

	bundle.Geo = t.geo.ValidateTripLocations(trip, destination)
	bundle.Policy = t.policy.ValidateItinerary(trip, ItineraryPreferences{ActivityPreference: activityPreference})
	bundle.Hints = t.policy.GetRemediationHint(bundle.Policy)

	return bundle
}

func (t *TripService) SaveTrip(ctx context.Context, userId string, req request_models.SaveTripRequest) (string, error) {
	bundle := t.RunPipeline(req.TripData, req.Selection.Destination, req.Selection.ActivityPreference)

	tripJSON, err := json.Marshal(bundle.Trip)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	record := &db_models.Trip{
		UserID:             userId,
		Destination:        req.Selection.Destination,
		DurationDays:       req.Selection.DurationDays,
		Travelers:          req.Selection.Travelers,
		Budget:             req.Selection.Budget,
		StartDate:          req.Selection.StartDate,
		EndDate:            req.Selection.EndDate,
		ActivityPreference: req.Selection.ActivityPreference,
		TripData:           string(tripJSON),
	}

	tripId, err := t.tripRepo.Insert(ctx, record)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	// The owner's snapshots are stale the moment a trip changes.
	if _, err := t.store.InvalidateBy(ctx, cache.NamespaceSnapshot, userId); err != nil {
		log.Printf("snapshot invalidation for user %s failed: %v", userId, err)
	}

	return tripId, nil
}

func (t *TripService) GetTripById(ctx context.Context, tripId string) (*response_models.TripBundle, error) {
	if cached, ok, err := t.store.Get(ctx, cache.NamespaceSnapshot, tripId); err == nil && ok {
		var bundle response_models.TripBundle
		if err := json.Unmarshal(cached, &bundle); err == nil {
			return &bundle, nil
		}
	}

	record, err := t.tripRepo.GetById(ctx, tripId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, utils.ErrTripNotFound
	}

	// Persisted rows can carry string-encoded sub-fields, so the stored
	// payload goes back through the pipeline on every load.
	bundle := t.RunPipeline(record.TripData, record.Destination, record.ActivityPreference)
	bundle.TripID = record.ID.String()

	if raw, err := json.Marshal(bundle); err == nil {
		if err := t.store.Set(ctx, cache.NamespaceSnapshot, tripId, raw, snapshotTTL, record.UserID); err != nil {
			log.Printf("snapshot caching for trip %s failed: %v", tripId, err)
		}
	}

	return bundle, nil
}

func (t *TripService) ListTripsByUser(ctx context.Context, userId string, page int, pageSize int) ([]response_models.TripBundle, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	records, err := t.tripRepo.ListByUser(ctx, userId, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	bundles := make([]response_models.TripBundle, 0, len(records))
	for _, record := range records {
		bundle := t.RunPipeline(record.TripData, record.Destination, record.ActivityPreference)
		bundle.TripID = record.ID.String()
		bundles = append(bundles, *bundle)
	}
	return bundles, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, tripId string, userId string) error {
	if err := t.tripRepo.Delete(ctx, tripId, userId); err != nil {
		return utils.ErrDatabaseError
	}
	if _, err := t.store.InvalidateBy(ctx, cache.NamespaceSnapshot, userId); err != nil {
		log.Printf("snapshot invalidation for user %s failed: %v", userId, err)
	}
	return nil
}

func emptyTrip() *response_models.NormalizedTrip {
	return &response_models.NormalizedTrip{
		Hotels:        []response_models.Hotel{},
		Itinerary:     []response_models.DayPlan{},
		PlacesToVisit: []response_models.Place{},
		DailyCosts:    []response_models.CostEntry{},
		Budget:        response_models.BudgetInfo{Display: "not set", Source: response_models.BudgetSourceUnset},
	}
}
