package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lakbay/internal/models/db_models"
)

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.Trip) (string, error)
	Update(ctx context.Context, trip *db_models.Trip) error
	GetById(ctx context.Context, tripId string) (*db_models.Trip, error)
	ListByUser(ctx context.Context, userId string, page int, pageSize int) ([]db_models.Trip, error)
	Delete(ctx context.Context, tripId string, userId string) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Insert(ctx context.Context, trip *db_models.Trip) (string, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return "", err
	}
	return trip.ID.String(), nil
}

func (r *tripRepository) Update(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

func (r *tripRepository) GetById(ctx context.Context, tripId string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).Where("id = ?", tripId).First(&trip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userId string, page int, pageSize int) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Delete(ctx context.Context, tripId string, userId string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripId, userId).
		Delete(&db_models.Trip{}).Error
}
