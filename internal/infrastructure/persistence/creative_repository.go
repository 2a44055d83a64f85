package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormImageRepository implements creative.ImageRepository using GORM
type GormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a new GormImageRepository
func NewGormImageRepository(db *gorm.DB) *GormImageRepository {
	return &GormImageRepository{db: db}
}

// FindByID finds an image record by ID
func (r *GormImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*creative.GeneratedImage, error) {
	var model models.GeneratedImageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "image")
	}
	return model.ToDomain(), nil
}

// FindAll lists image records newest first
func (r *GormImageRepository) FindAll(ctx context.Context, userID *uuid.UUID, limit int) ([]*creative.GeneratedImage, error) {
	q := r.db.WithContext(ctx).Model(&models.GeneratedImageModel{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if limit <= 0 || limit > shared.MaxPageSize {
		limit = shared.MaxPageSize
	}
	var rows []models.GeneratedImageModel
	if err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	images := make([]*creative.GeneratedImage, len(rows))
	for i := range rows {
		images[i] = rows[i].ToDomain()
	}
	return images, nil
}

// Create inserts an image record
func (r *GormImageRepository) Create(ctx context.Context, image *creative.GeneratedImage) error {
	model, err := models.GeneratedImageModelFromDomain(image)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes an image record
func (r *GormImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GeneratedImageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("image")
	}
	return nil
}

// GormRateLimitStore implements creative.RateLimitStore on the rate_limits table
type GormRateLimitStore struct {
	db *gorm.DB
}

// NewGormRateLimitStore creates a new GormRateLimitStore
func NewGormRateLimitStore(db *gorm.DB) *GormRateLimitStore {
	return &GormRateLimitStore{db: db}
}

// Increment bumps the window counter atomically and returns the new count
func (s *GormRateLimitStore) Increment(ctx context.Context, userID uuid.UUID, action creative.Action, windowStart time.Time, window time.Duration) (int, error) {
	windowStart = windowStart.UTC()
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &models.RateLimitModel{
			UserID:      userID,
			Action:      string(action),
			WindowStart: windowStart,
			Count:       1,
			ExpiresAt:   windowStart.Add(window),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "action"}, {Name: "window_start"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count": gorm.Expr("rate_limits.count + 1"),
			}),
		}).Create(row).Error; err != nil {
			return err
		}
		return tx.Model(&models.RateLimitModel{}).
			Where("user_id = ? AND action = ? AND window_start = ?", userID, string(action), windowStart).
			Pluck("count", &count).Error
	})
	return count, err
}

// Decrement returns one unit to the window, never going below zero
func (s *GormRateLimitStore) Decrement(ctx context.Context, userID uuid.UUID, action creative.Action, windowStart time.Time) error {
	return s.db.WithContext(ctx).Model(&models.RateLimitModel{}).
		Where("user_id = ? AND action = ? AND window_start = ? AND count > 0", userID, string(action), windowStart.UTC()).
		Update("count", gorm.Expr("count - 1")).Error
}

// PurgeBefore deletes counters for windows that started before cutoff
func (s *GormRateLimitStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("window_start < ?", cutoff.UTC()).
		Delete(&models.RateLimitModel{})
	return result.RowsAffected, result.Error
}
