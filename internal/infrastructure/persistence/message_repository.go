package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMessageRepository implements inbox.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*inbox.ContactMessage, error) {
	var model models.ContactMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "message")
	}
	return model.ToDomain(), nil
}

// FindAll lists messages matching the filter
func (r *GormMessageRepository) FindAll(ctx context.Context, filter inbox.MessageFilter) ([]*inbox.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactMessageModel{})
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Keyword != "" {
		kw := keywordPattern(filter.Keyword)
		q = q.Where(`(LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, kw, kw, kw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContactMessageModel
	if err := paginate(q, filter.Filter, messageSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	messages := make([]*inbox.ContactMessage, len(rows))
	for i := range rows {
		messages[i] = rows[i].ToDomain()
	}
	return messages, total, nil
}

// Create inserts a message
func (r *GormMessageRepository) Create(ctx context.Context, m *inbox.ContactMessage) error {
	return r.db.WithContext(ctx).Create(models.ContactMessageModelFromDomain(m)).Error
}

// Update persists a status change
func (r *GormMessageRepository) Update(ctx context.Context, m *inbox.ContactMessage) error {
	result := r.db.WithContext(ctx).Model(&models.ContactMessageModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"status": string(m.Status), "updated_at": m.UpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("message")
	}
	return nil
}

// Delete removes a message
func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("message")
	}
	return nil
}

// CountByStatus counts messages in one status
func (r *GormMessageRepository) CountByStatus(ctx context.Context, status inbox.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessageModel{}).
		Where("status = ?", string(status)).
		Count(&n).Error
	return n, err
}

// DeleteArchivedBefore removes archived messages last touched before cutoff
func (r *GormMessageRepository) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(inbox.StatusArchived), cutoff).
		Delete(&models.ContactMessageModel{})
	return result.RowsAffected, result.Error
}
