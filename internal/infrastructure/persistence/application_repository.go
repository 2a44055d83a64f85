package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormApplicationRepository implements recruitment.ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByID finds an application by ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*recruitment.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "application")
	}
	return model.ToDomain(), nil
}

// FindAll lists applications matching the filter, newest first by default
func (r *GormApplicationRepository) FindAll(ctx context.Context, filter recruitment.ApplicationFilter) ([]*recruitment.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ApplicationModel{})
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.AllianceID != nil {
		q = q.Where("target_alliance_id = ?", *filter.AllianceID)
	}
	if filter.Keyword != "" {
		kw := keywordPattern(filter.Keyword)
		q = q.Where(`(LOWER(player_name) LIKE ? ESCAPE '\' OR game_player_id LIKE ? ESCAPE '\')`, kw, kw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ApplicationModel
	if err := paginate(q, filter.Filter, applicationSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	apps := make([]*recruitment.Application, len(rows))
	for i := range rows {
		apps[i] = rows[i].ToDomain()
	}
	return apps, total, nil
}

// Create inserts an application
func (r *GormApplicationRepository) Create(ctx context.Context, app *recruitment.Application) error {
	return r.db.WithContext(ctx).Create(models.ApplicationModelFromDomain(app)).Error
}

// Update overwrites an application's mutable columns
func (r *GormApplicationRepository) Update(ctx context.Context, app *recruitment.Application) error {
	model := models.ApplicationModelFromDomain(app)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("application")
	}
	return nil
}

// CountByStatus counts applications per status, optionally for one alliance
func (r *GormApplicationRepository) CountByStatus(ctx context.Context, allianceID *uuid.UUID) (map[recruitment.Status]int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ApplicationModel{})
	if allianceID != nil {
		q = q.Where("target_alliance_id = ?", *allianceID)
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[recruitment.Status]int64, len(rows))
	for _, row := range rows {
		counts[recruitment.Status(row.Status)] = row.Count
	}
	return counts, nil
}
