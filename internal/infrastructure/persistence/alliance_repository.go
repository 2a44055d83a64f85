package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAllianceRepository implements membership.AllianceRepository using GORM
type GormAllianceRepository struct {
	db *gorm.DB
}

// NewGormAllianceRepository creates a new GormAllianceRepository
func NewGormAllianceRepository(db *gorm.DB) *GormAllianceRepository {
	return &GormAllianceRepository{db: db}
}

// FindByID finds an alliance by ID
func (r *GormAllianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Alliance, error) {
	var model models.AllianceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "alliance")
	}
	return model.ToDomain(), nil
}

// FindAll lists alliances, strongest first
func (r *GormAllianceRepository) FindAll(ctx context.Context, filter membership.AllianceFilter) ([]*membership.Alliance, error) {
	q := r.db.WithContext(ctx).Model(&models.AllianceModel{})
	if filter.RecruitmentStatus != nil {
		q = q.Where("recruitment_status = ?", string(*filter.RecruitmentStatus))
	}
	var rows []models.AllianceModel
	if err := q.Order("power DESC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	alliances := make([]*membership.Alliance, len(rows))
	for i := range rows {
		alliances[i] = rows[i].ToDomain()
	}
	return alliances, nil
}

// Create inserts an alliance; tag and name are unique
func (r *GormAllianceRepository) Create(ctx context.Context, alliance *membership.Alliance) error {
	err := r.db.WithContext(ctx).Create(models.AllianceModelFromDomain(alliance)).Error
	return translateError(err, "an alliance with this tag or name already exists")
}

// Update overwrites an alliance's mutable columns
func (r *GormAllianceRepository) Update(ctx context.Context, alliance *membership.Alliance) error {
	model := models.AllianceModelFromDomain(alliance)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "an alliance with this tag or name already exists")
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("alliance")
	}
	return nil
}

// Delete removes an alliance
func (r *GormAllianceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := detachMembers(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.AllianceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("alliance")
		}
		return nil
	})
}
