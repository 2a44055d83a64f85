package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProfileRepository implements membership.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its auth user ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "profile")
	}
	return model.ToDomain(), nil
}

// FindAll lists profiles matching the filter
func (r *GormProfileRepository) FindAll(ctx context.Context, filter membership.ProfileFilter) ([]*membership.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ProfileModel{})
	if filter.Role != nil {
		q = q.Where("role = ?", string(*filter.Role))
	}
	if filter.AllianceID != nil {
		q = q.Where("alliance_id = ?", *filter.AllianceID)
	}
	if filter.Keyword != "" {
		kw := keywordPattern(filter.Keyword)
		q = q.Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, kw, kw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProfileModel
	if err := paginate(q, filter.Filter, profileSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	profiles := make([]*membership.Profile, len(rows))
	for i := range rows {
		profiles[i] = rows[i].ToDomain()
	}
	return profiles, total, nil
}

// Create inserts a profile
func (r *GormProfileRepository) Create(ctx context.Context, profile *membership.Profile) error {
	err := r.db.WithContext(ctx).Create(models.ProfileModelFromDomain(profile)).Error
	return translateError(err, "profile already exists")
}

// Update overwrites a profile's mutable columns
func (r *GormProfileRepository) Update(ctx context.Context, profile *membership.Profile) error {
	model := models.ProfileModelFromDomain(profile)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translateError(result.Error, "profile conflicts with an existing profile")
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("profile")
	}
	return nil
}

// Delete removes a profile
func (r *GormProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("profile")
	}
	return nil
}

// detachMembers demotes every member of the alliance back to a plain user
func detachMembers(tx *gorm.DB, allianceID uuid.UUID) error {
	return tx.Model(&models.ProfileModel{}).
		Where("alliance_id = ?", allianceID).
		Updates(map[string]any{
			"alliance_id":       nil,
			"can_edit_alliance": false,
			"role": gorm.Expr("CASE WHEN role IN ? THEN ? ELSE role END",
				[]string{string(membership.RoleMember), string(membership.RoleR4), string(membership.RoleR5)},
				string(membership.RoleUser)),
		}).Error
}

// CountByRole counts profiles per role
func (r *GormProfileRepository) CountByRole(ctx context.Context) (map[membership.Role]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[membership.Role]int64, len(rows))
	for _, row := range rows {
		counts[membership.Role(row.Role)] = row.Count
	}
	return counts, nil
}

// Emails returns the non-empty addresses of profiles holding any of the roles
func (r *GormProfileRepository) Emails(ctx context.Context, roles ...membership.Role) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	var emails []string
	err := r.db.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("role IN ? AND email <> ''", names).
		Order("email").
		Pluck("email", &emails).Error
	return emails, err
}
