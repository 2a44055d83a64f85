package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/warplan"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlanRepository implements warplan.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*warplan.Plan, error) {
	var model models.WarPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "war plan")
	}
	return model.ToDomain(), nil
}

// FindByAlliance lists plans for one alliance, or all plans when allianceID is nil
func (r *GormPlanRepository) FindByAlliance(ctx context.Context, allianceID *uuid.UUID) ([]*warplan.Plan, error) {
	q := r.db.WithContext(ctx).Model(&models.WarPlanModel{})
	if allianceID != nil {
		q = q.Where("alliance_id = ?", *allianceID)
	}
	var rows []models.WarPlanModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	plans := make([]*warplan.Plan, len(rows))
	for i := range rows {
		plans[i] = rows[i].ToDomain()
	}
	return plans, nil
}

// Create inserts a plan
func (r *GormPlanRepository) Create(ctx context.Context, plan *warplan.Plan) error {
	return r.db.WithContext(ctx).Create(models.WarPlanModelFromDomain(plan)).Error
}

// Update overwrites a plan's mutable columns
func (r *GormPlanRepository) Update(ctx context.Context, plan *warplan.Plan) error {
	model := models.WarPlanModelFromDomain(plan)
	result := r.db.WithContext(ctx).Model(model).Select("*").Omit("id", "created_at", "alliance_id", "created_by").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("war plan")
	}
	return nil
}

// Delete removes the plan with its roster and assignments
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("war_plan_id = ?", id).Delete(&models.AssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("war_plan_id = ?", id).Delete(&models.RosterPlayerModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WarPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("war plan")
		}
		return nil
	})
}

// CountByAlliance counts an alliance's plans
func (r *GormPlanRepository) CountByAlliance(ctx context.Context, allianceID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.WarPlanModel{}).
		Where("alliance_id = ?", allianceID).
		Count(&n).Error
	return n, err
}

// FindRoster lists a plan's players, strongest first
func (r *GormPlanRepository) FindRoster(ctx context.Context, planID uuid.UUID) ([]*warplan.RosterPlayer, error) {
	var rows []models.RosterPlayerModel
	if err := r.db.WithContext(ctx).
		Where("war_plan_id = ?", planID).
		Order("power DESC").Order("player_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	players := make([]*warplan.RosterPlayer, len(rows))
	for i := range rows {
		players[i] = rows[i].ToDomain()
	}
	return players, nil
}

// FindRosterPlayer finds one player on a plan's roster
func (r *GormPlanRepository) FindRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) (*warplan.RosterPlayer, error) {
	var model models.RosterPlayerModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ? AND war_plan_id = ?", playerID, planID).Error; err != nil {
		return nil, notFoundAs(err, "roster player")
	}
	return model.ToDomain(), nil
}

// SaveRosterPlayer inserts or updates a roster player
func (r *GormPlanRepository) SaveRosterPlayer(ctx context.Context, player *warplan.RosterPlayer) error {
	return r.db.WithContext(ctx).Save(models.RosterPlayerModelFromDomain(player)).Error
}

// DeleteRosterPlayer removes the player and their assignment
func (r *GormPlanRepository) DeleteRosterPlayer(ctx context.Context, planID, playerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("war_plan_id = ? AND player_id = ?", planID, playerID).
			Delete(&models.AssignmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND war_plan_id = ?", playerID, planID).Delete(&models.RosterPlayerModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("roster player")
		}
		return nil
	})
}

// FindAssignments lists a plan's team assignments
func (r *GormPlanRepository) FindAssignments(ctx context.Context, planID uuid.UUID) ([]*warplan.Assignment, error) {
	var rows []models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where("war_plan_id = ?", planID).
		Order("team ASC").Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	assignments := make([]*warplan.Assignment, len(rows))
	for i := range rows {
		assignments[i] = rows[i].ToDomain()
	}
	return assignments, nil
}

// UpsertAssignment inserts the assignment or moves an existing one
func (r *GormPlanRepository) UpsertAssignment(ctx context.Context, assignment *warplan.Assignment) error {
	model := models.AssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "war_plan_id"}, {Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"team", "position", "updated_at"}),
	}).Create(model).Error
}

// DeleteAssignment moves a player back to the unassigned pool
func (r *GormPlanRepository) DeleteAssignment(ctx context.Context, planID, playerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("war_plan_id = ? AND player_id = ?", planID, playerID).
		Delete(&models.AssignmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("assignment")
	}
	return nil
}
