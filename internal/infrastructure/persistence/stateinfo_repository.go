package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
	"github.com/state244/hub/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSectionRepository implements stateinfo.SectionRepository using GORM
type GormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GormSectionRepository
func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// FindAll returns every section ordered by key
func (r *GormSectionRepository) FindAll(ctx context.Context) ([]*stateinfo.Section, error) {
	var rows []models.SectionModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sections := make([]*stateinfo.Section, len(rows))
	for i := range rows {
		sections[i] = rows[i].ToDomain()
	}
	return sections, nil
}

// FindByKey finds a section by its slug
func (r *GormSectionRepository) FindByKey(ctx context.Context, key string) (*stateinfo.Section, error) {
	var model models.SectionModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		return nil, notFoundAs(err, "section")
	}
	return model.ToDomain(), nil
}

// Save inserts the section or replaces its content
func (r *GormSectionRepository) Save(ctx context.Context, section *stateinfo.Section) error {
	return saveSection(r.db.WithContext(ctx), section)
}

func saveSection(db *gorm.DB, section *stateinfo.Section) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "updated_by", "updated_at"}),
	}).Create(models.SectionModelFromDomain(section)).Error
}

// GormProposalRepository implements stateinfo.ProposalRepository using GORM
type GormProposalRepository struct {
	db *gorm.DB
}

// NewGormProposalRepository creates a new GormProposalRepository
func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{db: db}
}

// FindByID finds a proposal by ID
func (r *GormProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*stateinfo.Proposal, error) {
	var model models.ProposalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "proposal")
	}
	return model.ToDomain(), nil
}

// FindAll lists proposals, newest first, optionally by status
func (r *GormProposalRepository) FindAll(ctx context.Context, status *stateinfo.ProposalStatus) ([]*stateinfo.Proposal, error) {
	q := r.db.WithContext(ctx).Model(&models.ProposalModel{})
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}
	var rows []models.ProposalModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	proposals := make([]*stateinfo.Proposal, len(rows))
	for i := range rows {
		proposals[i] = rows[i].ToDomain()
	}
	return proposals, nil
}

// Create inserts a proposal
func (r *GormProposalRepository) Create(ctx context.Context, proposal *stateinfo.Proposal) error {
	return r.db.WithContext(ctx).Create(models.ProposalModelFromDomain(proposal)).Error
}

// RecordVote persists a vote. The tally update only matches a row that is
// still pending with the tallies the caller saw, so concurrent voters
// cannot both resolve the same proposal.
func (r *GormProposalRepository) RecordVote(ctx context.Context, proposal *stateinfo.Proposal, vote *stateinfo.Vote, published *stateinfo.Section) error {
	prevApprove, prevReject := proposal.ApproveCount, proposal.RejectCount
	if vote.Decision == stateinfo.VoteApprove {
		prevApprove--
	} else {
		prevReject--
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.VoteModelFromDomain(vote)).Error; err != nil {
			return translateError(err, "you have already voted on this proposal")
		}

		result := tx.Model(&models.ProposalModel{}).
			Where("id = ? AND status = ? AND approve_count = ? AND reject_count = ?",
				proposal.ID, string(stateinfo.ProposalPending), prevApprove, prevReject).
			Updates(map[string]any{
				"status":        string(proposal.Status),
				"approve_count": proposal.ApproveCount,
				"reject_count":  proposal.RejectCount,
				"resolved_at":   proposal.ResolvedAt,
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewInvalidStateError("proposal changed while voting, please retry")
		}

		if published != nil {
			return saveSection(tx, published)
		}
		return nil
	})
}

// FindVotes lists a proposal's votes in casting order
func (r *GormProposalRepository) FindVotes(ctx context.Context, proposalID uuid.UUID) ([]*stateinfo.Vote, error) {
	var rows []models.VoteModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	votes := make([]*stateinfo.Vote, len(rows))
	for i := range rows {
		votes[i] = rows[i].ToDomain()
	}
	return votes, nil
}

// CountPending counts proposals awaiting votes
func (r *GormProposalRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProposalModel{}).
		Where("status = ?", string(stateinfo.ProposalPending)).
		Count(&n).Error
	return n, err
}
