package recruitment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/recruitment"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/spreadsheet"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	stageAlliance  = "alliance"
	stagePresident = "president"
)

// DecisionNotifier tells an applicant about a final decision
type DecisionNotifier interface {
	NotifyApplicationDecision(ctx context.Context, to string, app *recruitment.Application, allianceName string) error
}

// ApplicationService runs the two-stage migration application workflow
type ApplicationService struct {
	apps      recruitment.ApplicationRepository
	alliances membership.AllianceRepository
	profiles  membership.ProfileRepository
	notifier  DecisionNotifier
	publisher shared.EventPublisher
	exportMax int
	logger    *zap.Logger
	metrics   *telemetry.BusinessMetrics
}

// NewApplicationService creates a new ApplicationService. notifier and publisher may be nil.
func NewApplicationService(
	apps recruitment.ApplicationRepository,
	alliances membership.AllianceRepository,
	profiles membership.ProfileRepository,
	notifier DecisionNotifier,
	publisher shared.EventPublisher,
	exportMax int,
	logger *zap.Logger,
) *ApplicationService {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	if exportMax <= 0 {
		exportMax = 10000
	}
	return &ApplicationService{
		apps:      apps,
		alliances: alliances,
		profiles:  profiles,
		notifier:  notifier,
		publisher: publisher,
		exportMax: exportMax,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *ApplicationService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// Submit records a new application. applicantID is set when the applicant is signed in.
func (s *ApplicationService) Submit(ctx context.Context, applicantID *uuid.UUID, in SubmitInput) (*SubmitResponse, error) {
	alliance, err := s.alliances.FindByID(ctx, in.TargetAllianceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewInvalidInputError("target alliance does not exist")
		}
		return nil, err
	}
	if !alliance.AcceptsApplications() {
		return nil, shared.NewInvalidStateError("%s is not accepting applications", alliance.Name)
	}

	app, code, err := recruitment.NewApplication(recruitment.ApplicationInput{
		PlayerName:       in.PlayerName,
		GamePlayerID:     in.GamePlayerID,
		CurrentState:     in.CurrentState,
		FurnaceLevel:     in.FurnaceLevel,
		Power:            in.Power,
		TargetAllianceID: in.TargetAllianceID,
		DiscordHandle:    in.DiscordHandle,
		Message:          in.Message,
		ApplicantID:      applicantID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.ApplicationSubmitted()
	s.publish(ctx, app)
	s.logger.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("alliance_id", alliance.ID.String()))

	return &SubmitResponse{Application: ToApplicationResponse(app), TrackingCode: code}, nil
}

// Status looks an application up with its tracking code. A wrong code
// reads as not found so ids cannot be probed.
func (s *ApplicationService) Status(ctx context.Context, id uuid.UUID, code string) (*StatusResponse, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.VerifyTrackingCode(code) {
		return nil, shared.NewNotFoundError("application")
	}

	resp := &StatusResponse{
		ID:              app.ID,
		PlayerName:      app.PlayerName,
		Status:          string(app.Status),
		RejectionReason: app.RejectionReason,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
	if alliance, err := s.alliances.FindByID(ctx, app.TargetAllianceID); err == nil {
		resp.AllianceName = alliance.Name
	}
	return resp, nil
}

// Withdraw lets the applicant pull a pending application
func (s *ApplicationService) Withdraw(ctx context.Context, id uuid.UUID, code string) (*StatusResponse, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.Withdraw(code); err != nil {
		if errors.Is(err, shared.ErrForbidden) {
			return nil, shared.NewNotFoundError("application")
		}
		return nil, err
	}
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	s.publish(ctx, app)

	return &StatusResponse{
		ID:         app.ID,
		PlayerName: app.PlayerName,
		Status:     string(app.Status),
		CreatedAt:  app.CreatedAt,
		UpdatedAt:  app.UpdatedAt,
	}, nil
}

// List returns applications visible to the reviewer. Alliance officers only
// ever see their own alliance.
func (s *ApplicationService) List(ctx context.Context, actor *membership.Profile, in ListInput) (shared.Paginated[ApplicationResponse], error) {
	var empty shared.Paginated[ApplicationResponse]

	filter := recruitment.ApplicationFilter{
		Filter: shared.Filter{
			Page:     in.Page,
			PageSize: in.PageSize,
			Keyword:  in.Keyword,
			OrderBy:  in.OrderBy,
			OrderDir: in.OrderDir,
		}.Normalize(),
		AllianceID: in.AllianceID,
	}
	if in.Status != "" {
		status := recruitment.Status(in.Status)
		if !status.IsValid() {
			return empty, shared.NewInvalidInputError("unknown status %q", in.Status)
		}
		filter.Status = &status
	}

	switch {
	case actor.IsStateLeadership():
	case actor.Role.IsAllianceOfficer() && actor.AllianceID != nil:
		if in.AllianceID != nil && *in.AllianceID != *actor.AllianceID {
			return empty, shared.NewForbiddenError("you can only review applications to your alliance")
		}
		filter.AllianceID = actor.AllianceID
	default:
		return empty, shared.NewForbiddenError("only alliance officers and state leadership can review applications")
	}

	apps, total, err := s.apps.FindAll(ctx, filter)
	if err != nil {
		return empty, err
	}
	items := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		items[i] = ToApplicationResponse(a)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Get returns one application within the reviewer's scope
func (s *ApplicationService) Get(ctx context.Context, actor *membership.Profile, id uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageAlliance(app.TargetAllianceID) {
		return nil, shared.NewForbiddenError("you cannot view this application")
	}
	resp := ToApplicationResponse(app)
	return &resp, nil
}

// AllianceReview records the target alliance's decision
func (s *ApplicationService) AllianceReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in ReviewInput) (*ApplicationResponse, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageAlliance(app.TargetAllianceID) {
		return nil, shared.NewForbiddenError("only officers of the target alliance can review this application")
	}
	if err := app.AllianceReview(actor.ID, recruitment.Decision(in.Decision), in.Reason); err != nil {
		return nil, err
	}
	return s.saveReview(ctx, actor, app, stageAlliance, in.Decision)
}

// PresidentReview records the final decision
func (s *ApplicationService) PresidentReview(ctx context.Context, actor *membership.Profile, id uuid.UUID, in ReviewInput) (*ApplicationResponse, error) {
	if !actor.IsStateLeadership() {
		return nil, shared.NewForbiddenError("only the president or an admin can give final approval")
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.PresidentReview(actor.ID, recruitment.Decision(in.Decision), in.Reason); err != nil {
		return nil, err
	}
	return s.saveReview(ctx, actor, app, stagePresident, in.Decision)
}

func (s *ApplicationService) saveReview(ctx context.Context, actor *membership.Profile, app *recruitment.Application, stage, decision string) (*ApplicationResponse, error) {
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.ReviewDecision(stage, decision)
	s.publish(ctx, app)
	s.logger.Info("Application reviewed",
		zap.String("application_id", app.ID.String()),
		zap.String("stage", stage),
		zap.String("status", string(app.Status)),
		zap.String("reviewer_id", actor.ID.String()))

	if app.Status == recruitment.StatusPresidentApproved || app.Status == recruitment.StatusRejected {
		s.notifyDecision(ctx, app)
	}
	resp := ToApplicationResponse(app)
	return &resp, nil
}

// notifyDecision emails the applicant when they applied while signed in
func (s *ApplicationService) notifyDecision(ctx context.Context, app *recruitment.Application) {
	if s.notifier == nil || app.ApplicantID == nil {
		return
	}
	applicant, err := s.profiles.FindByID(ctx, *app.ApplicantID)
	if err != nil || applicant.Email == "" {
		return
	}
	var allianceName string
	if alliance, err := s.alliances.FindByID(ctx, app.TargetAllianceID); err == nil {
		allianceName = alliance.Name
	}
	if err := s.notifier.NotifyApplicationDecision(ctx, applicant.Email, app, allianceName); err != nil {
		s.logger.Warn("Failed to notify applicant",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
}

func (s *ApplicationService) publish(ctx context.Context, app *recruitment.Application) {
	if err := shared.PublishPending(ctx, s.publisher, app); err != nil {
		s.logger.Warn("Failed to publish application event",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
}

// Export renders all applications, newest first, as an xlsx workbook
func (s *ApplicationService) Export(ctx context.Context, actor *membership.Profile, status string) ([]byte, error) {
	if !actor.IsStateLeadership() {
		return nil, shared.NewForbiddenError("only the president or an admin can export applications")
	}
	filter := recruitment.ApplicationFilter{
		Filter: shared.Filter{Page: 1, PageSize: shared.MaxPageSize, OrderBy: "created_at", OrderDir: "desc"},
	}
	if status != "" {
		st := recruitment.Status(status)
		if !st.IsValid() {
			return nil, shared.NewInvalidInputError("unknown status %q", status)
		}
		filter.Status = &st
	}

	alliances, err := s.alliances.FindAll(ctx, membership.AllianceFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(alliances))
	for _, a := range alliances {
		names[a.ID] = a.Name
	}

	rows := make([][]any, 0, 64)
	for len(rows) < s.exportMax {
		apps, _, err := s.apps.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			rows = append(rows, []any{
				a.ID, a.PlayerName, a.GamePlayerID, a.CurrentState, a.FurnaceLevel, a.Power,
				names[a.TargetAllianceID], string(a.Status), a.DiscordHandle, a.RejectionReason,
				a.CreatedAt, a.AllianceReviewedAt, a.PresidentReviewedAt,
			})
		}
		if len(apps) < filter.PageSize {
			break
		}
		filter.Page++
	}
	if len(rows) > s.exportMax {
		rows = rows[:s.exportMax]
	}

	return spreadsheet.Render(spreadsheet.Table{
		Sheet: "Applications",
		Headers: []string{
			"ID", "Player", "Game Player ID", "Current State", "Furnace Level", "Power",
			"Alliance", "Status", "Discord", "Rejection Reason",
			"Submitted At", "Alliance Reviewed At", "President Reviewed At",
		},
		Rows: rows,
	})
}
