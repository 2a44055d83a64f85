package creative

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/creative"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	kindText    = "text"
	kindImage   = "image"
	listLimit   = 100
	minimumRole = membership.RoleR4
)

// ObjectStorage stores generated images
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}

// Quotas are the per-user generation allowances
type Quotas struct {
	Text  creative.Quota
	Image creative.Quota
}

// CreativeService generates AI text and images for alliance officers.
// Generators and storage are optional; without them the matching
// operations report the service as unavailable.
type CreativeService struct {
	text      creative.TextGenerator
	images    creative.ImageGenerator
	storage   ObjectStorage
	repo      creative.ImageRepository
	limits    creative.RateLimitStore
	alliances membership.AllianceRepository
	quotas    Quotas
	logger    *zap.Logger
	metrics   *telemetry.BusinessMetrics
	now       func() time.Time
}

// NewCreativeService creates a new CreativeService
func NewCreativeService(
	text creative.TextGenerator,
	images creative.ImageGenerator,
	storage ObjectStorage,
	repo creative.ImageRepository,
	limits creative.RateLimitStore,
	alliances membership.AllianceRepository,
	quotas Quotas,
	logger *zap.Logger,
) *CreativeService {
	return &CreativeService{
		text:      text,
		images:    images,
		storage:   storage,
		repo:      repo,
		limits:    limits,
		alliances: alliances,
		quotas:    quotas,
		logger:    logger,
		now:       time.Now,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *CreativeService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// GenerateText writes a post for the actor's alliance, or the one named in the input
func (s *CreativeService) GenerateText(ctx context.Context, actor *membership.Profile, in TextInput) (*TextResponse, error) {
	if err := checkAccess(actor); err != nil {
		return nil, err
	}
	if s.text == nil {
		return nil, shared.ErrUnavailable
	}

	allianceName, err := s.allianceName(ctx, actor, in.AllianceID)
	if err != nil {
		return nil, err
	}
	req, err := creative.NewTextRequest(creative.TextKind(in.Kind), in.Topic, creative.Tone(in.Tone), allianceName)
	if err != nil {
		return nil, err
	}

	quota, err := s.consume(ctx, actor.ID, s.quotas.Text)
	if err != nil {
		return nil, err
	}

	system, prompt := req.Prompt()
	text, err := s.text.GenerateText(ctx, system, prompt)
	s.metrics.AIGeneration(kindText, err)
	if err != nil {
		quota.refund(ctx)
		s.logger.Warn("Text generation failed", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("text generation failed: %w", err)
	}

	return &TextResponse{Kind: string(req.Kind), Text: text, Remaining: quota.remaining()}, nil
}

// GenerateImage creates an image, stores it and returns a download URL
func (s *CreativeService) GenerateImage(ctx context.Context, actor *membership.Profile, in ImageInput) (*ImageResponse, error) {
	if err := checkAccess(actor); err != nil {
		return nil, err
	}
	if s.images == nil || s.storage == nil {
		return nil, shared.ErrUnavailable
	}
	req, err := creative.NewImageRequest(in.Prompt, creative.Style(in.Style))
	if err != nil {
		return nil, err
	}

	quota, err := s.consume(ctx, actor.ID, s.quotas.Image)
	if err != nil {
		return nil, err
	}

	result, err := s.images.GenerateImage(ctx, req.FullPrompt())
	s.metrics.AIGeneration(kindImage, err)
	if err != nil {
		quota.refund(ctx)
		s.logger.Warn("Image generation failed", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	params := map[string]any{"size": result.Size}
	if result.RevisedPrompt != "" {
		params["revised_prompt"] = result.RevisedPrompt
	}
	img := creative.NewGeneratedImage(actor.ID, req, result.Model, params)
	img.SizeBytes = int64(len(result.PNG))

	if err := s.storage.Put(ctx, img.StorageKey, result.PNG, img.ContentType); err != nil {
		quota.refund(ctx)
		return nil, err
	}
	if err := s.repo.Create(ctx, img); err != nil {
		if delErr := s.storage.Delete(ctx, img.StorageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned image", zap.String("key", img.StorageKey), zap.Error(delErr))
		}
		quota.refund(ctx)
		return nil, err
	}

	url, expires, err := s.storage.PresignGet(ctx, img.StorageKey)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Image generated",
		zap.String("image_id", img.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int64("size_bytes", img.SizeBytes))

	resp := toImageResponse(img, url, expires)
	remaining := quota.remaining()
	resp.Remaining = &remaining
	return &resp, nil
}

// ListImages returns the actor's images; admins see everyone's
func (s *CreativeService) ListImages(ctx context.Context, actor *membership.Profile) ([]ImageResponse, error) {
	if err := checkAccess(actor); err != nil {
		return nil, err
	}
	var owner *uuid.UUID
	if !actor.IsAdmin() {
		owner = &actor.ID
	}
	images, err := s.repo.FindAll(ctx, owner, listLimit)
	if err != nil {
		return nil, err
	}

	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		var url string
		var expires time.Time
		if s.storage != nil {
			if url, expires, err = s.storage.PresignGet(ctx, img.StorageKey); err != nil {
				return nil, err
			}
		}
		out = append(out, toImageResponse(img, url, expires))
	}
	return out, nil
}

// DeleteImage removes the stored object and its record
func (s *CreativeService) DeleteImage(ctx context.Context, actor *membership.Profile, id uuid.UUID) error {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !img.CanBeManagedBy(actor) {
		return shared.NewForbiddenError("you can only delete your own images")
	}
	if s.storage != nil {
		if err := s.storage.Delete(ctx, img.StorageKey); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Image deleted",
		zap.String("image_id", id.String()),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

// allianceName resolves the alliance a post is written for. Only state
// leadership may write for an alliance other than their own.
func (s *CreativeService) allianceName(ctx context.Context, actor *membership.Profile, allianceID *uuid.UUID) (string, error) {
	if allianceID == nil {
		allianceID = actor.AllianceID
	} else if !actor.IsStateLeadership() && !actor.BelongsTo(*allianceID) {
		return "", shared.NewForbiddenError("you can only write posts for your own alliance")
	}
	if allianceID == nil {
		return "", nil
	}
	a, err := s.alliances.FindByID(ctx, *allianceID)
	if err != nil {
		return "", err
	}
	return a.Name, nil
}

// usage is one consumed unit of quota
type usage struct {
	store       creative.RateLimitStore
	userID      uuid.UUID
	quota       creative.Quota
	windowStart time.Time
	count       int
	logger      *zap.Logger
}

// consume takes one unit of the quota. A request over the limit gives its
// unit back straight away so rejected calls never count.
func (s *CreativeService) consume(ctx context.Context, userID uuid.UUID, quota creative.Quota) (*usage, error) {
	u := &usage{
		store:       s.limits,
		userID:      userID,
		quota:       quota,
		windowStart: quota.WindowStart(s.now()),
		logger:      s.logger,
	}
	count, err := s.limits.Increment(ctx, userID, quota.Action, u.windowStart, quota.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to check quota: %w", err)
	}
	u.count = count
	if quota.Exceeded(count) {
		u.refund(ctx)
		s.metrics.QuotaRejected(string(quota.Action))
		return nil, shared.NewRateLimitError(fmt.Sprintf("quota of %d reached; resets at %s",
			quota.Limit, quota.WindowEnd(s.now()).Format(time.RFC3339)))
	}
	return u, nil
}

func (u *usage) refund(ctx context.Context) {
	if err := u.store.Decrement(ctx, u.userID, u.quota.Action, u.windowStart); err != nil {
		u.logger.Warn("Failed to refund quota",
			zap.String("user_id", u.userID.String()),
			zap.String("action", string(u.quota.Action)),
			zap.Error(err))
	}
}

func (u *usage) remaining() int {
	if u.quota.Limit <= 0 {
		return -1
	}
	if left := u.quota.Limit - u.count; left > 0 {
		return left
	}
	return 0
}

func checkAccess(actor *membership.Profile) error {
	if !actor.Role.AtLeast(minimumRole) {
		return shared.NewForbiddenError("AI tools are available to R4 and above")
	}
	return nil
}
