package creative

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ImageRepository persists generated image records
type ImageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GeneratedImage, error)
	// FindAll lists images, newest first; a nil userID lists everyone's
	FindAll(ctx context.Context, userID *uuid.UUID, limit int) ([]*GeneratedImage, error)
	Create(ctx context.Context, image *GeneratedImage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RateLimitStore counts quota usage per user, action and window
type RateLimitStore interface {
	// Increment adds one to the window counter and returns the new count
	Increment(ctx context.Context, userID uuid.UUID, action Action, windowStart time.Time, window time.Duration) (int, error)
	// Decrement gives back a unit consumed by a failed generation
	Decrement(ctx context.Context, userID uuid.UUID, action Action, windowStart time.Time) error
	// PurgeBefore drops windows that started before cutoff
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TextGenerator produces text from prompts
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// ImageGenerator produces a PNG from a prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}

// ImageResult is the raw provider output
type ImageResult struct {
	PNG           []byte
	Model         string
	RevisedPrompt string
	Size          string
}
