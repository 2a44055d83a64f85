package creative

import (
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/creative"
)

// TextInput asks for a generated post
type TextInput struct {
	Kind       string
	Topic      string
	Tone       string
	AllianceID *uuid.UUID
}

// TextResponse is generated text plus what is left of the caller's quota
type TextResponse struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
}

// ImageInput asks for a generated image
type ImageInput struct {
	Prompt string
	Style  string
}

// ImageResponse is a stored image with a short-lived download URL
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Prompt       string    `json:"prompt"`
	Style        string    `json:"style"`
	Model        string    `json:"model"`
	SizeBytes    int64     `json:"size_bytes"`
	URL          string    `json:"url"`
	URLExpiresAt time.Time `json:"url_expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	Remaining    *int      `json:"remaining,omitempty"`
}

func toImageResponse(img *creative.GeneratedImage, url string, expires time.Time) ImageResponse {
	return ImageResponse{
		ID:           img.ID,
		UserID:       img.UserID,
		Prompt:       img.Prompt,
		Style:        string(img.Style),
		Model:        img.Model,
		SizeBytes:    img.SizeBytes,
		URL:          url,
		URLExpiresAt: expires,
		CreatedAt:    img.CreatedAt,
	}
}
