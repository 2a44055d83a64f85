package creative

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

// Style is a preset appended to image prompts
type Style string

const (
	StylePoster       Style = "poster"
	StyleBanner       Style = "banner"
	StyleEmblem       Style = "emblem"
	StyleIllustration Style = "illustration"
)

var stylePrompts = map[Style]string{
	StylePoster:       "bold event poster, high contrast, snowy post-apocalyptic setting",
	StyleBanner:       "wide alliance banner, heraldic, frost palette",
	StyleEmblem:       "flat vector emblem on plain background, centered",
	StyleIllustration: "painterly illustration, cold winter light",
}

const (
	minImagePromptLen = 3
	maxImagePromptLen = 1000
)

// ImageRequest is a validated image generation request
type ImageRequest struct {
	Prompt string
	Style  Style
}

// NewImageRequest validates prompt and style
func NewImageRequest(prompt string, style Style) (*ImageRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if n := membership.RuneLen(prompt); n < minImagePromptLen || n > maxImagePromptLen {
		return nil, shared.NewInvalidInputError("prompt must be 3 to 1000 characters")
	}
	if style == "" {
		style = StylePoster
	}
	if _, ok := stylePrompts[style]; !ok {
		return nil, shared.NewInvalidInputError("unknown style %q", style)
	}
	return &ImageRequest{Prompt: prompt, Style: style}, nil
}

// FullPrompt combines the user prompt with the style preset
func (r *ImageRequest) FullPrompt() string {
	return fmt.Sprintf("%s. Style: %s.", r.Prompt, stylePrompts[r.Style])
}

// GeneratedImage is the stored result of an image generation
type GeneratedImage struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Prompt      string
	Style       Style
	StorageKey  string
	ContentType string
	SizeBytes   int64
	Model       string
	Params      map[string]any
	CreatedAt   time.Time
}

// NewGeneratedImage records an image that has been uploaded to storage
func NewGeneratedImage(userID uuid.UUID, req *ImageRequest, model string, params map[string]any) *GeneratedImage {
	id := uuid.New()
	return &GeneratedImage{
		ID:          id,
		UserID:      userID,
		Prompt:      req.Prompt,
		Style:       req.Style,
		StorageKey:  fmt.Sprintf("ai-images/%s/%s.png", userID, id),
		ContentType: "image/png",
		Model:       model,
		Params:      params,
		CreatedAt:   time.Now(),
	}
}

// CanBeManagedBy reports owner or admin access
func (g *GeneratedImage) CanBeManagedBy(p *membership.Profile) bool {
	return p.IsAdmin() || g.UserID == p.ID
}
