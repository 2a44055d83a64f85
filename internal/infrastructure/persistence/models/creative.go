package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/creative"
	"gorm.io/datatypes"
)

// GeneratedImageModel is the persistence model for AI generated images
type GeneratedImageModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Prompt      string         `gorm:"type:text;not null"`
	Style       string         `gorm:"type:varchar(16);not null"`
	StorageKey  string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContentType string         `gorm:"type:varchar(64);not null"`
	SizeBytes   int64          `gorm:"not null;default:0"`
	Model       string         `gorm:"type:varchar(64)"`
	Params      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (GeneratedImageModel) TableName() string {
	return "ai_generated_images"
}

// ToDomain converts the model to a domain image
func (m *GeneratedImageModel) ToDomain() *creative.GeneratedImage {
	var params map[string]any
	if len(m.Params) > 0 {
		_ = json.Unmarshal(m.Params, &params)
	}
	return &creative.GeneratedImage{
		ID:          m.ID,
		UserID:      m.UserID,
		Prompt:      m.Prompt,
		Style:       creative.Style(m.Style),
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		Model:       m.Model,
		Params:      params,
		CreatedAt:   m.CreatedAt,
	}
}

// GeneratedImageModelFromDomain creates a model from a domain image
func GeneratedImageModelFromDomain(g *creative.GeneratedImage) (*GeneratedImageModel, error) {
	var params datatypes.JSON
	if g.Params != nil {
		raw, err := json.Marshal(g.Params)
		if err != nil {
			return nil, err
		}
		params = datatypes.JSON(raw)
	}
	return &GeneratedImageModel{
		ID:          g.ID,
		UserID:      g.UserID,
		Prompt:      g.Prompt,
		Style:       string(g.Style),
		StorageKey:  g.StorageKey,
		ContentType: g.ContentType,
		SizeBytes:   g.SizeBytes,
		Model:       g.Model,
		Params:      params,
		CreatedAt:   g.CreatedAt,
	}, nil
}

// RateLimitModel is one fixed-window counter row
type RateLimitModel struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action      string    `gorm:"type:varchar(32);primaryKey"`
	WindowStart time.Time `gorm:"primaryKey"`
	Count       int       `gorm:"not null;default:0"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RateLimitModel) TableName() string {
	return "rate_limits"
}
