package models

import (
	"github.com/state244/hub/internal/domain/inbox"
	"github.com/state244/hub/internal/domain/shared"
)

// ContactMessageModel is the persistence model for contact messages
type ContactMessageModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(254);not null"`
	Subject string `gorm:"type:varchar(200);not null"`
	Message string `gorm:"type:text;not null"`
	Status  string `gorm:"type:varchar(16);not null;default:new;index"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ToDomain converts the model to a domain message
func (m *ContactMessageModel) ToDomain() *inbox.ContactMessage {
	return &inbox.ContactMessage{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Name:              m.Name,
		Email:             m.Email,
		Subject:           m.Subject,
		Message:           m.Message,
		Status:            inbox.Status(m.Status),
	}
}

// ContactMessageModelFromDomain creates a model from a domain message
func ContactMessageModelFromDomain(c *inbox.ContactMessage) *ContactMessageModel {
	m := &ContactMessageModel{
		Name:    c.Name,
		Email:   c.Email,
		Subject: c.Subject,
		Message: c.Message,
		Status:  string(c.Status),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
