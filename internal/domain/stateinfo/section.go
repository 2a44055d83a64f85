package stateinfo

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
)

var sectionKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

const (
	maxTitleLen   = 120
	maxContentLen = 20000
)

// Section is one published block of state information, stored as markdown
type Section struct {
	Key       string
	Title     string
	Content   string
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSection creates a section after validating key, title and content
func NewSection(key, title, content string, editor *uuid.UUID) (*Section, error) {
	if !ValidKey(key) {
		return nil, shared.NewInvalidInputError("section key must be lower-case letters, digits and dashes")
	}
	now := time.Now()
	s := &Section{Key: key, CreatedAt: now}
	if err := s.Edit(title, content, editor); err != nil {
		return nil, err
	}
	return s, nil
}

// ValidKey reports whether key is a usable section slug
func ValidKey(key string) bool {
	return sectionKeyPattern.MatchString(key)
}

// Edit replaces the section's title and content
func (s *Section) Edit(title, content string, editor *uuid.UUID) error {
	title, content, err := validateText(title, content)
	if err != nil {
		return err
	}
	s.Title = title
	s.Content = content
	s.UpdatedBy = editor
	s.UpdatedAt = time.Now()
	return nil
}

func validateText(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if n := membership.RuneLen(title); n < 1 || n > maxTitleLen {
		return "", "", shared.NewInvalidInputError("title must be 1 to 120 characters")
	}
	if membership.RuneLen(content) > maxContentLen {
		return "", "", shared.NewInvalidInputError("content cannot exceed 20000 characters")
	}
	return title, content, nil
}
