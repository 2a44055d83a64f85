// Package seed loads alliances and state information from a YAML file so a
// fresh deployment starts with the state's known alliances and guides.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/domain/stateinfo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the seed document
//
//	alliances:
//	  - tag: ABC
//	    name: Alpha Bravo
//	    recruitment_status: open
//	state_info:
//	  - key: rules
//	    title: State rules
//	    content: |
//	      ## NAP
type File struct {
	Alliances []Alliance `yaml:"alliances"`
	Sections  []Section  `yaml:"state_info"`
}

// Alliance is one seeded alliance, matched to existing rows by tag
type Alliance struct {
	Tag               string `yaml:"tag"`
	Name              string `yaml:"name"`
	Description       string `yaml:"description"`
	RecruitmentStatus string `yaml:"recruitment_status"`
	Language          string `yaml:"language"`
	DiscordURL        string `yaml:"discord_url"`
	Power             int64  `yaml:"power"`
	MemberCount       int    `yaml:"member_count"`
}

// Section is one seeded state info section, matched by key
type Section struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Result counts what Apply changed
type Result struct {
	AlliancesCreated int
	AlliancesUpdated int
	SectionsSaved    int
}

// Parse decodes a seed document. Unknown keys are rejected so typos surface.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Seeder writes a seed document through the repositories
type Seeder struct {
	alliances membership.AllianceRepository
	sections  stateinfo.SectionRepository
	logger    *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(alliances membership.AllianceRepository, sections stateinfo.SectionRepository, logger *zap.Logger) *Seeder {
	return &Seeder{alliances: alliances, sections: sections, logger: logger}
}

// Apply upserts every alliance by tag and every section by key. It is safe
// to run repeatedly. The first invalid entry stops the run.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result

	existing, err := s.alliances.FindAll(ctx, membership.AllianceFilter{})
	if err != nil {
		return res, fmt.Errorf("list alliances: %w", err)
	}
	byTag := make(map[string]*membership.Alliance, len(existing))
	for _, a := range existing {
		byTag[a.Tag] = a
	}

	for i, entry := range f.Alliances {
		in := entry.input()
		if current, ok := byTag[membership.NormalizeTag(entry.Tag)]; ok {
			if err := current.Apply(in); err != nil {
				return res, fmt.Errorf("alliance %d (%s): %w", i, entry.Tag, err)
			}
			if err := s.alliances.Update(ctx, current); err != nil {
				return res, fmt.Errorf("update alliance %s: %w", current.Tag, err)
			}
			res.AlliancesUpdated++
			continue
		}

		a, err := membership.NewAlliance(in)
		if err != nil {
			return res, fmt.Errorf("alliance %d (%s): %w", i, entry.Tag, err)
		}
		if err := s.alliances.Create(ctx, a); err != nil {
			return res, fmt.Errorf("create alliance %s: %w", a.Tag, err)
		}
		byTag[a.Tag] = a
		res.AlliancesCreated++
	}

	for i, entry := range f.Sections {
		sec, err := s.section(ctx, entry)
		if err != nil {
			return res, fmt.Errorf("section %d (%s): %w", i, entry.Key, err)
		}
		if err := s.sections.Save(ctx, sec); err != nil {
			return res, fmt.Errorf("save section %s: %w", sec.Key, err)
		}
		res.SectionsSaved++
	}

	s.logger.Info("Seed applied",
		zap.Int("alliances_created", res.AlliancesCreated),
		zap.Int("alliances_updated", res.AlliancesUpdated),
		zap.Int("sections_saved", res.SectionsSaved))
	return res, nil
}

func (s *Seeder) section(ctx context.Context, entry Section) (*stateinfo.Section, error) {
	current, err := s.sections.FindByKey(ctx, entry.Key)
	switch {
	case err == nil:
		if err := current.Edit(entry.Title, entry.Content, nil); err != nil {
			return nil, err
		}
		return current, nil
	case errors.Is(err, shared.ErrNotFound):
		return stateinfo.NewSection(entry.Key, entry.Title, entry.Content, nil)
	default:
		return nil, err
	}
}

func (a Alliance) input() membership.AllianceInput {
	in := membership.AllianceInput{
		Tag:         &a.Tag,
		Name:        &a.Name,
		Description: &a.Description,
		Language:    &a.Language,
		DiscordURL:  &a.DiscordURL,
		Power:       &a.Power,
		MemberCount: &a.MemberCount,
	}
	if a.RecruitmentStatus != "" {
		status := membership.RecruitmentStatus(a.RecruitmentStatus)
		in.RecruitmentStatus = &status
	}
	return in
}
