// Package catalog holds the static question catalog for the ISO 42001
// maturity assessment. The content is declarative data embedded at build
// time; the package only enumerates it and resolves question ownership.
package catalog

import (
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"

	"madurez42001/internal/model"
)

//go:embed data/catalog.json
var rawCatalog []byte

// Catalog is the loaded, validated question catalog. Read-only after Load.
type Catalog struct {
	sections []model.Section
	scale    []model.ScaleOption
	// explicit question -> owning section lookup; membership is never
	// inferred from id prefixes
	sectionOf map[string]string
	total     int
}

type catalogFile struct {
	Sections []model.Section     `json:"sections"`
	Scale    []model.ScaleOption `json:"scale"`
}

// Load parses and validates the embedded catalog. Called once at startup.
func Load() (*Catalog, error) {
	return parse(rawCatalog)
}

func parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "catalog: invalid json")
	}
	if len(file.Sections) == 0 {
		return nil, errors.New("catalog: no sections")
	}
	if len(file.Scale) != model.ScaleMax-model.ScaleMin+1 {
		return nil, errors.Errorf("catalog: scale must have %d options, got %d", model.ScaleMax-model.ScaleMin+1, len(file.Scale))
	}

	c := &Catalog{
		sections:  file.Sections,
		scale:     file.Scale,
		sectionOf: make(map[string]string),
	}
	seenSections := make(map[string]bool)
	for _, s := range file.Sections {
		if s.ID == "" {
			return nil, errors.New("catalog: section with empty id")
		}
		if seenSections[s.ID] {
			return nil, errors.Errorf("catalog: duplicate section id %q", s.ID)
		}
		seenSections[s.ID] = true
		if len(s.Questions) == 0 {
			return nil, errors.Errorf("catalog: section %q has no questions", s.ID)
		}
		for _, q := range s.Questions {
			if q.ID == "" {
				return nil, errors.Errorf("catalog: empty question id in section %q", s.ID)
			}
			if _, dup := c.sectionOf[q.ID]; dup {
				return nil, errors.Errorf("catalog: question %q belongs to more than one section", q.ID)
			}
			c.sectionOf[q.ID] = s.ID
			c.total++
		}
	}
	return c, nil
}

// Sections returns the sections in catalog order.
func (c *Catalog) Sections() []model.Section {
	return c.sections
}

// Scale returns the five shared answer options.
func (c *Catalog) Scale() []model.ScaleOption {
	return c.scale
}

// TotalQuestions returns the fixed question count across all sections.
func (c *Catalog) TotalQuestions() int {
	return c.total
}

// SectionOf resolves the owning section for a question id.
func (c *Catalog) SectionOf(questionID string) (string, bool) {
	id, ok := c.sectionOf[questionID]
	return id, ok
}

// SectionByID returns the section with the given id, or nil.
func (c *Catalog) SectionByID(id string) *model.Section {
	for i := range c.sections {
		if c.sections[i].ID == id {
			return &c.sections[i]
		}
	}
	return nil
}

// SectionAt returns the section at the given catalog position, or nil when
// out of range.
func (c *Catalog) SectionAt(index int) *model.Section {
	if index < 0 || index >= len(c.sections) {
		return nil
	}
	return &c.sections[index]
}

// NumSections returns the section count.
func (c *Catalog) NumSections() int {
	return len(c.sections)
}
