// Package session drives one questionnaire run: recording responses and
// paging through sections until the hand-off to the results stage.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"madurez42001/internal/cache"
	"madurez42001/internal/catalog"
	"madurez42001/internal/model"
	"madurez42001/internal/transfer"
)

// Guard failures surfaced to the transport layer as client errors.
var (
	ErrNotFound          = errors.New("session: not found")
	ErrCompleted         = errors.New("session: already completed")
	ErrUnknownQuestion   = errors.New("session: unknown question id")
	ErrValueOutOfRange   = errors.New("session: response value out of range")
	ErrSectionIncomplete = errors.New("session: current section incomplete")
	ErrAtFirstSection    = errors.New("session: already at first section")
)

// Service owns the navigation state machine: states are the section indexes
// plus Completed. Next is guarded by section completeness, Previous is free
// for any index above zero, and no transition discards recorded responses.
type Service struct {
	catalog *catalog.Catalog
	cache   cache.SessionCache
}

// NewService creates a session service over the catalog and session store.
func NewService(cat *catalog.Catalog, sessions cache.SessionCache) *Service {
	return &Service{
		catalog: cat,
		cache:   sessions,
	}
}

// Start creates a new assessment session positioned at the first section.
func (s *Service) Start(ctx context.Context) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.NewString(),
		Responses: make(map[string]int),
		CreatedAt: time.Now(),
	}
	if err := s.cache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by id.
func (s *Service) Get(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return session, nil
}

// SetResponse records or overwrites the score for one question. The value
// must be on the 1..5 scale and the question must exist in the catalog.
func (s *Service) SetResponse(ctx context.Context, id, questionID string, value int) (*model.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrCompleted
	}
	if value < model.ScaleMin || value > model.ScaleMax {
		return nil, ErrValueOutOfRange
	}
	if _, ok := s.catalog.SectionOf(questionID); !ok {
		return nil, ErrUnknownQuestion
	}
	session.Responses[questionID] = value
	if err := s.cache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// IsSectionComplete reports whether every question of the section at the
// given catalog index has a recorded response.
func (s *Service) IsSectionComplete(session *model.Session, index int) bool {
	section := s.catalog.SectionAt(index)
	if section == nil {
		return false
	}
	for _, q := range section.Questions {
		if _, answered := session.Responses[q.ID]; !answered {
			return false
		}
	}
	return true
}

// Progress returns answered/total in [0,1]. The total is fixed by the
// catalog.
func (s *Service) Progress(session *model.Session) float64 {
	return float64(len(session.Responses)) / float64(s.catalog.TotalQuestions())
}

// Next advances to the following section once the current one is complete.
// Advancing past the last section completes the session: the response map is
// serialized to the transfer query string, the stored session is discarded
// and the query string is returned for the results hand-off.
func (s *Service) Next(ctx context.Context, id string) (*model.Session, string, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if session.Completed {
		return nil, "", ErrCompleted
	}
	if !s.IsSectionComplete(session, session.CurrentSection) {
		return nil, "", ErrSectionIncomplete
	}

	if session.CurrentSection < s.catalog.NumSections()-1 {
		session.CurrentSection++
		if err := s.cache.Set(ctx, session); err != nil {
			return nil, "", err
		}
		return session, "", nil
	}

	session.Completed = true
	query := transfer.EncodeQuery(session.Responses)
	if err := s.cache.Delete(ctx, session.ID); err != nil {
		return nil, "", err
	}
	return session, query, nil
}

// Previous moves back one section. Allowed from any section but the first,
// regardless of completeness.
func (s *Service) Previous(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrCompleted
	}
	if session.CurrentSection == 0 {
		return nil, ErrAtFirstSection
	}
	session.CurrentSection--
	if err := s.cache.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
