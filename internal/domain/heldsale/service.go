// internal/domain/heldsale/service.go
package heldsale

import (
	"context"
	"time"

	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/pricing"
)

// SessionSaver persists the register session after a hold or resume
// mutates it.
type SessionSaver interface {
	Save(ctx context.Context, session *cart.Session) error
}

// Service handles hold/resume business logic for the register.
type Service struct {
	repo     Repository
	sessions SessionSaver
}

// NewService creates a new held-sale service
func NewService(repo Repository, sessions SessionSaver) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
	}
}

// Hold suspends the active cart as a new held entry and clears the session.
func (s *Service) Hold(ctx context.Context, session *cart.Session) (*Entry, error) {
	entry, err := s.appendFromSession(ctx, session)
	if err != nil {
		return nil, err
	}

	session.Clear()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return entry, nil
}

// Resume installs a held entry as the active cart. If the session already
// carries a non-empty cart, that cart is held first so in-progress work is
// never silently discarded.
func (s *Service) Resume(ctx context.Context, session *cart.Session, id int64) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.IsEmpty() {
		if _, err := s.appendFromSession(ctx, session); err != nil {
			return nil, err
		}
	}

	session.Lines = entry.Lines
	session.DiscountApplied = entry.DiscountApplied
	session.ResumedOrderID = ""
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, err
	}

	return entry, nil
}

// Delete removes a held entry without resuming it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Remove(ctx, id)
}

// List returns the held entries for a terminal, oldest first. Always
// re-fetched from storage, never cached.
func (s *Service) List(ctx context.Context, terminalID string) ([]Entry, error) {
	return s.repo.List(ctx, terminalID)
}

func (s *Service) appendFromSession(ctx context.Context, session *cart.Session) (*Entry, error) {
	snapshot := pricing.Price(session.Lines, session.DiscountApplied)

	now := time.Now().UTC()
	entry := &Entry{
		ID:              now.UnixMilli(),
		TerminalID:      session.ID,
		Lines:           session.Lines,
		DiscountApplied: session.DiscountApplied,
		Total:           snapshot.Total,
		CreatedAt:       now,
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
