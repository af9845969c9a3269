package order

import (
	"context"

	docstorex "github.com/tanpawarit/Chative-Voice-Ordering/agent/docstore"
)

// Store is the per-session order ledger.
type Store struct {
	lines *docstorex.Collection[Line]
}

func NewStore(backend docstorex.Backend) *Store {
	return &Store{
		lines: docstorex.NewCollection[Line]("orders", backend),
	}
}

// Load returns the session's lines in insertion order; unknown sessions are empty.
func (s *Store) Load(ctx context.Context, sessionID string) ([]Line, error) {
	return s.lines.Load(ctx, sessionID)
}

// Replace persists lines as the session's whole order.
func (s *Store) Replace(ctx context.Context, sessionID string, lines []Line) error {
	return s.lines.Replace(ctx, sessionID, lines)
}

// Update applies fn to the session's current lines and persists the result.
func (s *Store) Update(ctx context.Context, sessionID string, fn func([]Line) ([]Line, error)) ([]Line, error) {
	return s.lines.Update(ctx, sessionID, fn)
}
