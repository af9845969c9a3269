package history

import (
	"context"
	"strings"

	docstorex "github.com/tanpawarit/Chative-Voice-Ordering/agent/docstore"
)

// Turn is one user utterance and the assistant reply to it.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Store keeps the per-session conversation transcript.
type Store struct {
	turns *docstorex.Collection[Turn]
}

func NewStore(backend docstorex.Backend) *Store {
	return &Store{
		turns: docstorex.NewCollection[Turn]("history", backend),
	}
}

func (s *Store) Load(ctx context.Context, sessionID string) ([]Turn, error) {
	return s.turns.Load(ctx, sessionID)
}

// Recent returns at most limit trailing turns; limit <= 0 returns all of them.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	turns, err := s.turns.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(turns) > limit {
		return turns[len(turns)-limit:], nil
	}
	return turns, nil
}

func (s *Store) Replace(ctx context.Context, sessionID string, turns []Turn) error {
	return s.turns.Replace(ctx, sessionID, turns)
}

// AppendTurn records a turn. Blank assistant text is not recorded.
func (s *Store) AppendTurn(ctx context.Context, sessionID, user, assistant string) (bool, error) {
	if strings.TrimSpace(assistant) == "" {
		return false, nil
	}
	_, err := s.turns.Update(ctx, sessionID, func(turns []Turn) ([]Turn, error) {
		return append(turns, Turn{User: user, Assistant: assistant}), nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
