package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

type HistoryWriter interface {
	AppendTurn(ctx context.Context, sessionID string, user string, assistant string) (bool, error)
}

// PersistTurn records the utterance and model reply. Fallback and empty
// replies are not recorded; a write failure is logged and the turn goes on.
func PersistTurn(
	ctx context.Context,
	in *GraphState,
	history HistoryWriter,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Degraded || strings.TrimSpace(in.Reply) == "" {
		return in, nil
	}

	if _, err := history.AppendTurn(ctx, in.SessionID, in.Text, in.Reply); err != nil {
		log.Error().Err(err).Str("session_id", in.SessionID).Msg("orchestrator: persist turn failed, history entry lost")
	}
	return in, nil
}
