package orchestratornode

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	historyx "github.com/tanpawarit/Chative-Voice-Ordering/agent/history"
)

// HistoryReader loads the most recent turns of a session, oldest first.
type HistoryReader interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]historyx.Turn, error)
}

// BuildContext assembles persona, prior turns in order, then the new utterance.
func BuildContext(
	ctx context.Context,
	in *GraphState,
	history HistoryReader,
	persona string,
	limit int,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	turns, err := history.Recent(ctx, in.SessionID, limit)
	if err != nil {
		log.Error().Err(err).Str("session_id", in.SessionID).Msg("orchestrator: load history failed, continuing without it")
		turns = nil
	}

	messages := make([]*schema.Message, 0, 2+2*len(turns))
	messages = append(messages, schema.SystemMessage(persona))
	for _, turn := range turns {
		messages = append(messages,
			schema.UserMessage(turn.User),
			schema.AssistantMessage(turn.Assistant, nil),
		)
	}
	messages = append(messages, schema.UserMessage(in.Text))

	in.Messages = messages
	return in, nil
}
