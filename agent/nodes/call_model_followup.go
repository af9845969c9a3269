package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

// CallModelFollowup asks for the final reply grounded in the tool results.
// No tools are offered, so the model cannot request another round.
func CallModelFollowup(
	ctx context.Context,
	in *GraphState,
	gateway contractx.Gateway,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	msg, err := gateway.Complete(ctx, in.Messages, nil)
	if err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("orchestrator: follow-up model call failed, using fallback reply")
		in.Reply = FallbackReply
		in.Degraded = true
		return in, nil
	}

	in.Reply = strings.TrimSpace(msg.Content)
	return in, nil
}
