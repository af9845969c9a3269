package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
)

type OrderReader interface {
	CurrentOrder(ctx context.Context, sessionID string) (orderx.Summary, error)
}

// ReconcileOrder reads the authoritative order snapshot from the store.
func ReconcileOrder(
	ctx context.Context,
	in *GraphState,
	orders OrderReader,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	summary, err := orders.CurrentOrder(ctx, in.SessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", in.SessionID).Msg("orchestrator: reconcile order failed")
		summary = orderx.Summarize(nil)
	}
	in.Order = summary
	return in, nil
}
