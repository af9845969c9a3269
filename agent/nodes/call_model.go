package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

const (
	NodeDispatchTools = "dispatch_tools"
	NodePersistTurn   = "persist_turn"
)

// CallModel sends the context plus tool catalog. A gateway failure degrades
// the turn to the fallback reply instead of failing it.
func CallModel(
	ctx context.Context,
	in *GraphState,
	gateway contractx.Gateway,
	tools []*schema.ToolInfo,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	msg, err := gateway.Complete(ctx, in.Messages, tools)
	if err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("orchestrator: model call failed, using fallback reply")
		in.Reply = FallbackReply
		in.Degraded = true
		return in, nil
	}

	in.ToolRequests = toToolRequests(msg.ToolCalls)
	in.Reply = strings.TrimSpace(msg.Content)
	if len(in.ToolRequests) > 0 {
		in.Messages = append(in.Messages, assistantToolCallMessage(msg, in.ToolRequests))
	}
	return in, nil
}

// RouteAfterModel picks the next node once the first model call returns.
func RouteAfterModel(_ context.Context, in *GraphState) (string, error) {
	if in != nil && !in.Degraded && len(in.ToolRequests) > 0 {
		return NodeDispatchTools, nil
	}
	return NodePersistTurn, nil
}

func toToolRequests(calls []schema.ToolCall) []contractx.ToolRequest {
	if len(calls) == 0 {
		return nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for i, call := range calls {
		callID := strings.TrimSpace(call.ID)
		if callID == "" {
			callID = fmt.Sprintf("call_%d", i)
		}
		reqs = append(reqs, contractx.ToolRequest{
			CallID: callID,
			Tool:   strings.TrimSpace(call.Function.Name),
			Args:   call.Function.Arguments,
		})
	}
	return reqs
}

// assistantToolCallMessage re-emits the model's tool calls with the call ids
// the tool results will reference.
func assistantToolCallMessage(msg *schema.Message, reqs []contractx.ToolRequest) *schema.Message {
	calls := make([]schema.ToolCall, 0, len(reqs))
	for _, req := range reqs {
		calls = append(calls, schema.ToolCall{
			ID:   req.CallID,
			Type: "function",
			Function: schema.FunctionCall{
				Name:      req.Tool,
				Arguments: req.Args,
			},
		})
	}
	return schema.AssistantMessage(msg.Content, calls)
}
