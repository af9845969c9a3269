package orchestratornode

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	toolx "github.com/tanpawarit/Chative-Voice-Ordering/agent/tool"
)

// ToolExecutor runs a parsed tool invocation.
type ToolExecutor interface {
	Execute(ctx context.Context, inv toolx.Invocation) (string, error)
}

// DispatchTools executes every requested tool bound to the server session and
// appends the results to the conversation. It never fails the turn.
func DispatchTools(
	ctx context.Context,
	in *GraphState,
	executor ToolExecutor,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	results := make([]contractx.ToolResult, 0, len(in.ToolRequests))
	for _, req := range in.ToolRequests {
		res := dispatchOne(ctx, in.SessionID, req, executor)
		results = append(results, res)
		in.Messages = append(in.Messages, schema.ToolMessage(res.Result, res.CallID))
	}

	in.ToolResults = results
	return in, nil
}

func dispatchOne(
	ctx context.Context,
	sessionID string,
	req contractx.ToolRequest,
	executor ToolExecutor,
) contractx.ToolResult {
	res := contractx.ToolResult{
		CallID: req.CallID,
		Tool:   req.Tool,
	}

	inv, err := toolx.Parse(req.Tool, req.Args, sessionID)
	switch {
	case errors.Is(err, contractx.ErrUnknownTool):
		log.Warn().Str("session_id", sessionID).Str("tool", req.Tool).Msg("orchestrator: unknown tool requested")
		res.Result = fmt.Sprintf("tool %q not found", req.Tool)
		res.Failed = true
		return res
	case err != nil:
		log.Warn().Err(err).Str("session_id", sessionID).Str("tool", req.Tool).Msg("orchestrator: invalid tool arguments")
		res.Result = fmt.Sprintf("invalid arguments for tool %q: %s", req.Tool, toolx.ArgumentProblem(err))
		res.Failed = true
		return res
	}

	out, err := execute(ctx, executor, inv)
	if err != nil {
		log.Error().Stack().
			Err(fmt.Errorf("%w: %w", contractx.ErrToolExecution, err)).
			Str("session_id", sessionID).
			Str("tool", req.Tool).
			Msg("orchestrator: tool execution failed")
		res.Result = fmt.Sprintf("error running tool %q", req.Tool)
		res.Failed = true
		return res
	}

	log.Debug().Str("session_id", sessionID).Str("tool", req.Tool).Msg("orchestrator: tool executed")
	res.Result = out
	return res
}

func execute(ctx context.Context, executor ToolExecutor, inv toolx.Invocation) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return executor.Execute(ctx, inv)
}
