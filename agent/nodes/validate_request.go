package orchestratornode

import (
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
)

var (
	ErrInvalidUtterance = errors.New("utterance is empty")
	ErrInvalidSession   = errors.New("session id is empty")
)

const (
	FallbackReply        = "Sorry, I'm having trouble right now. Could you please say that again?"
	AcknowledgementReply = "Okay, done. Is there anything else I can get you?"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
	Order orderx.Summary
}

type GraphState struct {
	SessionID string
	Text      string

	Messages     []*schema.Message
	ToolRequests []contractx.ToolRequest
	ToolResults  []contractx.ToolResult

	Reply string
	// Degraded marks a turn whose reply is the fallback apology.
	Degraded bool

	Order orderx.Summary
}

func ValidateRequest(in GraphInput) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidUtterance
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
	}, nil
}
