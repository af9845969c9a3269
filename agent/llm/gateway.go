package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

var _ contractx.Gateway = (*ModelGateway)(nil)

// ModelGateway adapts an eino tool-calling chat model to contract.Gateway.
type ModelGateway struct {
	model einomodel.ToolCallingChatModel
}

func NewGateway(model einomodel.ToolCallingChatModel) (*ModelGateway, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	return &ModelGateway{model: model}, nil
}

// Complete sends messages to the model. Tools are bound only when non-empty,
// so a nil catalog is a plain completion.
func (g *ModelGateway) Complete(ctx context.Context, messages []*schema.Message, tools []*schema.ToolInfo) (*schema.Message, error) {
	var chat einomodel.BaseChatModel = g.model
	if len(tools) > 0 {
		bound, err := g.model.WithTools(tools)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrGateway, err)
		}
		chat = bound
	}

	msg, err := chat.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: generate: %v", contractx.ErrGateway, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty model response", contractx.ErrGateway)
	}
	return msg, nil
}
