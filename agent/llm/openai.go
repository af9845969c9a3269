package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openaisdk "github.com/openai/openai-go"
)

var _ einomodel.ToolCallingChatModel = (*OpenAIChatModel)(nil)

// OpenAIChatModel talks to an OpenAI-compatible chat completions endpoint
// through the official SDK.
type OpenAIChatModel struct {
	client      *openaisdk.Client
	model       string
	maxTokens   int
	temperature float32
	tools       []openaisdk.ChatCompletionToolParam
}

func NewOpenAIChatModel(client *openaisdk.Client, cfg Config) (*OpenAIChatModel, error) {
	if client == nil {
		return nil, fmt.Errorf("openai chat model: client is required")
	}
	return &OpenAIChatModel{
		client:      client,
		model:       strings.TrimSpace(cfg.Model),
		maxTokens:   cfg.MaxCompletionToken,
		temperature: cfg.Temperature,
	}, nil
}

func (m *OpenAIChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	params := make([]openaisdk.ChatCompletionToolParam, 0, len(tools))
	for _, info := range tools {
		if info == nil {
			continue
		}
		p, err := toolParam(info)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	clone := *m
	clone.tools = params
	return &clone, nil
}

func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	messages, err := toOpenAIMessages(input)
	if err != nil {
		return nil, err
	}

	req := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(m.model),
		Messages:    messages,
		Temperature: openaisdk.Float(float64(m.temperature)),
	}
	if m.maxTokens > 0 {
		req.MaxCompletionTokens = openaisdk.Int(int64(m.maxTokens))
	}
	if len(m.tools) > 0 {
		req.Tools = m.tools
	}

	resp, err := m.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no choices returned")
	}
	return fromOpenAIMessage(resp.Choices[0].Message), nil
}

// Stream yields the full completion as a single chunk.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toolParam(info *schema.ToolInfo) (openaisdk.ChatCompletionToolParam, error) {
	parameters := openaisdk.FunctionParameters{
		"type":       "object",
		"properties": map[string]any{},
	}
	if info.ParamsOneOf != nil {
		s, err := info.ParamsOneOf.ToOpenAPIV3()
		if err != nil {
			return openaisdk.ChatCompletionToolParam{}, fmt.Errorf("tool %s schema: %w", info.Name, err)
		}
		raw, err := json.Marshal(s)
		if err != nil {
			return openaisdk.ChatCompletionToolParam{}, fmt.Errorf("tool %s schema: %w", info.Name, err)
		}
		if err := json.Unmarshal(raw, &parameters); err != nil {
			return openaisdk.ChatCompletionToolParam{}, fmt.Errorf("tool %s schema: %w", info.Name, err)
		}
	}

	return openaisdk.ChatCompletionToolParam{
		Function: openaisdk.FunctionDefinitionParam{
			Name:        info.Name,
			Description: openaisdk.String(info.Desc),
			Parameters:  parameters,
		},
	}, nil
}

func toOpenAIMessages(input []*schema.Message) ([]openaisdk.ChatCompletionMessageParamUnion, error) {
	out := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			out = append(out, openaisdk.SystemMessage(msg.Content))
		case schema.User:
			out = append(out, openaisdk.UserMessage(msg.Content))
		case schema.Tool:
			out = append(out, openaisdk.ToolMessage(msg.Content, msg.ToolCallID))
		case schema.Assistant:
			if len(msg.ToolCalls) == 0 {
				out = append(out, openaisdk.AssistantMessage(msg.Content))
				continue
			}
			asst := openaisdk.ChatCompletionAssistantMessageParam{}
			if msg.Content != "" {
				asst.Content.OfString = openaisdk.String(msg.Content)
			}
			for _, call := range msg.ToolCalls {
				asst.ToolCalls = append(asst.ToolCalls, openaisdk.ChatCompletionMessageToolCallParam{
					ID: call.ID,
					Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Function.Name,
						Arguments: call.Function.Arguments,
					},
				})
			}
			out = append(out, openaisdk.ChatCompletionMessageParamUnion{OfAssistant: &asst})
		default:
			return nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}
	return out, nil
}

func fromOpenAIMessage(msg openaisdk.ChatCompletionMessage) *schema.Message {
	out := &schema.Message{
		Role:    schema.Assistant,
		Content: msg.Content,
	}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			ID:   call.ID,
			Type: "function",
			Function: schema.FunctionCall{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}
	return out
}
