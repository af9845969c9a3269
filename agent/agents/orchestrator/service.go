package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	nodex "github.com/tanpawarit/Chative-Voice-Ordering/agent/nodes"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
	promptx "github.com/tanpawarit/Chative-Voice-Ordering/agent/prompt"
	toolx "github.com/tanpawarit/Chative-Voice-Ordering/agent/tool"
)

var (
	ErrInvalidUtterance = nodex.ErrInvalidUtterance
	ErrInvalidSession   = nodex.ErrInvalidSession
)

// History is the transcript store the orchestrator reads and appends to.
type History interface {
	nodex.HistoryReader
	nodex.HistoryWriter
}

// Tools executes order tools and reads the authoritative order.
type Tools interface {
	nodex.ToolExecutor
	nodex.OrderReader
}

type Config struct {
	// HistoryLimit caps replayed turns; 0 replays all of them.
	HistoryLimit int
	Prompts      promptx.PromptSet
}

// TurnResult is the reply text and the order snapshot after one utterance.
type TurnResult struct {
	Reply string         `json:"reply"`
	Order orderx.Summary `json:"order"`
}

type Orchestrator struct {
	gateway contractx.Gateway
	tools   Tools
	history History
	catalog []*schema.ToolInfo

	persona      string
	greeting     string
	historyLimit int

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(
	gateway contractx.Gateway,
	tools Tools,
	history History,
	cfg Config,
) (*Orchestrator, error) {
	if gateway == nil {
		return nil, errors.New("language model gateway is required")
	}
	if tools == nil {
		return nil, errors.New("order tools are required")
	}
	if history == nil {
		return nil, errors.New("history store is required")
	}

	prompts := cfg.Prompts
	if strings.TrimSpace(prompts.OrderBot) == "" {
		prompts = promptx.LoadPromptSet()
	}
	historyLimit := cfg.HistoryLimit
	if historyLimit < 0 {
		historyLimit = 0
	}

	o := &Orchestrator{
		gateway:      gateway,
		tools:        tools,
		history:      history,
		catalog:      toolx.Catalog(),
		persona:      prompts.OrderBot,
		greeting:     prompts.Greeting,
		historyLimit: historyLimit,
	}

	graphRunner, err := o.compileHandleUtteranceGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleUtterance runs one dialogue turn. Only invalid input is an error;
// model, tool and storage failures degrade the reply instead.
func (o *Orchestrator) HandleUtterance(ctx context.Context, sessionID string, text string) (TurnResult, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return TurnResult{}, err
	}

	log.Info().
		Str("session_id", strings.TrimSpace(sessionID)).
		Int("order_items", len(out.Order.Items)).
		Str("order_total", out.Order.Total.String()).
		Msg("orchestrator: turn handled")
	return TurnResult{
		Reply: out.Reply,
		Order: out.Order,
	}, nil
}

// Greeting is the opening line spoken when a session starts.
func (o *Orchestrator) Greeting() string {
	return o.greeting
}
