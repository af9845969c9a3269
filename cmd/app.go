package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/tanpawarit/Chative-Voice-Ordering/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
	docstorex "github.com/tanpawarit/Chative-Voice-Ordering/agent/docstore"
	historyx "github.com/tanpawarit/Chative-Voice-Ordering/agent/history"
	llmx "github.com/tanpawarit/Chative-Voice-Ordering/agent/llm"
	menux "github.com/tanpawarit/Chative-Voice-Ordering/agent/menu"
	orderx "github.com/tanpawarit/Chative-Voice-Ordering/agent/order"
	promptx "github.com/tanpawarit/Chative-Voice-Ordering/agent/prompt"
	toolx "github.com/tanpawarit/Chative-Voice-Ordering/agent/tool"
	configx "github.com/tanpawarit/Chative-Voice-Ordering/pkg/config"
	openrouterx "github.com/tanpawarit/Chative-Voice-Ordering/pkg/openrouter"
)

const (
	BackendFile     = "file"
	BackendUpstash  = "upstash"
	BackendPostgres = "postgres"

	ProviderEino   = "eino"
	ProviderOpenAI = "openai"
)

type AppConfig struct {
	StoreBackend string `envconfig:"STORE_BACKEND" default:"file"`
	DataDir      string `envconfig:"DATA_DIR" default:"data"`
	MenuFile     string `envconfig:"MENU_FILE"`
	HistoryLimit int    `envconfig:"HISTORY_LIMIT" default:"0"`
	LLMProvider  string `envconfig:"LLM_PROVIDER" default:"eino"`
}

type app struct {
	cfg     AppConfig
	menu    *menux.Catalog
	orders  *orderx.Store
	history *historyx.Store
	tools   *toolx.Tools

	closers []io.Closer
}

func newApp(ctx context.Context, cfg AppConfig) (*app, error) {
	catalog, err := menux.Load(cfg.MenuFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, menu: catalog}
	ordersBackend, historyBackend, err := a.openBackends(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.orders = orderx.NewStore(ordersBackend)
	a.history = historyx.NewStore(historyBackend)
	a.tools = toolx.New(catalog, a.orders)

	log.Debug().
		Str("backend", ordersBackend.Name()).
		Int("menu_items", len(catalog.Items())).
		Int("specials", len(catalog.Specials())).
		Msg("app: stores ready")
	return a, nil
}

func (a *app) openBackends(ctx context.Context) (docstorex.Backend, docstorex.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(a.cfg.StoreBackend)) {
	case BackendFile, "":
		orders, err := docstorex.NewFileBackend(filepath.Join(a.cfg.DataDir, "orders_db.json"))
		if err != nil {
			return nil, nil, err
		}
		history, err := docstorex.NewFileBackend(filepath.Join(a.cfg.DataDir, "history_db.json"))
		if err != nil {
			return nil, nil, err
		}
		log.Debug().
			Str("path", orders.Path()).
			Str("history_path", history.Path()).
			Msg("app: file store selected")
		return orders, history, nil

	case BackendUpstash:
		upCfg, err := configx.New[docstorex.UpstashRedisConfig]("UPSTASH_REDIS")
		if err != nil {
			return nil, nil, fmt.Errorf("load upstash config: %w", err)
		}
		orders, err := docstorex.NewUpstashBackend(*upCfg, "orders")
		if err != nil {
			return nil, nil, err
		}
		history, err := docstorex.NewUpstashBackend(*upCfg, "history")
		if err != nil {
			return nil, nil, err
		}
		return orders, history, nil

	case BackendPostgres:
		pgCfg, err := configx.New[docstorex.PostgresConfig]("POSTGRES")
		if err != nil {
			return nil, nil, fmt.Errorf("load postgres config: %w", err)
		}
		db, err := docstorex.OpenPostgres(ctx, *pgCfg)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db)
		orders, err := docstorex.NewPostgresBackend(db, "orders")
		if err != nil {
			return nil, nil, err
		}
		history, err := docstorex.NewPostgresBackend(db, "history")
		if err != nil {
			return nil, nil, err
		}
		return orders, history, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store backend %q", contractx.ErrValidation, a.cfg.StoreBackend)
	}
}

// orchestrator wires the language model; only the chat command needs it.
func (a *app) orchestrator(ctx context.Context) (*orchestratorx.Orchestrator, error) {
	llmCfg, err := configx.New[llmx.Config]("LLM")
	if err != nil {
		return nil, fmt.Errorf("load llm config: %w", err)
	}
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}

	gateway, err := newGateway(ctx, a.cfg.LLMProvider, *llmCfg)
	if err != nil {
		return nil, err
	}

	return orchestratorx.New(gateway, a.tools, a.history, orchestratorx.Config{
		HistoryLimit: a.cfg.HistoryLimit,
		Prompts:      promptx.LoadPromptSet(),
	})
}

func newGateway(ctx context.Context, provider string, cfg llmx.Config) (contractx.Gateway, error) {
	orCfg := cfg.OpenRouter()

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderEino, "":
		chatModel, err := orCfg.New(ctx)
		if err != nil {
			return nil, err
		}
		return llmx.NewGateway(chatModel)

	case ProviderOpenAI:
		client := openrouterx.NewClient(orCfg)
		if client == nil {
			return nil, fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
		}
		chatModel, err := llmx.NewOpenAIChatModel(client, cfg)
		if err != nil {
			return nil, err
		}
		return llmx.NewGateway(chatModel)

	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", contractx.ErrValidation, provider)
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("app: close failed")
		}
	}
	a.closers = nil
}
