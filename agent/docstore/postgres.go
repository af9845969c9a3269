package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type documentRow struct {
	bun.BaseModel `bun:"table:orderbot_documents,alias:d"`

	Name      string    `bun:"name,pk"`
	Body      string    `bun:"body,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// OpenPostgres connects with the bun pgdriver and makes sure the documents table exists.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*documentRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return db, nil
}

// PostgresBackend keeps one document per row. The upsert is a single statement,
// so a write either lands completely or not at all.
type PostgresBackend struct {
	db   bun.IDB
	name string
}

func NewPostgresBackend(db bun.IDB, document string) (*PostgresBackend, error) {
	if db == nil {
		return nil, errors.New("postgres db is required")
	}
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, errors.New("document name is required")
	}
	return &PostgresBackend{db: db, name: document}, nil
}

func (p *PostgresBackend) Name() string {
	return "postgres:" + p.name
}

func (p *PostgresBackend) Read(ctx context.Context) ([]byte, error) {
	var row documentRow
	err := p.db.NewSelect().
		Model(&row).
		Where("d.name = ?", p.name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return []byte(row.Body), nil
}

func (p *PostgresBackend) Write(ctx context.Context, data []byte) error {
	row := &documentRow{
		Name:      p.name,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := p.db.NewInsert().
		Model(row).
		On("CONFLICT (name) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}
