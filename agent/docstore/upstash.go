package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUpstashKeyPrefix = "orderbot:doc:"
	maxResponseSizeBytes    = 8 << 20
)

type UpstashRedisConfig struct {
	URL       string        `envconfig:"URL" split_words:"true" required:"true"`
	Token     string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout   time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
	KeyPrefix string        `envconfig:"KEY_PREFIX" split_words:"true" default:"orderbot:doc:"`
}

// UpstashOption customizes UpstashBackend.
type UpstashOption func(*UpstashBackend)

func WithTTL(ttl time.Duration) UpstashOption {
	return func(b *UpstashBackend) {
		b.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) UpstashOption {
	return func(b *UpstashBackend) {
		if client != nil {
			b.httpClient = client
		}
	}
}

// UpstashBackend keeps one document under a single Redis key via the Upstash REST API.
// SET replaces the value in one command, so writes are atomic per document.
type UpstashBackend struct {
	baseURL    string
	token      string
	key        string
	httpClient *http.Client
	ttl        time.Duration
}

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstashBackend(cfg UpstashRedisConfig, document string, opts ...UpstashOption) (*UpstashBackend, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	document = strings.TrimSpace(document)
	if document == "" {
		return nil, errors.New("document name is required")
	}

	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = defaultUpstashKeyPrefix
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	backend := &UpstashBackend{
		baseURL: baseURL,
		token:   token,
		key:     prefix + document,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(backend)
		}
	}

	if backend.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}
	return backend, nil
}

func (b *UpstashBackend) Name() string {
	return "upstash:" + b.key
}

func (b *UpstashBackend) Read(ctx context.Context) ([]byte, error) {
	resp, err := b.exec(ctx, []any{"GET", b.key})
	if err != nil {
		return nil, err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, ErrDocumentNotFound
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, fmt.Errorf("decode document payload: %w", err)
	}
	return []byte(encoded), nil
}

func (b *UpstashBackend) Write(ctx context.Context, data []byte) error {
	cmd := []any{"SET", b.key, string(data)}
	if b.ttl > 0 {
		cmd = append(cmd, "EX", ttlSeconds(b.ttl))
	}
	_, err := b.exec(ctx, cmd)
	return err
}

func (b *UpstashBackend) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	seconds := ttl / time.Second
	if seconds <= 0 {
		return 1
	}
	if ttl%time.Second != 0 {
		seconds++
	}
	return int64(seconds)
}
