package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Voice-Ordering/agent/contract"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyKey         = errors.New("session id is empty")
)

// Backend stores one serialized document and replaces it atomically:
// readers observe either the previous or the new document, never a mix.
type Backend interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Collection is a keyed document of ordered records (session id -> records).
// Every mutation rewrites the whole document.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

func NewCollection[T any](name string, backend Backend) *Collection[T] {
	return &Collection[T]{
		name:    name,
		backend: backend,
	}
}

// Load returns the records stored under key. Unknown keys yield an empty slice.
func (c *Collection[T]) Load(ctx context.Context, key string) ([]T, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return clone(doc[key]), nil
}

// Replace persists records as the full value for key.
func (c *Collection[T]) Replace(ctx context.Context, key string, records []T) error {
	_, err := c.Update(ctx, key, func([]T) ([]T, error) {
		return records, nil
	})
	return err
}

// Update runs a load-modify-replace cycle for key while holding the collection lock.
// If fn returns an error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, key string, fn func(current []T) ([]T, error)) ([]T, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.read(ctx)
	if err != nil {
		return nil, err
	}

	next, err := fn(clone(doc[key]))
	if err != nil {
		return nil, err
	}
	doc[key] = clone(next)

	if err := c.write(ctx, doc); err != nil {
		return nil, err
	}
	return clone(next), nil
}

func (c *Collection[T]) read(ctx context.Context) (map[string][]T, error) {
	raw, err := c.backend.Read(ctx)
	if errors.Is(err, ErrDocumentNotFound) {
		return map[string][]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s from %s: %v", contractx.ErrPersistence, c.name, c.backend.Name(), err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string][]T{}, nil
	}

	doc := map[string][]T{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warn().
			Err(err).
			Str("collection", c.name).
			Str("backend", c.backend.Name()).
			Msg("stored document is corrupt, treating it as empty")
		return map[string][]T{}, nil
	}
	return doc, nil
}

func (c *Collection[T]) write(ctx context.Context, doc map[string][]T) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", contractx.ErrPersistence, c.name, err)
	}

	if err := c.backend.Write(ctx, payload); err != nil {
		log.Error().
			Err(err).
			Str("collection", c.name).
			Str("backend", c.backend.Name()).
			Msg("failed to persist document, previous state remains authoritative")
		return fmt.Errorf("%w: write %s to %s: %v", contractx.ErrPersistence, c.name, c.backend.Name(), err)
	}
	return nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
