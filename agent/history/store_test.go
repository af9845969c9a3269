package history

import (
	"context"
	"path/filepath"
	"testing"

	docstorex "github.com/tanpawarit/Chative-Voice-Ordering/agent/docstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := docstorex.NewFileBackend(filepath.Join(t.TempDir(), "session_db.json"))
	if err != nil {
		t.Fatalf("NewFileBackend() error = %v", err)
	}
	return NewStore(backend)
}

func TestAppendTurnKeepsOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, tc := range []Turn{
		{User: "hi", Assistant: "Hello!"},
		{User: "a soda", Assistant: "Added a soda."},
	} {
		ok, err := store.AppendTurn(ctx, "s1", tc.User, tc.Assistant)
		if err != nil {
			t.Fatalf("AppendTurn() error = %v", err)
		}
		if !ok {
			t.Fatalf("AppendTurn(%q) skipped", tc.Assistant)
		}
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 || got[0].User != "hi" || got[1].Assistant != "Added a soda." {
		t.Fatalf("Load() = %#v", got)
	}
}

func TestAppendTurnSkipsBlankReply(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ok, err := store.AppendTurn(context.Background(), "s1", "hello", "  \n\t")
	if err != nil {
		t.Fatalf("AppendTurn() error = %v", err)
	}
	if ok {
		t.Fatal("expected blank reply to be skipped")
	}

	got, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() = %#v, want empty", got)
	}
}

func TestRecentLimitsToTrailingTurns(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	seed := []Turn{{User: "1", Assistant: "a"}, {User: "2", Assistant: "b"}, {User: "3", Assistant: "c"}}
	if err := store.Replace(ctx, "s1", seed); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := store.Recent(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 || got[0].User != "2" || got[1].User != "3" {
		t.Fatalf("Recent() = %#v", got)
	}

	all, err := store.Recent(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Recent(0) len = %d, want 3", len(all))
	}
}
