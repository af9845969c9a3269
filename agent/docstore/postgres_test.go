package docstore

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPostgresBackendRoundTrip(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := OpenPostgres(ctx, PostgresConfig{DSN: dsn})
	if err != nil {
		t.Fatalf("OpenPostgres() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	name := "test-" + uuid.NewString()
	backend, err := NewPostgresBackend(db, name)
	if err != nil {
		t.Fatalf("NewPostgresBackend() error = %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.NewDelete().Model((*documentRow)(nil)).Where("name = ?", name).Exec(context.Background())
	})

	coll := NewCollection[record]("records", backend)
	if err := coll.Replace(ctx, "s1", []record{{Name: "a", Count: 1}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := coll.Replace(ctx, "s1", []record{{Name: "b", Count: 2}}); err != nil {
		t.Fatalf("Replace() second error = %v", err)
	}

	got, err := coll.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0] != (record{Name: "b", Count: 2}) {
		t.Fatalf("Load() = %#v", got)
	}
}

func TestNewPostgresBackendValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewPostgresBackend(nil, "orders"); err == nil {
		t.Fatal("expected error for nil db")
	}
}
