package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewUpstashBackendValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewUpstashBackend(UpstashRedisConfig{Token: "t"}, "orders"); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewUpstashBackend(UpstashRedisConfig{URL: "http://localhost"}, "orders"); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := NewUpstashBackend(UpstashRedisConfig{URL: "http://localhost", Token: "t"}, " "); err == nil {
		t.Fatal("expected error for empty document name")
	}
	if _, err := NewUpstashBackend(UpstashRedisConfig{URL: "http://localhost", Token: "t"}, "orders", WithTTL(-time.Second)); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestUpstashBackendWriteUsesDocumentKey(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		"orders",
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}

	if err := backend.Write(context.Background(), []byte(`{"s1":[]}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if gotAuth != "Bearer token" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if len(gotCommand) != 3 {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	if gotCommand[0] != "SET" {
		t.Fatalf("command[0] = %v, want SET", gotCommand[0])
	}
	if gotCommand[1] != "orderbot:doc:orders" {
		t.Fatalf("command[1] = %v, want orderbot:doc:orders", gotCommand[1])
	}
	if gotCommand[2] != `{"s1":[]}` {
		t.Fatalf("command[2] = %v", gotCommand[2])
	}
}

func TestUpstashBackendWriteWithTTL(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		_ = json.NewDecoder(r.Body).Decode(&gotCommand)
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token", KeyPrefix: "custom:"},
		"history",
		WithHTTPClient(server.Client()),
		WithTTL(1500*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}
	if err := backend.Write(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if len(gotCommand) != 5 {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	if gotCommand[1] != "custom:history" {
		t.Fatalf("command[1] = %v", gotCommand[1])
	}
	if gotCommand[3] != "EX" || gotCommand[4] != float64(2) {
		t.Fatalf("unexpected ttl args: %#v", gotCommand[3:])
	}
}

func TestUpstashBackendReadDecodesDocument(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(`{"s1":[{"name":"Soda","price":1.99}]}`)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		_ = json.NewDecoder(r.Body).Decode(&gotCommand)
		fmt.Fprintf(w, `{"result":%s}`, encoded)
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		"orders",
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}

	data, err := backend.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != `{"s1":[{"name":"Soda","price":1.99}]}` {
		t.Fatalf("Read() = %s", data)
	}
	if gotCommand[0] != "GET" || gotCommand[1] != "orderbot:doc:orders" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}

func TestUpstashBackendReadMissingKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		"orders",
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}

	if _, err := backend.Read(context.Background()); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("Read() error = %v, want ErrDocumentNotFound", err)
	}
}

func TestUpstashBackendErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGPASS invalid token"}`)
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		"orders",
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}

	err = backend.Write(context.Background(), []byte(`{}`))
	if err == nil || err.Error() != "WRONGPASS invalid token" {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestCollectionOverUpstashBackend(t *testing.T) {
	t.Parallel()

	var stored string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var cmd []any
		_ = json.NewDecoder(r.Body).Decode(&cmd)
		switch cmd[0] {
		case "SET":
			stored = cmd[2].(string)
			fmt.Fprint(w, `{"result":"OK"}`)
		case "GET":
			if stored == "" {
				fmt.Fprint(w, `{"result":null}`)
				return
			}
			encoded, _ := json.Marshal(stored)
			fmt.Fprintf(w, `{"result":%s}`, encoded)
		}
	}))
	t.Cleanup(server.Close)

	backend, err := NewUpstashBackend(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		"records",
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashBackend() error = %v", err)
	}
	coll := NewCollection[record]("records", backend)

	if err := coll.Replace(context.Background(), "s1", []record{{Name: "x", Count: 3}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, err := coll.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0] != (record{Name: "x", Count: 3}) {
		t.Fatalf("Load() = %#v", got)
	}
}
