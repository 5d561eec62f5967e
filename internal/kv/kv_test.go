package kv

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := store.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}
	if err := store.Set(ctx, "records::u1", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "records::u1", `[{"id":"b"}]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	value, found, err := store.Get(ctx, "records::u1")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if value != `[{"id":"b"}]` {
		t.Fatalf("Get() = %q", value)
	}
	if err := store.Set(ctx, "records::u2", "other"); err != nil {
		t.Fatalf("Set(u2) error = %v", err)
	}
	if err := store.Delete(ctx, "records::u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := store.Get(ctx, "records::u1"); found {
		t.Fatalf("key still present after Delete")
	}
	if value, _, _ := store.Get(ctx, "records::u2"); value != "other" {
		t.Fatalf("unrelated key changed: %q", value)
	}
	if err := store.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("Delete(missing) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	exerciseStore(t, store)

	reopened, _ := NewFileStore(path)
	if value, found, _ := reopened.Get(context.Background(), "records::u2"); !found || value != "other" {
		t.Fatalf("reopened Get() = %q, %v", value, found)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStoreCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	store, _ := NewFileStore(path)
	if _, _, err := store.Get(context.Background(), "x"); err == nil {
		t.Fatalf("Get() on corrupt file returned nil error")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)

	if got, _ := mr.Get("records::u2"); got != "other" {
		t.Fatalf("miniredis value = %q", got)
	}
}

func TestOpenDispatch(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)
	dir := t.TempDir()

	cases := []struct {
		dsn  string
		want string
	}{
		{"memory:", "*kv.MemoryStore"},
		{filepath.Join(dir, "a.json"), "*kv.FileStore"},
		{"file:" + filepath.Join(dir, "b.json"), "*kv.FileStore"},
		{"sqlite://" + filepath.Join(dir, "c.db"), "*kv.SQLiteStore"},
	}
	for _, tc := range cases {
		store, err := Open(ctx, tc.dsn, logger)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", tc.dsn, err)
		}
		if got := typeName(store); got != tc.want {
			t.Fatalf("Open(%q) = %s, want %s", tc.dsn, got, tc.want)
		}
		store.Close()
	}

	if _, err := Open(ctx, "mongodb://localhost", logger); !errors.Is(err, ErrUnsupportedDSN) {
		t.Fatalf("Open(mongodb) error = %v, want ErrUnsupportedDSN", err)
	}
	if _, err := Open(ctx, " ", logger); !errors.Is(err, ErrUnsupportedDSN) {
		t.Fatalf("Open(empty) error = %v, want ErrUnsupportedDSN", err)
	}
}

func TestFileStorePathFromDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store, err := Open(context.Background(), "file://"+path, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := store.(*FileStore).Path(); got != path {
		t.Fatalf("Path() = %q, want %q", got, path)
	}
}

func typeName(store Store) string {
	switch store.(type) {
	case *MemoryStore:
		return "*kv.MemoryStore"
	case *FileStore:
		return "*kv.FileStore"
	case *SQLiteStore:
		return "*kv.SQLiteStore"
	case *RedisStore:
		return "*kv.RedisStore"
	case *PostgresStore:
		return "*kv.PostgresStore"
	}
	return "unknown"
}
