// Package kv provides the string key-value stores that hold tracker state.
// Every backend stores whole values; there are no partial updates.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var ErrUnsupportedDSN = errors.New("unsupported store dsn")

// Store is a string key-value store. Get reports found=false for a missing
// key; Set overwrites the whole value.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend from dsn:
//
//	memory:                  in-process map
//	file:/path/store.json    JSON object file (also a bare path)
//	sqlite:///path/store.db  SQLite database
//	redis://host:6379/0      Redis
//	postgres://user@host/db  PostgreSQL
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	}

	scheme, rest := splitScheme(dsn)
	logger.Debug().Str("backend", backendName(scheme)).Msg("opening store")

	switch scheme {
	case "memory":
		return NewMemoryStore(), nil
	case "", "file":
		return NewFileStore(rest)
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, rest)
	case "redis", "rediss":
		return OpenRedis(ctx, dsn)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, scheme)
	}
}

// splitScheme separates "scheme://rest" and "scheme:rest". A string with
// no scheme, or a Windows drive letter, is returned as a bare path.
func splitScheme(dsn string) (string, string) {
	idx := strings.Index(dsn, ":")
	if idx <= 1 {
		return "", dsn
	}
	scheme := strings.ToLower(dsn[:idx])
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return "", dsn
		}
	}
	return scheme, strings.TrimPrefix(dsn[idx+1:], "//")
}

func backendName(scheme string) string {
	if scheme == "" {
		return "file"
	}
	return scheme
}
