package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/xraph/binspire/store"
	"github.com/xraph/binspire/store/memory"
	"github.com/xraph/binspire/store/mongo"
	"github.com/xraph/binspire/store/postgres"
	"github.com/xraph/binspire/store/sqlite"
)

// Backend names.
const (
	backendMemory   = "memory"
	backendPostgres = "postgres"
	backendSQLite   = "sqlite"
	backendMongo    = "mongo"
)

// backendFor picks the store backend from the scheme of a database URL.
// An empty URL selects the in-memory store.
func backendFor(url string) (backend, dsn string, err error) {
	lower := strings.ToLower(url)
	switch {
	case url == "", lower == "memory", strings.HasPrefix(lower, "memory://"):
		return backendMemory, "", nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return backendPostgres, url, nil
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return backendMongo, url, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return backendSQLite, url[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "sqlite:"):
		return backendSQLite, url[len("sqlite:"):], nil
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return backendSQLite, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database URL %q (want postgres://, mongodb://, sqlite:// or empty for memory)", redact(url))
	}
}

// openStore connects to the store named by url.
func openStore(ctx context.Context, url string) (store.Store, string, error) {
	backend, dsn, err := backendFor(url)
	if err != nil {
		return nil, "", err
	}
	var s store.Store
	switch backend {
	case backendPostgres:
		s, err = postgres.Open(ctx, dsn)
	case backendMongo:
		s, err = mongo.Open(ctx, dsn)
	case backendSQLite:
		s, err = sqlite.Open(ctx, dsn)
	default:
		s = memory.New()
	}
	if err != nil {
		return nil, "", err
	}
	return s, backend, nil
}

// redact hides the password of a URL-shaped DSN.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return url
	}
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return url
	}
	return scheme + "://" + user + ":***@" + host
}
