// Package database provides the persisted key-value store that holds the
// application's named collections, with memory, SQLite, PostgreSQL and Redis
// backends.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/weddingwander/weddingwander/internal/config"
)

// Well-known keys.
const (
	CollectionUsers         = "users"
	CollectionWeddings      = "weddings"
	CollectionRegistrations = "registrations"
	// KeySession holds the currently logged-in account.
	KeySession = "user"
)

// ErrMissing is returned by Store.Get when the key is absent.
var ErrMissing = errors.New("key not present")

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("stored value is corrupt")

// Store is a persistent key-value store of JSON documents. It offers no
// transactions; callers are responsible for read-modify-write correctness.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLite.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg.Postgres)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Exists reports whether key is present.
func Exists(ctx context.Context, s Store, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrMissing):
		return false, nil
	default:
		return false, err
	}
}

// ReadCollection decodes the sequence stored under key. A missing key yields
// an empty, non-nil slice.
func ReadCollection[T any](ctx context.Context, s Store, key string) ([]T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMissing) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", key, ErrCorrupt, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// WriteCollection replaces the sequence stored under key.
func WriteCollection[T any](ctx context.Context, s Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ReadDocument decodes the single value stored under key. The bool is false
// when the key is absent.
func ReadDocument[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var doc T
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMissing) {
			return doc, false, nil
		}
		return doc, false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, false, fmt.Errorf("decode %s: %w: %v", key, ErrCorrupt, err)
	}
	return doc, true, nil
}

// WriteDocument stores a single value under key.
func WriteDocument[T any](ctx context.Context, s Store, key string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
