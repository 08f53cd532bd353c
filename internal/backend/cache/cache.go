package cache

import (
	"context"
	"log/slog"
	"time"
)

// ThumbnailCache stores rendered thumbnails under their bucket key.
type ThumbnailCache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// NewCache returns a redis backed cache, or a no-op cache when address is empty.
func NewCache(address, password string, db int, ttl time.Duration) (ThumbnailCache, error) {
	if address == "" {
		slog.Info("no redis address configured; thumbnail cache disabled")
		return NoopCache{}, nil
	}
	return NewRedisCache(address, password, db, ttl)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, string, []byte) error         { return nil }
func (NoopCache) Delete(context.Context, ...string) error           { return nil }
func (NoopCache) DeletePrefix(context.Context, string) error        { return nil }
func (NoopCache) Close() error                                      { return nil }
