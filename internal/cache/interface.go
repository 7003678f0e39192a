package cache

import (
	"context"
	"time"
)

// Cache is a best-effort read-through layer over the catalog. A miss or a
// cache failure is never fatal; callers fall back to the database.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix  = "product"
	CategoryKeyPrefix = "category"
)
