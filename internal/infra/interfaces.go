package infra

import (
	"context"
	"time"

	"comanda-service/internal/domain"
	"comanda-service/internal/infra/excel"
	"comanda-service/internal/infra/redisstore"
)

// SessionStoreInterface tracks which issued tokens are still live.
type SessionStoreInterface interface {
	Put(ctx context.Context, id string, ident domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

type CacheInterface interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type ExporterInterface interface {
	Export(report domain.Tabular) (string, error)
}

var (
	_ SessionStoreInterface = (*redisstore.SessionStore)(nil)
	_ CacheInterface        = (*redisstore.Cache)(nil)
	_ ExporterInterface     = (*excel.Exporter)(nil)
)
