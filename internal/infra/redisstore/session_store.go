package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"comanda-service/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const sessionPrefix = "session:"

// SessionStore keeps one key per live token id; logout deletes it.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Put(ctx context.Context, id string, ident domain.Identity, ttl time.Duration) error {
	data, err := json.Marshal(ident)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	return errors.Wrap(s.rdb.Set(ctx, sessionPrefix+id, data, ttl).Err(), "store session")
}

// Get returns nil when the session expired or was revoked.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Identity, error) {
	b, err := s.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	var ident domain.Identity
	if err := json.Unmarshal(b, &ident); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &ident, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.rdb.Del(ctx, sessionPrefix+id).Err(), "revoke session")
}
