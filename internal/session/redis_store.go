package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Hash fields. The ordinary and operator bindings are stored under
// disjoint fields so each can be rewritten without reading the other.
const (
	fieldOrdinaryUserID        = "ordinary_user_id"
	fieldOperatorUserID        = "operator_user_id"
	fieldOperatorAuthenticated = "operator_authenticated"
	fieldOperatorSince         = "operator_since"
)

// RedisStore keeps each session as a Redis hash with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Context, error) {
	values, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	sc := &Context{ID: id}
	if raw := values[fieldOrdinaryUserID]; raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			sc.OrdinaryUserID = parsed
		}
	}
	if raw := values[fieldOperatorUserID]; raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			sc.OperatorUserID = parsed
		}
	}
	sc.OperatorAuthenticated = values[fieldOperatorAuthenticated] == "1"
	if raw := values[fieldOperatorSince]; raw != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			sc.OperatorSince = parsed
		}
	}

	return sc, nil
}

func (s *RedisStore) Save(ctx context.Context, sc *Context) error {
	ordinary := ""
	if sc.OrdinaryUserID != uuid.Nil {
		ordinary = sc.OrdinaryUserID.String()
	}
	operator := ""
	if sc.OperatorUserID != uuid.Nil {
		operator = sc.OperatorUserID.String()
	}
	authenticated := "0"
	if sc.OperatorAuthenticated {
		authenticated = "1"
	}
	since := ""
	if !sc.OperatorSince.IsZero() {
		since = sc.OperatorSince.Format(time.RFC3339Nano)
	}

	// Write every field on each save so cleared bindings do not linger.
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key(sc.ID),
		fieldOrdinaryUserID, ordinary,
		fieldOperatorUserID, operator,
		fieldOperatorAuthenticated, authenticated,
		fieldOperatorSince, since,
	)
	pipe.Expire(ctx, s.key(sc.ID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session %s: %w", sc.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
