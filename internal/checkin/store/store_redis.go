package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gatepass/internal/checkin/models"
)

// Redis key layout. Events live in append-order lists (global plus
// per-token), granted pairs in a set for O(1) duplicate checks.
const (
	redisEventsKey   = "gatepass:checkins"
	redisTokenPrefix = "gatepass:checkins:token:"
	redisGrantedKey  = "gatepass:granted"
)

// RedisStore keeps the ledger in Redis for deployments that want the
// duplicate check off the primary store's critical path. Same append-only
// contract as the other adapters.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func grantedMember(token, venue string) string {
	// NUL never appears in a URL-safe token, so it is a safe separator.
	return token + "\x00" + venue
}

func (s *RedisStore) Append(ctx context.Context, e models.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal checkin: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, redisEventsKey, payload)
	pipe.RPush(ctx, redisTokenPrefix+e.Token, payload)
	if e.Outcome == models.OutcomeGranted {
		pipe.SAdd(ctx, redisGrantedKey, grantedMember(e.Token, e.Venue))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append checkin: %w", err)
	}
	return nil
}

func (s *RedisStore) ExistsGranted(ctx context.Context, token, venue string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, redisGrantedKey, grantedMember(token, venue)).Result()
	if err != nil {
		return false, fmt.Errorf("exists granted: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ListByToken(ctx context.Context, token string) ([]models.Event, error) {
	return s.readList(ctx, redisTokenPrefix+token)
}

func (s *RedisStore) List(ctx context.Context) ([]models.Event, error) {
	return s.readList(ctx, redisEventsKey)
}

func (s *RedisStore) readList(ctx context.Context, key string) ([]models.Event, error) {
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read checkin list: %w", err)
	}
	var out []models.Event
	for _, item := range raw {
		var e models.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("unmarshal checkin: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
