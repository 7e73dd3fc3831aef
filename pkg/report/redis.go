package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/cookiemonster/pkg/redis"
)

// DefaultRedisKey is the list that receives matches when the target names none.
const DefaultRedisKey = "cookiemonster:results"

// redisEntry is one list element: a match tagged with its run.
type redisEntry struct {
	RunID   string `json:"run_id"`
	FoundAt string `json:"found_at"`
	Match   any    `json:"match"`
}

// RedisSink appends every match as a JSON document to a Redis list.
type RedisSink struct {
	list  *redis.List
	check func(context.Context) error
	close func() error
	now   func() time.Time
}

// NewRedisSink returns a sink that appends to key using client. check, if
// non-nil, runs before every write.
func NewRedisSink(client redis.ListClient, key string, check func(context.Context) error) (*RedisSink, error) {
	if key == "" {
		key = DefaultRedisKey
	}
	list, err := redis.NewList(client, key)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &RedisSink{list: list, check: check, now: time.Now}, nil
}

func (s *RedisSink) Write(ctx context.Context, r Report) error {
	if s.check != nil {
		if err := s.check(ctx); err != nil {
			return errors.Join(ErrWrite, err)
		}
	}

	foundAt := s.now().UTC().Format(time.RFC3339)
	items := make([][]byte, 0, len(r.Matches))
	for _, m := range r.Matches {
		raw, err := json.Marshal(redisEntry{RunID: r.RunID.String(), FoundAt: foundAt, Match: m})
		if err != nil {
			return errors.Join(ErrEncode, err)
		}
		items = append(items, raw)
	}

	if _, err := s.list.Append(ctx, items...); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

// Close releases the Redis connection opened by Open.
func (s *RedisSink) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *RedisSink) String() string { return "redis list " + s.list.Key() }
