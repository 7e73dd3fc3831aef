package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ListClient is the subset of go-redis commands used by List.
// *redis.Client and *redis.ClusterClient satisfy it.
type ListClient interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// List is an append-only record log kept in a single Redis list.
type List struct {
	db  ListClient
	key string
}

// NewList binds a List to key.
func NewList(client ListClient, key string) (*List, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &List{db: client, key: key}, nil
}

// Key returns the Redis key backing the list.
func (l *List) Key() string { return l.key }

// Append pushes items to the tail of the list and returns the new length.
// Calling it without items is a no-op.
func (l *List) Append(ctx context.Context, items ...[]byte) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = item
	}
	return l.db.RPush(ctx, l.key, values...).Result()
}

// All returns every item in insertion order.
func (l *List) All(ctx context.Context) ([]string, error) {
	return l.db.LRange(ctx, l.key, 0, -1).Result()
}

// Clear removes the list.
func (l *List) Clear(ctx context.Context) error {
	return l.db.Del(ctx, l.key).Err()
}
