package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// shareTTL keeps shared result links alive for a month.
const shareTTL = 30 * 24 * time.Hour

// ShareCache stores the transfer-encoded query string behind a short link
// code. The stored value is the raw query string, not the computed result,
// so the results stage re-scores on every visit.
type ShareCache interface {
	Set(ctx context.Context, code, rawQuery string) error
	Get(ctx context.Context, code string) (string, error)
	NextSeq(ctx context.Context) (int64, error)
}

type shareCache struct {
	client *redis.Client
}

func NewShareCache(client *redis.Client) ShareCache {
	return &shareCache{
		client: client,
	}
}

func (c *shareCache) key(code string) string {
	return "resultado:" + code
}

func (c *shareCache) Set(ctx context.Context, code, rawQuery string) error {
	return c.client.Set(ctx, c.key(code), rawQuery, shareTTL).Err()
}

// Get returns the stored query string, or "" when the code is unknown or
// expired.
func (c *shareCache) Get(ctx context.Context, code string) (string, error) {
	data, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

// NextSeq returns a monotonically increasing counter used to derive short
// link codes.
func (c *shareCache) NextSeq(ctx context.Context) (int64, error) {
	return c.client.Incr(ctx, "resultado:seq").Result()
}
