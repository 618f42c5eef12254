package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// generationTTL outlives any view TTL so a bumped generation is still in place
// when a slow reader tries to store its result.
const generationTTL = 24 * time.Hour

// setViewIfCurrent stores the view only while the order's generation still
// matches the one the reader observed before loading from the repository.
var setViewIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if not current then
	current = '0'
end
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// RedisCache holds populated order views for a short TTL. Every invalidation
// bumps a per-order generation, and a view loaded under an older generation is
// dropped instead of stored.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) OrderViewKey(orderID string) string {
	return "order:view:" + orderID
}

func (c *RedisCache) OrderGenerationKey(orderID string) string {
	return "order:gen:" + orderID
}

// GetView returns nil, nil on a cache miss.
func (c *RedisCache) GetView(ctx context.Context, orderID string) (*domain.OrderView, error) {
	payload, err := c.Client.Get(ctx, c.OrderViewKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view domain.OrderView
	if err := json.Unmarshal(payload, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Generation returns 0 for an order that was never invalidated.
func (c *RedisCache) Generation(ctx context.Context, orderID string) (int64, error) {
	gen, err := c.Client.Get(ctx, c.OrderGenerationKey(orderID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetView is a no-op when the order was invalidated after generation was read.
func (c *RedisCache) SetView(ctx context.Context, view *domain.OrderView, generation int64) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	keys := []string{c.OrderViewKey(view.ID), c.OrderGenerationKey(view.ID)}
	return setViewIfCurrent.Run(ctx, c.Client, keys, generation, payload, c.TTL.Milliseconds()).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, orderID string) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		genKey := c.OrderGenerationKey(orderID)
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, c.OrderViewKey(orderID))
		return nil
	})
	return err
}
