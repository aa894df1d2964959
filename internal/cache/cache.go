package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves like a permanently empty cache.
type Client struct {
	client *redis.Client
	group  singleflight.Group
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes keys. Unlike reads and writes it reports redis errors,
// since a failed delete leaves stale data behind.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Fetch is a read-through helper. On a miss it runs load once per key across
// concurrent callers, stores the JSON encoding for ttl and decodes it into dst.
func (c *Client) Fetch(ctx context.Context, key string, ttl time.Duration, dst interface{}, load func() (interface{}, error)) error {
	if data, _ := c.Get(ctx, key); data != nil {
		if err := json.Unmarshal(data, dst); err == nil {
			return nil
		}
	}

	var (
		payload []byte
		err     error
	)
	if c == nil {
		payload, err = loadJSON(load)
	} else {
		var v interface{}
		v, err, _ = c.group.Do(key, func() (interface{}, error) {
			return loadJSON(load)
		})
		if err == nil {
			payload = v.([]byte)
		}
	}
	if err != nil {
		return err
	}

	_ = c.Set(ctx, key, payload, ttl)
	return json.Unmarshal(payload, dst)
}

func loadJSON(load func() (interface{}, error)) ([]byte, error) {
	v, err := load()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
