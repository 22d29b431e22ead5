package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client so the rest of the codebase does not
// import the driver directly.
type Client struct {
	rdb *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		rdb: goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// NewFromClient wraps an existing driver client (miniredis in tests).
func NewFromClient(rdb *goredis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
