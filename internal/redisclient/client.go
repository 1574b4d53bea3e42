package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "session:"
	viewsKeyPrefix   = "product:views:"
	bestSellersKey   = "bestsellers"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Session is the payload the authentication provider stores per token.
type Session struct {
	UserID int64
	Role   string
}

// GetSession retrieves the session for a token. Returns nil without error
// when the token is unknown or expired.
func (c *Client) GetSession(ctx context.Context, token string) (*Session, error) {
	result, err := c.rdb.HGetAll(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseInt(result["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session for token: %w", err)
	}

	return &Session{UserID: userID, Role: result["role"]}, nil
}

// PutSession stores a session under a token with a TTL. The auth provider
// writes these in production; this is used by integration tests and tooling.
func (c *Client) PutSession(ctx context.Context, token string, userID int64, role string, ttl time.Duration) error {
	key := sessionKeyPrefix + token

	pipe := c.rdb.Pipeline()
	pipe.HSet(ctx, key, "user_id", userID, "role", role)
	pipe.Expire(ctx, key, ttl)

	_, err := pipe.Exec(ctx)
	return err
}

// DeleteSession removes a session token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// IncrementProductViews bumps the pending view counter for a product.
// INCR is atomic on the server, no script needed.
func (c *Client) IncrementProductViews(ctx context.Context, productID int64) error {
	return c.rdb.Incr(ctx, fmt.Sprintf("%s%d", viewsKeyPrefix, productID)).Err()
}

// DrainProductViews atomically reads and clears all pending view counters,
// returning productID -> views accumulated since the last drain.
func (c *Client) DrainProductViews(ctx context.Context) (map[int64]int64, error) {
	views := make(map[int64]int64)

	iter := c.rdb.Scan(ctx, 0, viewsKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		val, err := c.rdb.GetDel(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return views, err
		}

		productID, err := strconv.ParseInt(key[len(viewsKeyPrefix):], 10, 64)
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}

		views[productID] = count
	}
	if err := iter.Err(); err != nil {
		return views, err
	}

	return views, nil
}

// BumpBestSeller adds sold quantity to a product's best-seller score
func (c *Client) BumpBestSeller(ctx context.Context, productID int64, quantity int) error {
	member := strconv.FormatInt(productID, 10)
	return c.rdb.ZIncrBy(ctx, bestSellersKey, float64(quantity), member).Err()
}

// TopSellers returns the best-selling product IDs, highest first
func (c *Client) TopSellers(ctx context.Context, n int64) ([]int64, error) {
	members, err := c.rdb.ZRevRange(ctx, bestSellersKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
