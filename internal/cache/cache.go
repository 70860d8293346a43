package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache stores list responses per collection. Writes to a collection bump
// its version, which orphans every cached list of that collection at once.
//
// Get reports the version it looked under; a fill after a miss must pass that
// version to Set so rows read before an Invalidate land under the old,
// already orphaned version.
type ListCache interface {
	Get(ctx context.Context, collection, criteriaKey string, dest any) (version int64, hit bool, err error)
	Set(ctx context.Context, collection string, version int64, criteriaKey string, val any) error
	Invalidate(ctx context.Context, collections ...string) error
}

const prefix = "adminhub"

type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to url (redis://host:port/db) and pings it.
func New(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func versionKey(collection string) string {
	return fmt.Sprintf("%s:%s:version", prefix, collection)
}

func (c *Redis) version(ctx context.Context, collection string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(collection)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func listKey(collection string, version int64, criteriaKey string) string {
	sum := sha256.Sum256([]byte(criteriaKey))
	return fmt.Sprintf("%s:%s:v%d:list:%s", prefix, collection, version, hex.EncodeToString(sum[:]))
}

func (c *Redis) Get(ctx context.Context, collection, criteriaKey string, dest any) (int64, bool, error) {
	v, err := c.version(ctx, collection)
	if err != nil {
		return 0, false, err
	}
	raw, err := c.rdb.Get(ctx, listKey(collection, v, criteriaKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Set stores val under version, normally the one Get returned on the miss.
// Nothing is written when the collection has moved past it.
func (c *Redis) Set(ctx context.Context, collection string, version int64, criteriaKey string, val any) error {
	current, err := c.version(ctx, collection)
	if err != nil {
		return err
	}
	if current != version {
		return nil
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(collection, version, criteriaKey), b, c.ttl).Err()
}

func (c *Redis) Invalidate(ctx context.Context, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	pipe := c.rdb.TxPipeline()
	for _, col := range collections {
		pipe.Incr(ctx, versionKey(col))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Noop is used when REDIS_URL is empty: every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string, string, any) (int64, bool, error) { return 0, false, nil }
func (Noop) Set(context.Context, string, int64, string, any) error         { return nil }
func (Noop) Invalidate(context.Context, ...string) error                   { return nil }
