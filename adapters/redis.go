package adapters

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/kndndrj/iltable/core"
)

// Register client
func init() {
	_ = register(&Redis{}, "redis")
}

var _ core.Adapter = (*Redis)(nil)

// keyField holds the redis key of the record.
const keyField = "_key"

// Redis loads hashes (and plain strings) with keys matching a pattern:
//
//	redis://host:6379/0?match=book:*
type Redis struct{}

func (r *Redis) Connect(rawURL string) (core.Source, error) {
	opts, match, err := parseRedisURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &redisSource{
		redis: redis.NewClient(opts),
		match: match,
	}, nil
}

func parseRedisURL(rawURL string) (*redis.Options, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("redis: invalid url: %w", err)
	}

	q := u.Query()
	match := q.Get("match")
	if match == "" {
		match = "*"
	}
	q.Del("match")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, "", fmt.Errorf("redis.ParseURL: %w", err)
	}

	return opts, match, nil
}

type redisSource struct {
	redis *redis.Client
	match string
}

func (rs *redisSource) Records(ctx context.Context) ([]*core.Record, error) {
	var keys []string
	iter := rs.redis.Scan(ctx, 0, rs.match, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis.Scan: %w", err)
	}
	slices.Sort(keys)

	var records []*core.Record
	for _, key := range keys {
		typ, err := rs.redis.Type(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis.Type: %w", err)
		}

		switch typ {
		case "hash":
			fields, err := rs.redis.HGetAll(ctx, key).Result()
			if err != nil {
				return nil, fmt.Errorf("redis.HGetAll: %w", err)
			}
			records = append(records, hashRecord(key, fields))
		case "string":
			val, err := rs.redis.Get(ctx, key).Result()
			if err != nil {
				return nil, fmt.Errorf("redis.Get: %w", err)
			}
			records = append(records, core.NewRecord(
				core.Field{Name: keyField, Value: core.String(key)},
				core.Field{Name: "value", Value: core.String(val)},
			))
		}
	}

	return records, nil
}

func (rs *redisSource) Close() {
	_ = rs.redis.Close()
}

func hashRecord(key string, fields map[string]string) *core.Record {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	record := core.NewRecord(core.Field{Name: keyField, Value: core.String(key)})
	for _, name := range names {
		record.Set(name, core.String(fields[name]))
	}
	return record
}
