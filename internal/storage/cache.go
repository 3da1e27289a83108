package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

// cache is a read-through Redis cache for reference collections. Every
// failure is treated as a miss.
type cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func (c *cache) key(col model.Collection) string {
	return "storagentic:collection:" + string(col)
}

func (c *cache) get(ctx context.Context, col model.Collection) ([]json.RawMessage, bool) {
	b, err := c.rdb.Get(ctx, c.key(col)).Bytes()
	if err != nil {
		if werr := errx.WrapRedis(err); werr.Kind != errx.KindConfigurationAbsent {
			logx.Warn().Err(werr).Str("collection", string(col)).Msg("cache read failed")
		}
		return nil, false
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(b, &rows); err != nil {
		logx.Warn().Err(err).Str("collection", string(col)).Msg("discarding undecodable cache entry")
		return nil, false
	}
	return rows, true
}

func (c *cache) set(ctx context.Context, col model.Collection, rows []json.RawMessage) {
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(col), b, c.ttl).Err(); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Str("collection", string(col)).Msg("cache write failed")
	}
}

func (c *cache) invalidate(ctx context.Context, col model.Collection) {
	if err := c.rdb.Del(ctx, c.key(col)).Err(); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Str("collection", string(col)).Msg("cache invalidation failed")
	}
}
