package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	jsoniter "github.com/json-iterator/go"

	"github.com/b-harvest/liquidation-dashboard-backend/schema"
	"github.com/b-harvest/liquidation-dashboard-backend/stats"
	"github.com/b-harvest/liquidation-dashboard-backend/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrCacheMiss is returned when nothing has been cached under a key yet.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Set(ctx context.Context, key string, b []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// RedisCache stores cached responses in redis.
type RedisCache struct {
	rp *redis.Pool
}

func NewRedisCache(rp *redis.Pool) *RedisCache {
	return &RedisCache{rp}
}

func (c *RedisCache) Set(ctx context.Context, key string, b []byte) error {
	conn, err := c.rp.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get redis conn: %w", err)
	}
	defer conn.Close()
	_, err = conn.Do("SET", key, b)
	return err
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := c.rp.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get redis conn: %w", err)
	}
	defer conn.Close()
	b, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (s *Server) SaveCache(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	return s.cache.Set(ctx, key, b)
}

func (s *Server) LoadCache(ctx context.Context, key string, v interface{}) error {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal cache: %w", err)
	}
	return nil
}

func (s *Server) SaveDomainStatsCache(ctx context.Context, c *schema.DomainStatsCache) error {
	return s.SaveCache(ctx, s.cfg.Redis.StatsKey(string(c.Domain)), c)
}

func (s *Server) LoadDomainStatsCache(ctx context.Context, src stats.Source) (c schema.DomainStatsCache, err error) {
	err = s.LoadCache(ctx, s.cfg.Redis.StatsKey(string(src)), &c)
	return
}

func (s *Server) SaveRankingCache(ctx context.Context, c *schema.RankingCache) error {
	return s.SaveCache(ctx, s.cfg.Redis.RankingKey(c.Board), c)
}

func (s *Server) LoadRankingCache(ctx context.Context, board string) (c schema.RankingCache, err error) {
	err = s.LoadCache(ctx, s.cfg.Redis.RankingKey(board), &c)
	return
}

// RetryLoadingCache calls fn until it stops reporting a cache miss or timeout elapses.
func RetryLoadingCache(ctx context.Context, fn func(context.Context) error, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := util.NewImmediateTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				if !errors.Is(err, ErrCacheMiss) {
					return err
				}
			} else {
				return nil
			}
		}
	}
}
