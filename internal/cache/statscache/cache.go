package statscache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/5w1tchy/catalog-api/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const (
	versionKey     = "stats:ver" // bumped after every catalog write
	DefaultTTL     = 30 * time.Second
	defaultTimeout = 150 * time.Millisecond
)

// Cache keeps author stats under stats:v{N}:{authorId}. Bumping stats:ver
// orphans every entry at once; old keys expire on their TTL.
// A nil *Cache or nil client disables caching.
type Cache struct {
	rdb     *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl, timeout: defaultTimeout}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

// Key renders the cache key for one author at one version.
func Key(version int64, authorID string) string {
	return fmt.Sprintf("stats:v%d:%s", version, authorID)
}

// Session is request-scoped: the version is resolved once, and at most one
// warning is logged, no matter how many operations fail.
type Session struct {
	c       *Cache
	version int64
	ok      bool
	warned  bool
}

// Session resolves the current version. Redis errors disable the session
// (fail open) instead of failing the request.
func (c *Cache) Session(ctx context.Context) *Session {
	s := &Session{c: c}
	if !c.enabled() {
		return s
	}
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ver, err := c.rdb.Get(cctx, versionKey).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		// INCR on a missing key yields 1, so an unset version reads as 0
		ver = 0
	case err != nil:
		s.warnOnce("version lookup failed: %v; bypassing cache for this request", err)
		return s
	}
	s.version, s.ok = ver, true
	return s
}

func (s *Session) Get(ctx context.Context, authorID string) (models.AuthorStats, bool) {
	var st models.AuthorStats
	if !s.ok {
		return st, false
	}
	cctx, cancel := context.WithTimeout(ctx, s.c.timeout)
	defer cancel()
	raw, err := s.c.rdb.Get(cctx, Key(s.version, authorID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warnOnce("get failed: %v", err)
		}
		return st, false
	}
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &st); err != nil {
		s.warnOnce("decode failed: %v", err)
		return st, false
	}
	return st, true
}

func (s *Session) Set(ctx context.Context, authorID string, st models.AuthorStats) {
	if !s.ok {
		return
	}
	raw, err := jsoniter.ConfigFastest.Marshal(st)
	if err != nil {
		s.warnOnce("encode failed: %v", err)
		return
	}
	cctx, cancel := context.WithTimeout(ctx, s.c.timeout)
	defer cancel()
	if err := s.c.rdb.SetEx(cctx, Key(s.version, authorID), raw, s.c.ttl).Err(); err != nil {
		s.warnOnce("set failed: %v (muted next)", err)
	}
}

func (s *Session) warnOnce(format string, args ...any) {
	if s.warned {
		return
	}
	s.warned = true
	log.Printf("[stats-cache] "+format, args...)
}

// Bump increments the global version. Call it after a successful write.
// No-op when caching is disabled.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.rdb.Incr(cctx, versionKey).Err(); err != nil {
		return fmt.Errorf("bump stats version: %w", err)
	}
	return nil
}
