package statscache

import (
	"testing"
	"time"

	"github.com/5w1tchy/catalog-api/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMini(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Minute), m
}

func TestKey(t *testing.T) {
	assert.Equal(t, "stats:v3:a1", Key(3, "a1"))
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	s := c.Session(t.Context())

	_, ok := s.Get(t.Context(), "a1")
	assert.False(t, ok)
	s.Set(t.Context(), "a1", models.AuthorStats{AuthorID: "a1"})
	assert.NoError(t, c.Bump(t.Context()))
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, New(nil, 0).ttl)
	assert.Equal(t, time.Minute, New(nil, time.Minute).ttl)
}

func TestUnreachableRedisFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := New(rdb, time.Second)

	s := c.Session(t.Context())
	_, ok := s.Get(t.Context(), "a1")
	assert.False(t, ok)
	assert.True(t, s.warned, "first failure should be logged")

	s.Set(t.Context(), "a1", models.AuthorStats{})
	assert.Error(t, c.Bump(t.Context()))
}

func TestSetThenGetHits(t *testing.T) {
	c, m := newMini(t)
	want := models.AuthorStats{AuthorID: "a1", AuthorName: "Ursula K. Le Guin", TotalBooks: 2}

	s := c.Session(t.Context())
	_, ok := s.Get(t.Context(), "a1")
	assert.False(t, ok, "empty cache should miss")
	s.Set(t.Context(), "a1", want)

	got, ok := c.Session(t.Context()).Get(t.Context(), "a1")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.True(t, m.Exists(Key(0, "a1")))
	assert.Equal(t, time.Minute, m.TTL(Key(0, "a1")))
	assert.False(t, s.warned)
}

func TestBumpOrphansEntries(t *testing.T) {
	c, m := newMini(t)
	c.Session(t.Context()).Set(t.Context(), "a1", models.AuthorStats{AuthorID: "a1"})

	require.NoError(t, c.Bump(t.Context()))
	ver, err := m.Get(versionKey)
	require.NoError(t, err)
	assert.Equal(t, "1", ver)

	s := c.Session(t.Context())
	assert.Equal(t, int64(1), s.version)
	_, ok := s.Get(t.Context(), "a1")
	assert.False(t, ok, "entry from version 0 must not be served after a bump")

	s.Set(t.Context(), "a1", models.AuthorStats{AuthorID: "a1", TotalBooks: 1})
	got, ok := c.Session(t.Context()).Get(t.Context(), "a1")
	require.True(t, ok)
	assert.Equal(t, 1, got.TotalBooks)
}

func TestCorruptEntryMisses(t *testing.T) {
	c, m := newMini(t)
	require.NoError(t, m.Set(Key(0, "a1"), "{not json"))

	s := c.Session(t.Context())
	_, ok := s.Get(t.Context(), "a1")
	assert.False(t, ok)
	assert.True(t, s.warned)
}
