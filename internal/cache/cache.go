package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is an entry-atomic byte cache with per-entry absolute expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// PageKey identifies one paginated/sorted listing result. Two keys differing
// in any field address distinct entries.
type PageKey struct {
	PageNumber int
	PageSize   int
	SortField  string
	Ascending  bool
}

func (k PageKey) String() string {
	sort := k.SortField
	if sort == "" {
		sort = "id"
	}
	return fmt.Sprintf("products:page=%d:size=%d:sort=%s:asc=%t", k.PageNumber, k.PageSize, sort, k.Ascending)
}

type Memory struct {
	c *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{c: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}
