package revision

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/reckon/internal/diff"
)

// ComparisonCache memoizes CompareRevisions results. Comparisons are pure,
// so a cached result for a revision-id pair never goes stale; the TTL only
// bounds memory. Overridden options bypass the cache because the key does
// not capture them.
type ComparisonCache[T any] struct {
	engine *Engine[T]
	cache  *gocache.Cache
}

// NewComparisonCache wraps engine with a memoizing comparison cache.
func NewComparisonCache[T any](engine *Engine[T], ttl time.Duration) *ComparisonCache[T] {
	return &ComparisonCache[T]{
		engine: engine,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// CompareRevisions returns the cached comparison for the revision pair,
// computing and storing it on a miss.
func (c *ComparisonCache[T]) CompareRevisions(from, to Revision[T], opts *diff.Options) Comparison {
	if opts != nil || from.ID == "" || to.ID == "" {
		return c.engine.CompareRevisions(from, to, opts)
	}

	key := from.ID + "|" + to.ID
	if cached, ok := c.cache.Get(key); ok {
		return cached.(Comparison)
	}

	cmp := c.engine.CompareRevisions(from, to, nil)
	c.cache.Set(key, cmp, gocache.DefaultExpiration)
	return cmp
}
