package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"along/internal/utils"

	"github.com/bluele/gcache"
)

// Cached memoizes successful answers of Next.
type Cached struct {
	Next  RouteTextProvider
	cache gcache.Cache
}

// NewCached wraps next with an LRU cache of size entries that expire after ttl.
func NewCached(next RouteTextProvider, size int, ttl time.Duration) *Cached {
	return &Cached{
		Next: next,
		cache: gcache.New(max(size, 1)).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

// quantizeCoord rounds to 4 decimals (about 11 m) so nearby fixes share a key.
func quantizeCoord(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func cacheKey(q RouteQuery) string {
	key := fmt.Sprintf("%s|%s|%s", q.Region, utils.FoldKey(q.Origin), utils.FoldKey(q.Destination))
	if q.Coordinates != nil {
		key += fmt.Sprintf("|%.4f,%.4f", quantizeCoord(q.Coordinates.Latitude), quantizeCoord(q.Coordinates.Longitude))
	}
	return key
}

func (c *Cached) FetchRoute(ctx context.Context, q RouteQuery) (string, error) {
	key := cacheKey(q)
	if v, err := c.cache.Get(key); err == nil {
		if text, ok := v.(string); ok {
			return text, nil
		}
	}
	text, err := c.Next.FetchRoute(ctx, q)
	if err != nil {
		return "", err
	}
	if text != "" {
		_ = c.cache.Set(key, text)
	}
	return text, nil
}
