package geocode

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type cached struct {
	next    Resolver
	store   *cache.Cache
	missTTL time.Duration
}

// Cached remembers hits of next for ttl and misses for a tenth of it, so a
// transient outage does not stick for long.
func Cached(next Resolver, ttl time.Duration) Resolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &cached{next: next, store: cache.New(ttl, 2*ttl), missTTL: ttl / 10}
}

func (c *cached) Resolve(ctx context.Context, address string) *Coordinates {
	key := normalize(address)
	if key == "" {
		return nil
	}
	if v, ok := c.store.Get(key); ok {
		if coords, _ := v.(*Coordinates); coords != nil {
			out := *coords
			return &out
		}
		return nil
	}

	got := c.next.Resolve(ctx, address)
	if got == nil {
		// a cancelled lookup says nothing about the address
		if ctx.Err() == nil {
			c.store.Set(key, (*Coordinates)(nil), c.missTTL)
		}
		return nil
	}
	stored := *got
	c.store.Set(key, &stored, cache.DefaultExpiration)
	return got
}
