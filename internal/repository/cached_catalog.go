package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"posapi/internal/models"
	"posapi/internal/services"
)

// CachedCatalog memoizes barcode lookups for terminals that scan the same
// items repeatedly. FindByIDs is never cached: registration must price
// lines from the current product row.
type CachedCatalog struct {
	next  services.ProductCatalog
	codes *cache.Cache
}

// NewCachedCatalog wraps next with a code lookup cache. A non-positive ttl
// disables caching.
func NewCachedCatalog(next services.ProductCatalog, ttl time.Duration) *CachedCatalog {
	c := &CachedCatalog{next: next}
	if ttl > 0 {
		c.codes = cache.New(ttl, 2*ttl)
	}
	return c
}

// FindByIDs always reads through to storage.
func (c *CachedCatalog) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	return c.next.FindByIDs(ctx, ids)
}

// FindByCode serves hits from the cache. Misses and errors are not cached.
func (c *CachedCatalog) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	if c.codes == nil {
		return c.next.FindByCode(ctx, code)
	}
	if v, ok := c.codes.Get(code); ok {
		p := v.(models.Product)
		return &p, nil
	}

	p, err := c.next.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.codes.SetDefault(code, *p)
	return p, nil
}

var _ services.ProductCatalog = (*CachedCatalog)(nil)
