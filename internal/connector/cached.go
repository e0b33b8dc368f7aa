package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/octobees/lead-intel/internal/cache"
	"github.com/octobees/lead-intel/internal/entity"
)

// DefaultCacheTTL is how long fetched company records stay cached.
const DefaultCacheTTL = time.Hour

// CachedConnector is a read-through cache around another connector. Lookups
// for the same key are deduplicated with singleflight, so concurrent callers
// asking for the same uncached company share a single upstream fetch.
type CachedConnector struct {
	source Connector
	store  cache.Store
	ttl    time.Duration
	group  singleflight.Group
}

// NewCachedConnector wraps source with a read-through cache. A non-positive
// ttl falls back to DefaultCacheTTL.
func NewCachedConnector(source Connector, store cache.Store, ttl time.Duration) *CachedConnector {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedConnector{source: source, store: store, ttl: ttl}
}

// Name reports the wrapped source's name.
func (c *CachedConnector) Name() string {
	return c.source.Name()
}

// FetchCompany serves from cache when possible, otherwise fetches from the
// source and caches the result. Cache failures degrade to a direct fetch.
func (c *CachedConnector) FetchCompany(ctx context.Context, companyName string) (*entity.CompanyRecord, error) {
	key := c.cacheKey(companyName)

	cached, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("connector %s: cache read failed key=%s err=%v", c.Name(), key, err)
	} else if ok {
		var record entity.CompanyRecord
		if err := json.Unmarshal(cached, &record); err == nil {
			log.Printf("connector %s: cache hit key=%s", c.Name(), key)
			return &record, nil
		}
		log.Printf("connector %s: dropping undecodable cache entry key=%s", c.Name(), key)
	}

	value, err, shared := c.group.Do(key, func() (any, error) {
		record, err := c.source.FetchCompany(ctx, companyName)
		if err != nil || record == nil {
			return record, err
		}

		payload, marshalErr := json.Marshal(record)
		if marshalErr != nil {
			return nil, fmt.Errorf("encode record for cache: %w", marshalErr)
		}
		if setErr := c.store.Set(ctx, key, payload, c.ttl); setErr != nil {
			log.Printf("connector %s: cache write failed key=%s err=%v", c.Name(), key, setErr)
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Printf("connector %s: joined in-flight fetch key=%s", c.Name(), key)
	}

	record, _ := value.(*entity.CompanyRecord)
	if record == nil {
		return nil, nil
	}
	// Late joiners share the same pointer; hand each caller its own copy.
	clone := record.Clone()
	return &clone, nil
}

func (c *CachedConnector) cacheKey(companyName string) string {
	return fmt.Sprintf("%s:company:%s", c.source.Name(), strings.ToLower(strings.TrimSpace(companyName)))
}

var _ Connector = (*CachedConnector)(nil)
