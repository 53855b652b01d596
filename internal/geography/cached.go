package geography

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/cache"
	"github.com/algoreed/crs/pkg/model"
)

// CachedLookup serves repeated lookups from a cache. Cache failures fall through to the
// wrapped Lookup, so a cached result set is always one the wrapped Lookup returned.
type CachedLookup struct {
	next   Lookup
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLookup wraps next with cache c
func NewCachedLookup(next Lookup, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	return &CachedLookup{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (l *CachedLookup) Children(ctx context.Context, rel Relation, parentID int64) ([]model.LookupItem, error) {
	key := cache.Key("lookup", rel.Name, parentID)

	var items []model.LookupItem
	if l.load(ctx, key, &items) {
		return items, nil
	}

	items, err := l.next.Children(ctx, rel, parentID)
	if err != nil {
		return nil, err
	}
	l.store(ctx, key, items)
	return items, nil
}

func (l *CachedLookup) TrustRegions(ctx context.Context) ([]model.TrustRegion, error) {
	key := cache.Key("lookup", "trust_regions")

	var regions []model.TrustRegion
	if l.load(ctx, key, &regions) {
		return regions, nil
	}

	regions, err := l.next.TrustRegions(ctx)
	if err != nil {
		return nil, err
	}
	l.store(ctx, key, regions)
	return regions, nil
}

func (l *CachedLookup) load(ctx context.Context, key string, dst interface{}) bool {
	raw, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		l.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (l *CachedLookup) store(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
		l.logger.Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}
