package cache

import (
	"errors"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/ports"
	"time"

	"github.com/bluele/gcache"
)

// LRUTransitDetailer memoizes a TransitDetailer in process.
// Entries expire after ttl; a zero ttl keeps them until evicted.
type LRUTransitDetailer struct {
	next  ports.TransitDetailer
	cache gcache.Cache
}

func NewLRUTransitDetailer(next ports.TransitDetailer, size int, ttl time.Duration) *LRUTransitDetailer {
	if size <= 0 {
		size = 1
	}
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &LRUTransitDetailer{next: next, cache: b.Build()}
}

func (l *LRUTransitDetailer) GenerateDetailedRoute(from, to domain.Endpoint) domain.DetailedRoute {
	key := TransitKey(from, to)

	v, err := l.cache.Get(key)
	if err == nil {
		if r, ok := v.(domain.DetailedRoute); ok {
			return r
		}
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		logger.Warn("transit lru get failed", "key", key, "error", err)
	}

	r := l.next.GenerateDetailedRoute(from, to)
	if err := l.cache.Set(key, r); err != nil {
		logger.Warn("transit lru set failed", "key", key, "error", err)
	}
	return r
}

// Stats reports lookups served from memory and lookups that were computed.
func (l *LRUTransitDetailer) Stats() (hits, misses uint64) {
	return l.cache.HitCount(), l.cache.MissCount()
}
