// Package store holds the last-fetched race collection.
package store

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/racehub/internal/metrics"
	"github.com/yourusername/racehub/internal/models"
)

// RaceStore is the in-memory snapshot of the user's races. The snapshot is
// only ever replaced wholesale by a reload; there is no incremental update.
type RaceStore struct {
	mu        sync.RWMutex
	races     []models.Race
	index     *cache.Cache
	loadedAt  time.Time
	hitCount  uint64
	missCount uint64
}

// NewRaceStore creates an empty race store
func NewRaceStore() *RaceStore {
	return &RaceStore{
		index: cache.New(cache.NoExpiration, 0),
	}
}

// Replace swaps in a freshly fetched collection, keeping server order
func (s *RaceStore) Replace(races []models.Race) {
	snapshot := make([]models.Race, len(races))
	copy(snapshot, races)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Flush()
	for i := range snapshot {
		// Identifiers are unique per snapshot; keep the first on a bad payload
		_ = s.index.Add(snapshot[i].ID.String(), i, cache.NoExpiration)
	}
	s.races = snapshot
	s.loadedAt = time.Now()
}

// Races returns a copy of the current snapshot
func (s *RaceStore) Races() []models.Race {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Race, len(s.races))
	copy(out, s.races)
	return out
}

// Len returns the number of races in the snapshot
func (s *RaceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.races)
}

// LoadedAt returns when the snapshot was last replaced
func (s *RaceStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Get looks a race up by identifier
func (s *RaceStore) Get(id models.RaceID) (models.Race, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, found := s.index.Get(id.String()); found {
		if i, ok := v.(int); ok && i < len(s.races) {
			s.hitCount++
			s.updateMetrics()
			return s.races[i], true
		}
	}

	s.missCount++
	s.updateMetrics()
	return models.Race{}, false
}

// Result returns the personal result attached to a race in the snapshot
func (s *RaceStore) Result(id models.RaceID) (models.Result, bool) {
	race, ok := s.Get(id)
	if !ok {
		return models.Result{}, false
	}
	return race.Result()
}

// Reset drops the snapshot and statistics
func (s *RaceStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Flush()
	s.races = nil
	s.loadedAt = time.Time{}
	s.hitCount = 0
	s.missCount = 0
}

// Stats returns index statistics
func (s *RaceStore) Stats() (hits, misses uint64, ratio float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats()
}

func (s *RaceStore) stats() (hits, misses uint64, ratio float64) {
	hits = s.hitCount
	misses = s.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// updateMetrics updates Prometheus metrics; callers hold the lock
func (s *RaceStore) updateMetrics() {
	_, _, ratio := s.stats()
	metrics.UpdateRaceIndexHitRatio(ratio)
}
