package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/racehub/internal/models"
)

func sampleRaces() []models.Race {
	return []models.Race{
		{ID: "2", Name: "Trail Picos", Date: models.NewDate(2027, time.June, 5)},
		{ID: "1", Name: "Maratón de Valencia", Date: models.NewDate(2024, time.December, 1),
			Results: []models.Result{{OfficialTime: "03:12:45"}}},
	}
}

// TestReplaceKeepsServerOrder tests that the snapshot is stored as fetched
func TestReplaceKeepsServerOrder(t *testing.T) {
	s := NewRaceStore()
	s.Replace(sampleRaces())

	races := s.Races()
	require.Len(t, races, 2)
	assert.Equal(t, models.RaceID("2"), races[0].ID)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.LoadedAt().IsZero())
}

// TestReplaceIsWholesale tests that a reload drops races missing from the new snapshot
func TestReplaceIsWholesale(t *testing.T) {
	s := NewRaceStore()
	s.Replace(sampleRaces())
	s.Replace([]models.Race{{ID: "3", Name: "Ironman"}})

	_, ok := s.Get("1")
	assert.False(t, ok)

	race, ok := s.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Ironman", race.Name)
}

// TestSnapshotIsolation tests that callers cannot mutate the stored snapshot
func TestSnapshotIsolation(t *testing.T) {
	input := sampleRaces()
	s := NewRaceStore()
	s.Replace(input)

	input[0].Name = "changed"
	out := s.Races()
	out[1].Name = "changed too"

	races := s.Races()
	assert.Equal(t, "Trail Picos", races[0].Name)
	assert.Equal(t, "Maratón de Valencia", races[1].Name)
}

// TestResultFromSnapshot tests cached result lookups
func TestResultFromSnapshot(t *testing.T) {
	s := NewRaceStore()
	s.Replace(sampleRaces())

	result, ok := s.Result("1")
	require.True(t, ok)
	assert.Equal(t, "03:12:45", result.OfficialTime.String())

	_, ok = s.Result("2")
	assert.False(t, ok)

	_, ok = s.Result("missing")
	assert.False(t, ok)
}

// TestStats tests hit/miss accounting and reset
func TestStats(t *testing.T) {
	s := NewRaceStore()
	s.Replace(sampleRaces())

	s.Get("1")
	s.Get("2")
	s.Get("9")

	hits, misses, ratio := s.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-9)

	s.Reset()
	hits, misses, ratio = s.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
	assert.Empty(t, s.Races())
	assert.True(t, s.LoadedAt().IsZero())
}

// TestDuplicateIDKeepsFirst tests index behaviour on a malformed payload
func TestDuplicateIDKeepsFirst(t *testing.T) {
	s := NewRaceStore()
	s.Replace([]models.Race{{ID: "1", Name: "first"}, {ID: "1", Name: "second"}})

	race, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "first", race.Name)
}

// TestConcurrentAccess tests that readers and the reloader can interleave
func TestConcurrentAccess(t *testing.T) {
	s := NewRaceStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Replace(sampleRaces())
		}()
		go func() {
			defer wg.Done()
			s.Get("1")
			_ = s.Races()
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, s.Len())
}
