package usagerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
)

// MemoryRepository keeps usage counters in process memory for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	counts map[fitness.UsageKey]int64
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{counts: make(map[fitness.UsageKey]int64)}
}

// Increment implements fitness.UsageRepository.
func (r *MemoryRepository) Increment(_ context.Context, key fitness.UsageKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return nil
}

// List returns counters ordered by count, then key.
func (r *MemoryRepository) List(_ context.Context) ([]fitness.UsageCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]fitness.UsageCount, 0, len(r.counts))
	for key, count := range r.counts {
		out = append(out, fitness.UsageCount{UsageKey: key, Count: count})
	}
	sortCounts(out)
	return out, nil
}

func sortCounts(items []fitness.UsageCount) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		if a.Gender != b.Gender {
			return a.Gender < b.Gender
		}
		return a.Bracket < b.Bracket
	})
}

var _ fitness.UsageRepository = (*MemoryRepository)(nil)
