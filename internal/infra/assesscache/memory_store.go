package assesscache

import (
	"context"
	"sync"
	"time"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
)

type entry struct {
	payload   assessment.RiskAssessment
	expiresAt time.Time
}

// MemoryStore is an in-memory assessment cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get implements assessment.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (assessment.RiskAssessment, bool, error) {
	if key == "" {
		return assessment.RiskAssessment{}, false, nil
	}
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return assessment.RiskAssessment{}, false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return assessment.RiskAssessment{}, false, nil
	}
	return e.payload, true, nil
}

// Save caches the assessment with optional TTL.
func (s *MemoryStore) Save(_ context.Context, key string, result assessment.RiskAssessment, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{payload: result, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ assessment.Store = (*MemoryStore)(nil)
