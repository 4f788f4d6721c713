package vitalsrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/pkg/util"
)

// MemoryRepository is an in-memory readings source for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	readings map[string][]assessment.VitalReading
	now      func() time.Time
}

// NewMemoryRepository constructs an empty in-memory source.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		readings: make(map[string][]assessment.VitalReading),
		now:      util.NowUTC,
	}
}

// Add records a reading for a patient.
func (r *MemoryRepository) Add(patientID string, reading assessment.VitalReading) {
	r.mu.Lock()
	r.readings[patientID] = append(r.readings[patientID], reading)
	r.mu.Unlock()
}

// RecentReadings implements assessment.ReadingSource.
func (r *MemoryRepository) RecentReadings(_ context.Context, patientID string, window time.Duration) ([]assessment.VitalReading, error) {
	since := r.now().Add(-window)
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []assessment.VitalReading
	for _, reading := range r.readings[patientID] {
		if reading.Timestamp.Before(since) {
			continue
		}
		out = append(out, reading)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

var _ assessment.ReadingSource = (*MemoryRepository)(nil)
