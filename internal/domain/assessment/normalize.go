package assessment

import (
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "github.com/vitalsense/riskmodel/pkg/errors"
)

type sample struct {
	at    time.Time
	value float64
}

// vitalSeries is the normalized view of one vital: time-ordered in-window
// samples, or a single out-of-window fallback when that is all we have.
type vitalSeries struct {
	samples      []sample
	fromFallback bool
}

func (s vitalSeries) latest() sample {
	return s.samples[len(s.samples)-1]
}

// batchView is the output of the normalizer stage: the per-vital series that
// the trend analyzer and rule evaluator operate on. Vitals with no readings
// at all are absent from the map.
type batchView struct {
	latestAt time.Time
	series   map[Vital]vitalSeries
}

// normalize validates and orders a reading batch, then windows it per vital.
//
// Validation is eager: a malformed batch fails here before any scoring work
// begins. The analysis window is anchored at the latest timestamp in the
// batch itself, never the wall clock, so results are reproducible. A vital
// whose only readings predate the window keeps its single most recent value
// for range checks; such a series makes no trend claim.
func normalize(readings []VitalReading, window time.Duration, rs RuleSet) (batchView, error) {
	if len(readings) == 0 {
		return batchView{}, apperrors.Wrap("invalid_input", "readings batch cannot be empty", nil)
	}

	anyVital := false
	for i, r := range readings {
		if r.Timestamp.IsZero() {
			return batchView{}, apperrors.Wrap("invalid_input", fmt.Sprintf("reading %d is missing a timestamp", i), nil)
		}
		for _, v := range vitalOrder {
			val := r.value(v)
			if val == nil {
				continue
			}
			anyVital = true
			bound := rs.DomainBounds[v]
			if !bound.contains(*val) {
				return batchView{}, apperrors.Wrap("invalid_input",
					fmt.Sprintf("reading %d: %s value %g is outside the plausible range %g-%g", i, v, *val, bound.Min, bound.Max), nil)
			}
			if v == VitalPain && *val != math.Trunc(*val) {
				return batchView{}, apperrors.Wrap("invalid_input",
					fmt.Sprintf("reading %d: pain must be an integer on the 0-10 scale, got %g", i, *val), nil)
			}
		}
	}
	if !anyVital {
		return batchView{}, apperrors.Wrap("invalid_input", "every reading is missing all vital fields", nil)
	}

	ordered := make([]VitalReading, len(readings))
	copy(ordered, readings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	latestAt := ordered[len(ordered)-1].Timestamp.UTC()
	cutoff := latestAt.Add(-window)

	view := batchView{latestAt: latestAt, series: make(map[Vital]vitalSeries, len(vitalOrder))}
	for _, v := range vitalOrder {
		var inWindow, all []sample
		for _, r := range ordered {
			val := r.value(v)
			if val == nil {
				continue
			}
			s := sample{at: r.Timestamp.UTC(), value: *val}
			all = append(all, s)
			if !s.at.Before(cutoff) {
				inWindow = append(inWindow, s)
			}
		}
		switch {
		case len(inWindow) > 0:
			view.series[v] = vitalSeries{samples: inWindow}
		case len(all) > 0:
			// Stale data only: keep the most recent value for range checks
			// but never derive a trend from it.
			view.series[v] = vitalSeries{samples: all[len(all)-1:], fromFallback: true}
		}
	}
	return view, nil
}
