package assessment

// observeTrends derives a per-vital direction by comparing the earliest and
// latest in-window samples against the vital's own noise threshold. A single
// sample, or a fallback series, makes no trend claim and reads as stable.
func observeTrends(view batchView, rs RuleSet) map[Vital]TrendObservation {
	trends := make(map[Vital]TrendObservation, len(view.series))
	for _, v := range vitalOrder {
		series, ok := view.series[v]
		if !ok {
			continue
		}
		first := series.samples[0]
		last := series.latest()
		obs := TrendObservation{
			Vital:     v,
			Direction: DirectionStable,
			First:     first.value,
			Last:      last.value,
			Samples:   len(series.samples),
		}
		if len(series.samples) >= 2 && !series.fromFallback {
			delta := last.value - first.value
			noise := rs.NoiseThresholds[v]
			switch {
			case delta > noise:
				obs.Direction = DirectionIncreasing
			case delta < -noise:
				obs.Direction = DirectionDecreasing
			}
		}
		trends[v] = obs
	}
	return trends
}
