package assessment

// evaluate applies the four rule classes to the normalized batch and returns
// the clamped score plus every triggered feature.
//
// Rules fire in vital declaration order and weights accumulate in that same
// order, so the arithmetic is reproducible bit-for-bit for a given batch.
func evaluate(view batchView, trends map[Vital]TrendObservation, rs RuleSet) (float64, []TriggeredFeature) {
	var features []TriggeredFeature
	flagged := 0

	for _, v := range vitalOrder {
		series, ok := view.series[v]
		if !ok {
			continue
		}
		value := series.latest().value
		rng := rs.Ranges[v]

		vitalFlagged := false
		switch {
		case rng.isCritical(value):
			vitalFlagged = true
			features = append(features, TriggeredFeature{
				Tag:    string(v) + "_critical",
				Class:  ClassCritical,
				Vital:  v,
				Weight: rs.Weights.Critical,
				Value:  value,
			})
		case rng.isAbnormal(value):
			vitalFlagged = true
			features = append(features, TriggeredFeature{
				Tag:    string(v) + "_abnormal",
				Class:  ClassAbnormal,
				Vital:  v,
				Weight: rs.Weights.Abnormal,
				Value:  value,
			})
		}
		if vitalFlagged {
			flagged++
		}

		obs := trends[v]
		if obs.Direction != DirectionStable {
			weight := rs.Weights.TrendAlone
			if vitalFlagged {
				weight = rs.Weights.TrendFlagged
			}
			features = append(features, TriggeredFeature{
				Tag:       string(v) + "_trend",
				Class:     ClassTrend,
				Vital:     v,
				Weight:    weight,
				Value:     value,
				Direction: obs.Direction,
			})
		}
	}

	if flagged >= rs.MultiAbnormalMin {
		features = append(features, TriggeredFeature{
			Tag:    "multi_abnormal",
			Class:  ClassMulti,
			Weight: rs.Weights.MultiAbnormal,
			Value:  float64(flagged),
		})
	}

	raw := 0.0
	for _, f := range features {
		raw += f.Weight
	}
	return clamp01(raw), features
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
