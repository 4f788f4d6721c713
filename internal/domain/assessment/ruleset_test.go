package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The normal-range table is a compatibility contract with the routing layer
// and the sibling model services; it must not drift.
func TestDefaultRuleSetNormalRanges(t *testing.T) {
	rs := DefaultRuleSet()

	expected := map[Vital][2]float64{
		VitalHeartRate:       {60, 100},
		VitalSystolicBP:      {90, 140},
		VitalDiastolicBP:     {60, 90},
		VitalSpO2:            {95, 100},
		VitalRespiratoryRate: {12, 20},
		VitalTemperature:     {36.1, 37.2},
		VitalPain:            {0, 3},
	}
	for vital, bounds := range expected {
		rng := rs.Ranges[vital]
		require.Equal(t, bounds[0], rng.Low, "%s low", vital)
		require.Equal(t, bounds[1], rng.High, "%s high", vital)
	}
}

func TestDefaultRuleSetCoversEveryVital(t *testing.T) {
	rs := DefaultRuleSet()

	for _, v := range vitalOrder {
		require.Contains(t, rs.Ranges, v)
		require.Contains(t, rs.DomainBounds, v)
		require.Contains(t, rs.NoiseThresholds, v)

		rng := rs.Ranges[v]
		require.LessOrEqual(t, rng.CriticalLow, rng.Low, "%s critical band must contain the normal band", v)
		require.GreaterOrEqual(t, rng.CriticalHigh, rng.High, "%s critical band must contain the normal band", v)
		require.Greater(t, rs.NoiseThresholds[v], 0.0, "%s noise threshold", v)
	}
}

func TestRuleWeightRelationsHold(t *testing.T) {
	w := DefaultRuleSet().Weights
	require.Greater(t, w.Critical, w.Abnormal)
	require.Greater(t, w.Abnormal, w.TrendFlagged)
	require.Greater(t, w.TrendFlagged, w.TrendAlone)
	// A lone critical value must land in needs_attention on its own.
	require.GreaterOrEqual(t, w.Critical, DefaultRuleSet().Tiers.NeedsAttention)
}
