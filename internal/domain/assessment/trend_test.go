package assessment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObserveTrendsDirections(t *testing.T) {
	cases := []struct {
		name     string
		readings []VitalReading
		vital    Vital
		want     Direction
	}{
		{
			name: "heart rate rising past noise threshold",
			readings: []VitalReading{
				{Timestamp: mustParse("2024-07-01T08:00:00Z"), HeartRate: fp(70)},
				{Timestamp: mustParse("2024-07-01T11:00:00Z"), HeartRate: fp(98)},
			},
			vital: VitalHeartRate,
			want:  DirectionIncreasing,
		},
		{
			name: "heart rate wobble inside noise threshold",
			readings: []VitalReading{
				{Timestamp: mustParse("2024-07-01T08:00:00Z"), HeartRate: fp(80)},
				{Timestamp: mustParse("2024-07-01T11:00:00Z"), HeartRate: fp(87)},
			},
			vital: VitalHeartRate,
			want:  DirectionStable,
		},
		{
			name: "spo2 dropping",
			readings: []VitalReading{
				{Timestamp: mustParse("2024-07-01T08:00:00Z"), SpO2: fp(98)},
				{Timestamp: mustParse("2024-07-01T11:00:00Z"), SpO2: fp(93)},
			},
			vital: VitalSpO2,
			want:  DirectionDecreasing,
		},
		{
			name: "temperature threshold is tighter than heart rate",
			readings: []VitalReading{
				{Timestamp: mustParse("2024-07-01T08:00:00Z"), Temperature: fp(36.5)},
				{Timestamp: mustParse("2024-07-01T11:00:00Z"), Temperature: fp(37.0)},
			},
			vital: VitalTemperature,
			want:  DirectionIncreasing,
		},
		{
			name: "single reading makes no trend claim",
			readings: []VitalReading{
				{Timestamp: mustParse("2024-07-01T11:00:00Z"), HeartRate: fp(150)},
			},
			vital: VitalHeartRate,
			want:  DirectionStable,
		},
	}

	rs := DefaultRuleSet()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := normalize(tc.readings, testWindow, rs)
			require.NoError(t, err)
			trends := observeTrends(view, rs)
			require.Equal(t, tc.want, trends[tc.vital].Direction)
		})
	}
}

func TestObserveTrendsFallbackSeriesIsStable(t *testing.T) {
	readings := []VitalReading{
		{Timestamp: mustParse("2024-06-29T08:00:00Z"), Temperature: fp(38.5)},
		{Timestamp: mustParse("2024-07-01T11:00:00Z"), HeartRate: fp(85)},
	}

	rs := DefaultRuleSet()
	view, err := normalize(readings, testWindow, rs)
	require.NoError(t, err)

	trends := observeTrends(view, rs)
	require.Equal(t, DirectionStable, trends[VitalTemperature].Direction)
}

func TestObserveTrendsAbsentVitalStaysAbsent(t *testing.T) {
	readings := []VitalReading{
		{Timestamp: mustParse("2024-07-01T11:00:00Z"), HeartRate: fp(85)},
	}

	rs := DefaultRuleSet()
	view, err := normalize(readings, testWindow, rs)
	require.NoError(t, err)

	trends := observeTrends(view, rs)
	_, present := trends[VitalSpO2]
	require.False(t, present)
}
