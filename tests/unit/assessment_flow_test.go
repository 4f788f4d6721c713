package unit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/internal/infra/assesscache"
	"github.com/vitalsense/riskmodel/internal/infra/vitalsrepo"
)

func fp(v float64) *float64 {
	return &v
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func newService(source assessment.ReadingSource, store assessment.Store) assessment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return assessment.NewService(assessment.Config{TopFeatures: 3, Window: 12 * time.Hour, CacheTTL: time.Minute},
		assessment.DefaultRuleSet(), source, store, logger)
}

func TestAssessmentFlowWithMemoryInfra(t *testing.T) {
	store := assesscache.NewMemoryStore()
	svc := newService(vitalsrepo.NewMemoryRepository(), store)

	req := assessment.Request{
		PatientID: "p-9",
		Readings: []assessment.VitalReading{
			{Timestamp: mustParse(t, "2024-07-01T08:00:00Z"), HeartRate: fp(100)},
			{Timestamp: mustParse(t, "2024-07-01T11:00:00Z"), HeartRate: fp(150), SpO2: fp(90)},
		},
	}

	first, err := svc.Assess(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, assessment.LevelNeedsAttention, first.RiskLevel)
	require.Contains(t, first.TopFeatures, "heart_rate_critical")
	require.Contains(t, first.Explanation, "may indicate")

	// Second identical call is answered out of the deterministic cache and
	// must be byte-identical.
	second, err := svc.Assess(context.Background(), req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, firstJSON, secondJSON)
}

func TestAssessmentFlowReadsFromRepositoryWhenBatchOmitted(t *testing.T) {
	repo := vitalsrepo.NewMemoryRepository()
	now := time.Now().UTC()
	repo.Add("p-9", assessment.VitalReading{Timestamp: now.Add(-2 * time.Hour), SpO2: fp(91)})

	svc := newService(repo, assesscache.NewMemoryStore())

	resp, err := svc.Assess(context.Background(), assessment.Request{PatientID: "p-9"})
	require.NoError(t, err)
	require.Equal(t, []string{"spo2_abnormal"}, resp.TopFeatures)
	require.Equal(t, assessment.LevelRoutine, resp.RiskLevel)
}
