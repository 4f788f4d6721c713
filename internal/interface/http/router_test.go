package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/internal/infra/config"
	apperrors "github.com/vitalsense/riskmodel/pkg/errors"
)

func TestRouter_AssessSuccess(t *testing.T) {
	resp := assessment.RiskAssessment{
		Version:     "1.0.0",
		RiskLevel:   assessment.LevelNeedsAttention,
		Score:       0.4,
		TopFeatures: []string{"heart_rate_critical"},
		Explanation: "heart rate of 150 bpm is far outside the expected range and may indicate a critical condition; overall findings may warrant closer attention.",
	}
	svc := &stubAssessor{
		assessFn: func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
			require.Equal(t, "p-1", req.PatientID)
			require.Len(t, req.Readings, 1)
			return resp, nil
		},
	}

	recorder := performRequest(t, http.MethodPost, "/api/v1/assessments",
		`{"patient_id":"p-1","readings":[{"timestamp":"2024-07-01T10:00:00Z","heart_rate":150}]}`,
		newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got assessment.RiskAssessment
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, resp, got)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_AssessInvalidJSON(t *testing.T) {
	svc := &stubAssessor{}

	recorder := performRequest(t, http.MethodPost, "/api/v1/assessments", `{"patient_id":123}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_AssessInvalidInput(t *testing.T) {
	svc := &stubAssessor{
		assessFn: func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
			return assessment.RiskAssessment{}, apperrors.Wrap("invalid_input", "readings batch cannot be empty", nil)
		},
	}

	recorder := performRequest(t, http.MethodPost, "/api/v1/assessments", `{"patient_id":"p-1","readings":[]}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "readings batch cannot be empty")
}

func TestRouter_AssessInternalError(t *testing.T) {
	svc := &stubAssessor{
		assessFn: func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
			return assessment.RiskAssessment{}, apperrors.Wrap("internal_error", "rule evaluation produced a non-finite score", nil)
		},
	}

	recorder := performRequest(t, http.MethodPost, "/api/v1/assessments", `{"patient_id":"p-1","readings":[{"timestamp":"2024-07-01T10:00:00Z","heart_rate":80}]}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "internal_error", errBody["error"]["code"])
}

func TestRouter_AssessSourceFailure(t *testing.T) {
	svc := &stubAssessor{
		assessFn: func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
			return assessment.RiskAssessment{}, apperrors.Wrap("readings_source_error", "failed to load recent readings", nil)
		},
	}

	recorder := performRequest(t, http.MethodPost, "/api/v1/assessments", `{"patient_id":"p-1"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "readings_source_error", errBody["error"]["code"])
}

func TestRouter_Status(t *testing.T) {
	svc := &stubAssessor{
		statusFn: func() assessment.ServiceStatus {
			return assessment.ServiceStatus{Service: "vitals-risk-engine", Model: "rule_based_vitals", Version: "1.0.0", Status: "ok"}
		},
	}

	for _, path := range []string{"/status", "/api/v1/status"} {
		recorder := performRequest(t, http.MethodGet, path, "", newRouterUnderTest(t, svc))
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var got assessment.ServiceStatus
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Equal(t, "ok", got.Status)
		require.Equal(t, "1.0.0", got.Version)
	}
}

func newRouterUnderTest(t *testing.T, svc assessment.Service) *http.Server {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(cfg, NewHandler(svc, logger))
}

func performRequest(t *testing.T, method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, payload []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(payload, &body))
	return body
}

type stubAssessor struct {
	assessFn func(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error)
	statusFn func() assessment.ServiceStatus
}

func (s *stubAssessor) Assess(ctx context.Context, req assessment.Request) (assessment.RiskAssessment, error) {
	if s.assessFn == nil {
		return assessment.RiskAssessment{}, nil
	}
	return s.assessFn(ctx, req)
}

func (s *stubAssessor) Status() assessment.ServiceStatus {
	if s.statusFn == nil {
		return assessment.ServiceStatus{}
	}
	return s.statusFn()
}
