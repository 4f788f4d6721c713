package assessment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "github.com/vitalsense/riskmodel/pkg/errors"
	"github.com/vitalsense/riskmodel/pkg/metrics"
)

// ServiceName identifies this model service to the routing layer.
const ServiceName = "vitals-risk-engine"

// Service exposes the rule-based risk engine.
type Service interface {
	Assess(ctx context.Context, req Request) (RiskAssessment, error)
	Status() ServiceStatus
}

// ReadingSource loads a patient's recent readings when the caller supplies
// none. Implementations are read-only; the engine itself persists nothing.
type ReadingSource interface {
	RecentReadings(ctx context.Context, patientID string, window time.Duration) ([]VitalReading, error)
}

// Store caches finished assessments keyed by a canonical batch digest. Safe
// because the engine is a pure function of its input batch.
type Store interface {
	Get(ctx context.Context, key string) (RiskAssessment, bool, error)
	Save(ctx context.Context, key string, result RiskAssessment, ttl time.Duration) error
}

// Config tunes the service around the fixed rule table.
type Config struct {
	TopFeatures int
	Window      time.Duration
	CacheTTL    time.Duration
}

type service struct {
	cfg    Config
	rules  RuleSet
	source ReadingSource
	store  Store
	logger *slog.Logger
}

// NewService wires up the assessment domain.
func NewService(cfg Config, rules RuleSet, source ReadingSource, store Store, logger *slog.Logger) Service {
	if cfg.TopFeatures <= 0 {
		cfg.TopFeatures = 3
	}
	if cfg.Window <= 0 {
		cfg.Window = 12 * time.Hour
	}
	return &service{
		cfg:    cfg,
		rules:  rules,
		source: source,
		store:  store,
		logger: logger.With("component", "assessment.service"),
	}
}

func (s *service) Assess(ctx context.Context, req Request) (RiskAssessment, error) {
	started := time.Now()

	patientID := strings.TrimSpace(req.PatientID)
	if patientID == "" {
		return RiskAssessment{}, apperrors.Wrap("invalid_input", "patient_id is required", nil)
	}

	readings := req.Readings
	if len(readings) == 0 && s.source != nil {
		fetched, err := s.source.RecentReadings(ctx, patientID, s.cfg.Window)
		if err != nil {
			return RiskAssessment{}, apperrors.Wrap("readings_source_error", "failed to load recent readings", err)
		}
		readings = fetched
	}

	view, err := normalize(readings, s.cfg.Window, s.rules)
	if err != nil {
		return RiskAssessment{}, err
	}

	key := batchDigest(s.rules.Version, s.cfg, readings)
	if s.store != nil {
		cached, ok, cacheErr := s.store.Get(ctx, key)
		if cacheErr != nil {
			s.logger.Warn("assessment cache lookup failed", "error", cacheErr)
		} else if ok {
			s.logger.Info("assessment served from cache", "patient_id", patientID, "digest", key)
			return cached, nil
		}
	}

	trends := observeTrends(view, s.rules)
	score, features := evaluate(view, trends, s.rules)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return RiskAssessment{}, apperrors.Wrap("internal_error", "rule evaluation produced a non-finite score", nil)
	}

	level := s.rules.levelFor(score)
	if len(features) == 0 {
		// No triggers: force the routine tier so floating-point residue can
		// never promote an all-normal batch.
		score = 0
		level = LevelRoutine
	}

	top := rankFeatures(features, s.cfg.TopFeatures)
	tags := make([]string, 0, len(top))
	for _, f := range top {
		tags = append(tags, f.Tag)
	}

	result := RiskAssessment{
		Version:     s.rules.Version,
		RiskLevel:   level,
		Score:       score,
		TopFeatures: tags,
		Explanation: renderExplanation(level, top, s.rules),
	}

	s.logger.Info("assessment computed", "patient_id", patientID, "stats", metrics.Evaluation{
		Readings:  len(readings),
		Triggered: len(features),
		Ranked:    len(top),
		Score:     score,
		Level:     string(level),
		ElapsedMS: time.Since(started).Milliseconds(),
	})

	if s.store != nil {
		if saveErr := s.store.Save(ctx, key, result, s.cfg.CacheTTL); saveErr != nil {
			s.logger.Warn("assessment cache save failed", "error", saveErr)
		}
	}
	return result, nil
}

func (s *service) Status() ServiceStatus {
	return ServiceStatus{
		Service: ServiceName,
		Model:   "rule_based_vitals",
		Version: s.rules.Version,
		Status:  "ok",
	}
}

// batchDigest is a canonical fingerprint of everything the result depends
// on: rule version, engine config, and the reading batch. Readings hash
// identically under any permutation and timezone offset; replicas sharing a
// store but running different top-feature limits or windows get distinct
// keys and never cross-serve each other's entries.
func batchDigest(version string, cfg Config, readings []VitalReading) string {
	encoded := make([]string, 0, len(readings))
	for _, r := range readings {
		r.Timestamp = r.Timestamp.UTC()
		payload, err := json.Marshal(r)
		if err != nil {
			continue
		}
		encoded = append(encoded, string(payload))
	}
	sort.Strings(encoded)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s", version, cfg.TopFeatures, cfg.Window)
	for _, e := range encoded {
		h.Write([]byte{0})
		h.Write([]byte(e))
	}
	return hex.EncodeToString(h.Sum(nil))
}
