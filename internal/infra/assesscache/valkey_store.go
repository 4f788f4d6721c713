package assesscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
)

// ValkeyStore caches assessments in a Valkey-compatible database. Entries are
// safe to share between replicas because results are deterministic for a
// given batch digest.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "assessment"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (assessment.RiskAssessment, bool, error) {
	if key == "" {
		return assessment.RiskAssessment{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return assessment.RiskAssessment{}, false, nil
		}
		return assessment.RiskAssessment{}, false, err
	}
	var result assessment.RiskAssessment
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return assessment.RiskAssessment{}, false, err
	}
	return result, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, result assessment.RiskAssessment, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(digest string) string {
	return s.prefix + ":" + digest
}

var _ assessment.Store = (*ValkeyStore)(nil)
