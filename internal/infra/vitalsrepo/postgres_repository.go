package vitalsrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalsense/riskmodel/internal/domain/assessment"
	"github.com/vitalsense/riskmodel/pkg/util"
)

// PostgresRepository implements assessment.ReadingSource using pgx. It reads
// the routing layer's vitals table; this service never writes to it.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: util.NowUTC}
}

// RecentReadings fetches the patient's readings inside the lookback window,
// oldest first.
func (r *PostgresRepository) RecentReadings(ctx context.Context, patientID string, window time.Duration) ([]assessment.VitalReading, error) {
	since := r.now().Add(-window)
	rows, err := r.pool.Query(ctx, `
		SELECT taken_at, heart_rate, systolic_bp, diastolic_bp, spo2, respiratory_rate, temperature, pain
		FROM vital_readings
		WHERE patient_id = $1 AND taken_at >= $2
		ORDER BY taken_at ASC
	`, patientID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.VitalReading
	for rows.Next() {
		var (
			reading                            assessment.VitalReading
			hr, sys, dia, spo2, rr, temp, pain sql.NullFloat64
		)
		if err := rows.Scan(&reading.Timestamp, &hr, &sys, &dia, &spo2, &rr, &temp, &pain); err != nil {
			return nil, err
		}
		reading.HeartRate = nullable(hr)
		reading.SystolicBP = nullable(sys)
		reading.DiastolicBP = nullable(dia)
		reading.SpO2 = nullable(spo2)
		reading.RespiratoryRate = nullable(rr)
		reading.Temperature = nullable(temp)
		reading.Pain = nullable(pain)
		out = append(out, reading)
	}
	return out, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}

var _ assessment.ReadingSource = (*PostgresRepository)(nil)
