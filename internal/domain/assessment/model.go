package assessment

import "time"

// Vital identifies one of the vital signs the engine knows how to score.
type Vital string

const (
	VitalHeartRate       Vital = "heart_rate"
	VitalSystolicBP      Vital = "systolic_bp"
	VitalDiastolicBP     Vital = "diastolic_bp"
	VitalSpO2            Vital = "spo2"
	VitalRespiratoryRate Vital = "respiratory_rate"
	VitalTemperature     Vital = "temperature"
	VitalPain            Vital = "pain"
)

// vitalOrder is the documented total order over vitals. Feature tie-breaks
// and score accumulation always iterate in this order so identical input
// batches produce identical output.
var vitalOrder = []Vital{
	VitalHeartRate,
	VitalSystolicBP,
	VitalDiastolicBP,
	VitalSpO2,
	VitalRespiratoryRate,
	VitalTemperature,
	VitalPain,
}

var vitalNames = map[Vital]string{
	VitalHeartRate:       "heart rate",
	VitalSystolicBP:      "systolic blood pressure",
	VitalDiastolicBP:     "diastolic blood pressure",
	VitalSpO2:            "oxygen saturation",
	VitalRespiratoryRate: "respiratory rate",
	VitalTemperature:     "temperature",
	VitalPain:            "reported pain",
}

var vitalUnits = map[Vital]string{
	VitalHeartRate:       "bpm",
	VitalSystolicBP:      "mmHg",
	VitalDiastolicBP:     "mmHg",
	VitalSpO2:            "%",
	VitalRespiratoryRate: "breaths/min",
	VitalTemperature:     "°C",
	VitalPain:            "/10",
}

// VitalReading is a single timestamped set of measurements. Every vital field
// is optional; a nil field means the vital was not measured and is skipped by
// the engine rather than defaulted.
type VitalReading struct {
	Timestamp       time.Time `json:"timestamp"`
	HeartRate       *float64  `json:"heart_rate,omitempty"`
	SystolicBP      *float64  `json:"systolic_bp,omitempty"`
	DiastolicBP     *float64  `json:"diastolic_bp,omitempty"`
	SpO2            *float64  `json:"spo2,omitempty"`
	RespiratoryRate *float64  `json:"respiratory_rate,omitempty"`
	Temperature     *float64  `json:"temperature,omitempty"`
	Pain            *float64  `json:"pain,omitempty"`
}

// value returns the measurement for the given vital, or nil when absent.
func (r VitalReading) value(v Vital) *float64 {
	switch v {
	case VitalHeartRate:
		return r.HeartRate
	case VitalSystolicBP:
		return r.SystolicBP
	case VitalDiastolicBP:
		return r.DiastolicBP
	case VitalSpO2:
		return r.SpO2
	case VitalRespiratoryRate:
		return r.RespiratoryRate
	case VitalTemperature:
		return r.Temperature
	case VitalPain:
		return r.Pain
	}
	return nil
}

func (r VitalReading) hasAnyVital() bool {
	for _, v := range vitalOrder {
		if r.value(v) != nil {
			return true
		}
	}
	return false
}

// Direction is the short-window trend of a vital.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// TrendObservation captures the direction of one vital across the analysis
// window together with the endpoint values it was derived from.
type TrendObservation struct {
	Vital     Vital
	Direction Direction
	First     float64
	Last      float64
	Samples   int
}

// RuleClass orders the four rule families for tie-breaking: lower values win
// when two triggered features carry the same weight.
type RuleClass int

const (
	ClassCritical RuleClass = iota
	ClassAbnormal
	ClassTrend
	ClassMulti
)

// TriggeredFeature is one fired rule: a stable tag, the weight it added to the
// raw score, and enough context to render an explanation fragment.
type TriggeredFeature struct {
	Tag       string
	Class     RuleClass
	Vital     Vital
	Weight    float64
	Value     float64
	Direction Direction
}

// RiskLevel is the discrete tier derived from the clamped score.
type RiskLevel string

const (
	LevelRoutine        RiskLevel = "routine"
	LevelNeedsAttention RiskLevel = "needs_attention"
	LevelHighConcern    RiskLevel = "high_concern"
)

// RiskAssessment is the wire shape returned to callers. Given an identical
// reading batch it is byte-identical across calls.
type RiskAssessment struct {
	Version     string    `json:"version"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Score       float64   `json:"score"`
	TopFeatures []string  `json:"top_features"`
	Explanation string    `json:"explanation"`
}

// Request is the payload accepted by the assessment service.
type Request struct {
	PatientID string         `json:"patient_id"`
	Readings  []VitalReading `json:"readings"`
}

// ServiceStatus answers the liveness probe.
type ServiceStatus struct {
	Service string `json:"service"`
	Model   string `json:"model"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
