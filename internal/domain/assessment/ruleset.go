package assessment

// RuleVersion identifies the published rule table. Bumped only when ranges,
// weights, or thresholds change.
const RuleVersion = "1.0.0"

// NormalRange bounds a vital. Values outside [Low, High] are abnormal; values
// outside [CriticalLow, CriticalHigh] are critical.
type NormalRange struct {
	Low          float64
	High         float64
	CriticalLow  float64
	CriticalHigh float64
}

// DomainBound is the physiologically plausible interval for a vital. Values
// outside it are rejected as malformed input, not scored.
type DomainBound struct {
	Min float64
	Max float64
}

// RuleWeights are the additive contributions of each rule class.
type RuleWeights struct {
	Critical      float64
	Abnormal      float64
	TrendFlagged  float64
	TrendAlone    float64
	MultiAbnormal float64
}

// TierThresholds map the clamped score onto a discrete risk level. Boundaries
// are inclusive toward the higher tier.
type TierThresholds struct {
	NeedsAttention float64
	HighConcern    float64
}

// RuleSet is the immutable, versioned configuration driving the engine. All
// scoring behavior flows from this table so individual rules can be unit
// tested and the whole table versioned as one artifact.
type RuleSet struct {
	Version         string
	Ranges          map[Vital]NormalRange
	DomainBounds    map[Vital]DomainBound
	NoiseThresholds map[Vital]float64
	Weights         RuleWeights
	Tiers           TierThresholds
	// MultiAbnormalMin is how many distinct flagged vitals it takes to fire
	// the compounding-risk bonus.
	MultiAbnormalMin int
}

// DefaultRuleSet returns the canonical published rule table.
//
// Normal ranges follow the compatibility table; critical bands are the
// canonical choices documented in DESIGN.md. Trend noise thresholds are
// per-vital because physiologic scales differ: a 5 bpm heart-rate wobble is
// noise, a 0.5 °C temperature move is not.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Version: RuleVersion,
		Ranges: map[Vital]NormalRange{
			VitalHeartRate:       {Low: 60, High: 100, CriticalLow: 40, CriticalHigh: 130},
			VitalSystolicBP:      {Low: 90, High: 140, CriticalLow: 70, CriticalHigh: 180},
			VitalDiastolicBP:     {Low: 60, High: 90, CriticalLow: 40, CriticalHigh: 120},
			VitalSpO2:            {Low: 95, High: 100, CriticalLow: 88, CriticalHigh: 100},
			VitalRespiratoryRate: {Low: 12, High: 20, CriticalLow: 8, CriticalHigh: 30},
			VitalTemperature:     {Low: 36.1, High: 37.2, CriticalLow: 35.0, CriticalHigh: 39.0},
			VitalPain:            {Low: 0, High: 3, CriticalLow: 0, CriticalHigh: 8},
		},
		DomainBounds: map[Vital]DomainBound{
			VitalHeartRate:       {Min: 1, Max: 300},
			VitalSystolicBP:      {Min: 1, Max: 300},
			VitalDiastolicBP:     {Min: 1, Max: 250},
			VitalSpO2:            {Min: 1, Max: 100},
			VitalRespiratoryRate: {Min: 1, Max: 80},
			VitalTemperature:     {Min: 25, Max: 45},
			VitalPain:            {Min: 0, Max: 10},
		},
		NoiseThresholds: map[Vital]float64{
			VitalHeartRate:       10,
			VitalSystolicBP:      10,
			VitalDiastolicBP:     8,
			VitalSpO2:            2,
			VitalRespiratoryRate: 3,
			VitalTemperature:     0.3,
			VitalPain:            2,
		},
		// A lone critical value must land in the needs_attention tier on its
		// own, so its weight sits exactly on the tier boundary.
		Weights: RuleWeights{
			Critical:      0.40,
			Abnormal:      0.15,
			TrendFlagged:  0.10,
			TrendAlone:    0.05,
			MultiAbnormal: 0.10,
		},
		Tiers: TierThresholds{
			NeedsAttention: 0.4,
			HighConcern:    0.7,
		},
		MultiAbnormalMin: 3,
	}
}

// levelFor maps a clamped score onto its tier.
func (rs RuleSet) levelFor(score float64) RiskLevel {
	switch {
	case score >= rs.Tiers.HighConcern:
		return LevelHighConcern
	case score >= rs.Tiers.NeedsAttention:
		return LevelNeedsAttention
	default:
		return LevelRoutine
	}
}

func (nr NormalRange) isCritical(value float64) bool {
	return value < nr.CriticalLow || value > nr.CriticalHigh
}

func (nr NormalRange) isAbnormal(value float64) bool {
	return value < nr.Low || value > nr.High
}

func (b DomainBound) contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}
