package assessment

import (
	"fmt"
	"sort"
	"strings"
)

// rankFeatures orders triggered features by weight descending, then by rule
// class (critical > abnormal > trend > multi_abnormal), then by vital
// declaration order, and keeps at most max of them. The explicit total order
// keeps the ranking deterministic regardless of trigger insertion order.
func rankFeatures(features []TriggeredFeature, max int) []TriggeredFeature {
	ranked := make([]TriggeredFeature, len(features))
	copy(ranked, features)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		if ranked[i].Class != ranked[j].Class {
			return ranked[i].Class < ranked[j].Class
		}
		return vitalRank(ranked[i].Vital) < vitalRank(ranked[j].Vital)
	})
	if max >= 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

func vitalRank(v Vital) int {
	for i, candidate := range vitalOrder {
		if candidate == v {
			return i
		}
	}
	// multi_abnormal carries no vital and sorts after every vital-bound tag.
	return len(vitalOrder)
}

// renderExplanation builds the single advisory sentence shown to clinicians.
//
// Phrasing is deliberately hedged ("may indicate") and never prescriptive:
// the engine is advisory and must not issue clinical directives. With no
// triggered features it reports normal limits.
func renderExplanation(level RiskLevel, top []TriggeredFeature, rs RuleSet) string {
	if len(top) == 0 {
		return "All reported vitals are within normal limits; findings may warrant routine monitoring only."
	}

	fragments := make([]string, 0, len(top))
	for _, f := range top {
		fragments = append(fragments, featureFragment(f, rs))
	}
	joined := strings.Join(fragments, "; ")
	return strings.ToUpper(joined[:1]) + joined[1:] + "; " + closingClause(level)
}

func featureFragment(f TriggeredFeature, rs RuleSet) string {
	name := vitalNames[f.Vital]
	switch f.Class {
	case ClassCritical:
		return fmt.Sprintf("%s of %s is far outside the expected range and may indicate a critical condition",
			name, formatValue(f.Vital, f.Value))
	case ClassAbnormal:
		rng := rs.Ranges[f.Vital]
		return fmt.Sprintf("%s of %s is outside the normal range of %g-%g and may indicate an abnormality",
			name, formatValue(f.Vital, f.Value), rng.Low, rng.High)
	case ClassTrend:
		return fmt.Sprintf("%s appears to be %s over the recent window, which may indicate an evolving change",
			name, f.Direction)
	case ClassMulti:
		return fmt.Sprintf("%d vitals are abnormal at the same time, which may indicate compounding risk",
			int(f.Value))
	}
	return ""
}

func formatValue(v Vital, value float64) string {
	unit := vitalUnits[v]
	if strings.HasPrefix(unit, "%") || strings.HasPrefix(unit, "/") {
		return fmt.Sprintf("%g%s", value, unit)
	}
	return fmt.Sprintf("%g %s", value, unit)
}

func closingClause(level RiskLevel) string {
	switch level {
	case LevelHighConcern:
		return "overall findings may warrant prompt clinical review."
	case LevelNeedsAttention:
		return "overall findings may warrant closer attention."
	default:
		return "overall findings may warrant routine monitoring."
	}
}
