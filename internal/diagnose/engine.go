// Package diagnose turns an intake snapshot into medical and nutrition
// diagnoses by comparing metrics against the knowledge base's ordered
// threshold bands. There is no inference: a condition is emitted only when
// a declared band fired, and every emission carries the evidence records
// that explain it.
package diagnose

import (
	"fmt"
	"sort"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

// severityBase maps a band level to its base score. The distance the
// observed value sits into the band adds up to 2.0 more, capped at 10.
var severityBase = map[string]float64{
	"mild":     5.0,
	"moderate": 7.0,
	"severe":   9.0,
}

var severityRank = map[string]int{
	"mild":     1,
	"moderate": 2,
	"severe":   3,
}

// suppressedBy drops a subsumed diagnosis when its stronger sibling fired.
var suppressedBy = map[string]string{
	"prediabetes": "type_2_diabetes",
	"overweight":  "obesity",
}

// Engine is the diagnosis engine.
type Engine struct {
	KB *kb.KB
}

// NewEngine creates a diagnosis engine over the given knowledge base.
func NewEngine(k *kb.KB) *Engine {
	return &Engine{KB: k}
}

// Diagnose evaluates every condition rule against the intake snapshot and
// returns the emitted diagnoses sorted by severity score, highest first.
func (e *Engine) Diagnose(intake domain.IntakeContext) (domain.DiagnosisContext, error) {
	metrics := collectMetrics(intake)

	var diagnoses []domain.Diagnosis
	for _, rule := range e.KB.Conditions() {
		if !eligible(rule.Eligibility, intake.Profile) {
			continue
		}
		if d, ok := evaluateCondition(rule, metrics); ok {
			diagnoses = append(diagnoses, d)
		}
	}

	diagnoses = applyHierarchy(diagnoses)

	sort.SliceStable(diagnoses, func(i, j int) bool {
		return diagnoses[i].SeverityScore > diagnoses[j].SeverityScore
	})

	if diagnoses == nil {
		// The diagnoses list serializes as [], never null.
		diagnoses = []domain.Diagnosis{}
	}

	return domain.DiagnosisContext{
		AssessmentID: intake.AssessmentID,
		Diagnoses:    diagnoses,
	}, nil
}

// collectMetrics merges normalized labs with the metrics derived from
// anthropometry and diet history. Zero-valued diet fields are treated as
// not reported.
func collectMetrics(intake domain.IntakeContext) map[string]float64 {
	metrics := normalizeLabs(intake.Labs)

	if intake.Profile.HeightCM > 0 && intake.Profile.WeightKG > 0 {
		heightM := intake.Profile.HeightCM / 100
		metrics["bmi"] = intake.Profile.WeightKG / (heightM * heightM)
	}
	if intake.DietHistory.CarbPercent > 0 {
		metrics["carb_percent"] = intake.DietHistory.CarbPercent
	}
	if intake.DietHistory.FiberG > 0 {
		metrics["fiber_g"] = intake.DietHistory.FiberG
	}
	if intake.DietHistory.ProteinGPerKG > 0 {
		metrics["protein_g_per_kg"] = intake.DietHistory.ProteinGPerKG
	}
	return metrics
}

func eligible(el domain.Eligibility, p domain.Profile) bool {
	if len(el.Genders) > 0 {
		found := false
		for _, g := range el.Genders {
			if g == p.Gender {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if el.MinAge != nil && p.Age < *el.MinAge {
		return false
	}
	if el.MaxAge != nil && p.Age > *el.MaxAge {
		return false
	}
	if el.ExcludePregnant && p.Pregnant {
		return false
	}
	return true
}

// evaluateCondition checks every parameter of a rule. The condition fires
// when at least one parameter crosses a band; the condition's severity is
// the highest matched band across parameters.
func evaluateCondition(rule domain.ConditionRule, metrics map[string]float64) (domain.Diagnosis, bool) {
	params := make([]string, 0, len(rule.Bands))
	for p := range rule.Bands {
		params = append(params, p)
	}
	sort.Strings(params)

	var (
		evidence  []domain.Evidence
		severity  string
		bestScore float64
	)

	for _, param := range params {
		value, ok := metrics[param]
		if !ok {
			continue
		}
		band, ok := matchBand(rule.Bands[param], value)
		if !ok {
			continue
		}

		evidence = append(evidence, domain.Evidence{
			Parameter: param,
			Value:     value,
			BandMin:   band.Min,
			BandMax:   band.Max,
			Severity:  band.Level,
			Unit:      band.Unit,
			Source:    fmt.Sprintf("kb:%s/%s", rule.ConditionID, param),
		})

		score := severityScore(band, value)
		if severityRank[band.Level] > severityRank[severity] || (band.Level == severity && score > bestScore) {
			severity = band.Level
			bestScore = score
		}
	}

	if len(evidence) == 0 {
		return domain.Diagnosis{}, false
	}

	return domain.Diagnosis{
		ID:            rule.ConditionID,
		Type:          rule.Type,
		Severity:      severity,
		SeverityScore: bestScore,
		Evidence:      evidence,
	}, true
}

// matchBand finds the band a value falls into. Bands are half-open:
// min <= value < max, with nil bounds open.
func matchBand(bands []domain.SeverityBand, value float64) (domain.SeverityBand, bool) {
	for _, band := range bands {
		if band.Min != nil && value < *band.Min {
			continue
		}
		if band.Max != nil && value >= *band.Max {
			continue
		}
		return band, true
	}
	return domain.SeverityBand{}, false
}

// severityScore is the band's base score plus a distance adjustment: how
// far into the band the value sits, worth up to 2.0, total capped at 10.
func severityScore(band domain.SeverityBand, value float64) float64 {
	score := severityBase[band.Level]

	switch {
	case band.Min != nil && band.Max != nil:
		width := *band.Max - *band.Min
		if width > 0 {
			score += 2.0 * (value - *band.Min) / width
		}
	case band.Min != nil:
		// Open-ended top band: anything past the threshold is maximal.
		score += 2.0
	case band.Max != nil:
		// Open-ended bottom band (deficiency): further below is worse.
		if *band.Max > 0 {
			score += 2.0 * (*band.Max - value) / *band.Max
		}
	}

	if score > 10 {
		score = 10
	}
	return score
}

func applyHierarchy(diagnoses []domain.Diagnosis) []domain.Diagnosis {
	present := make(map[string]bool, len(diagnoses))
	for _, d := range diagnoses {
		present[d.ID] = true
	}

	out := diagnoses[:0]
	for _, d := range diagnoses {
		if stronger, ok := suppressedBy[d.ID]; ok && present[stronger] {
			continue
		}
		out = append(out, d)
	}
	return out
}
