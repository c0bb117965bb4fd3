// Package mnt translates diagnoses into merged medical nutrition therapy
// constraints. Rules are declarative knowledge-base data; the engine only
// selects, orders, and merges them. Conflicts on the same constraint key
// resolve by priority, then by restrictiveness. Food exclusions are always
// unioned: exclusions are additive for safety, never intersected.
package mnt

import (
	"sort"
	"strings"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

// priorityWeight orders rule priorities. critical > high > medium > low.
var priorityWeight = map[string]int{
	"critical": 4,
	"high":     3,
	"medium":   2,
	"low":      1,
}

// exclusionAliases canonicalizes exclusion tags that appear in rule data
// under more than one spelling.
var exclusionAliases = map[string]string{
	"refined_sugars":   "refined_sugar",
	"sugar":            "refined_sugar",
	"deep_fried_foods": "fried_foods",
}

// Engine is the MNT engine.
type Engine struct {
	KB *kb.KB
}

// NewEngine creates an MNT engine over the given knowledge base.
func NewEngine(k *kb.KB) *Engine {
	return &Engine{KB: k}
}

// Process selects the active rules applicable to the diagnoses and merges
// them into one constraint set. Every contributing rule ID is recorded in
// RuleIDsUsed for per-constraint provenance.
func (e *Engine) Process(diagnosis domain.DiagnosisContext) (domain.MNTContext, error) {
	rules := e.selectRules(diagnosis)

	// Higher priority first; selection order breaks ties so merging is
	// deterministic.
	sort.SliceStable(rules, func(i, j int) bool {
		return priorityWeight[rules[i].Priority] > priorityWeight[rules[j].Priority]
	})

	ctx := domain.MNTContext{
		AssessmentID:     diagnosis.AssessmentID,
		MacroConstraints: make(map[string]domain.Bound),
		MicroConstraints: make(map[string]domain.Bound),
		RuleIDsUsed:      []string{},
	}

	exclusions := make(map[string]bool)
	contraindications := make(map[string]bool)
	macroPriority := make(map[string]int)
	microPriority := make(map[string]int)

	for _, rule := range rules {
		weight := priorityWeight[rule.Priority]
		for key, bound := range rule.MacroConstraints {
			mergeBound(ctx.MacroConstraints, macroPriority, key, bound, weight)
		}
		for key, bound := range rule.MicroConstraints {
			mergeBound(ctx.MicroConstraints, microPriority, key, bound, weight)
		}
		for _, tag := range rule.FoodExclusions {
			exclusions[normalizeExclusion(tag)] = true
		}
		for _, tag := range rule.Contraindications {
			contraindications[tag] = true
		}
		ctx.RuleIDsUsed = append(ctx.RuleIDsUsed, rule.RuleID)
	}

	// Required list fields serialize as [], never null.
	ctx.FoodExclusions = append([]string{}, sortedKeys(exclusions)...)
	ctx.Contraindications = sortedKeys(contraindications)
	return ctx, nil
}

// selectRules walks the knowledge base in order and keeps each active rule
// that applies to at least one diagnosis with a positive severity score.
func (e *Engine) selectRules(diagnosis domain.DiagnosisContext) []domain.MNTRule {
	active := make(map[string]bool)
	for _, d := range diagnosis.Diagnoses {
		if d.SeverityScore > 0 {
			active[d.ID] = true
		}
	}

	var rules []domain.MNTRule
	seen := make(map[string]bool)
	for _, rule := range e.KB.MNTRules() {
		if rule.Status != "active" || seen[rule.RuleID] {
			continue
		}
		for _, id := range rule.AppliesTo {
			if active[id] {
				rules = append(rules, rule)
				seen[rule.RuleID] = true
				break
			}
		}
	}
	return rules
}

// mergeBound merges one rule's bound into the accumulated constraint for a
// key. Rules arrive in descending priority order, so an incoming bound can
// only override a field when it comes from the same priority and is more
// restrictive: lower max, higher min, larger deficit/surplus.
func mergeBound(acc map[string]domain.Bound, prio map[string]int, key string, in domain.Bound, weight int) {
	current, exists := acc[key]
	if !exists {
		acc[key] = in
		prio[key] = weight
		return
	}

	samePriority := prio[key] == weight

	if in.Max != nil && (current.Max == nil || (samePriority && *in.Max < *current.Max)) {
		current.Max = in.Max
	}
	if in.Min != nil && (current.Min == nil || (samePriority && *in.Min > *current.Min)) {
		current.Min = in.Min
	}
	if in.DeficitPercent != nil && (current.DeficitPercent == nil || (samePriority && *in.DeficitPercent > *current.DeficitPercent)) {
		current.DeficitPercent = in.DeficitPercent
	}
	if in.SurplusPercent != nil && (current.SurplusPercent == nil || (samePriority && *in.SurplusPercent > *current.SurplusPercent)) {
		current.SurplusPercent = in.SurplusPercent
	}
	acc[key] = current
}

func normalizeExclusion(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := exclusionAliases[tag]; ok {
		return canonical
	}
	return tag
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
