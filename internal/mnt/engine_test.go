package mnt

import (
	"reflect"
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(kb.Builtin())
}

func diagnosisCtx(ids ...string) domain.DiagnosisContext {
	ctx := domain.DiagnosisContext{AssessmentID: "a-1"}
	for _, id := range ids {
		ctx.Diagnoses = append(ctx.Diagnoses, domain.Diagnosis{ID: id, SeverityScore: 7.0})
	}
	return ctx
}

func TestProcess_DiabetesWithExcessCarbs(t *testing.T) {
	eng := newTestEngine(t)

	ctx, err := eng.Process(diagnosisCtx("type_2_diabetes", "excess_carbohydrate_intake"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Both the critical diabetes rule (max 50) and the high excess-carb
	// rule (max 55) constrain carbohydrates; critical wins.
	carbs, ok := ctx.MacroConstraints["carbohydrates_percent"]
	if !ok {
		t.Fatal("carbohydrates_percent constraint missing")
	}
	if carbs.Max == nil || *carbs.Max != 50 {
		t.Errorf("carb max = %v, want 50", carbs.Max)
	}

	fiber, ok := ctx.MicroConstraints["fiber_g"]
	if !ok || fiber.Min == nil || *fiber.Min != 30 {
		t.Errorf("fiber_g = %+v, want min 30", fiber)
	}

	// refined_sugars from the excess-carb rule must collapse into
	// refined_sugar from the diabetes rule.
	want := []string{"refined_sugar", "sugary_beverages"}
	if !reflect.DeepEqual(ctx.FoodExclusions, want) {
		t.Errorf("exclusions = %v, want %v", ctx.FoodExclusions, want)
	}

	wantRules := []string{"mnt_t2d_carb_control", "mnt_glycemic_fiber", "mnt_excess_carb_cap"}
	if !reflect.DeepEqual(ctx.RuleIDsUsed, wantRules) {
		t.Errorf("rule ids = %v, want %v", ctx.RuleIDsUsed, wantRules)
	}
}

func TestProcess_InactiveRuleSkipped(t *testing.T) {
	eng := newTestEngine(t)

	ctx, err := eng.Process(diagnosisCtx("type_2_diabetes"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for _, id := range ctx.RuleIDsUsed {
		if id == "mnt_t2d_legacy_exchange" {
			t.Error("inactive rule contributed to the plan")
		}
	}
	// The retired rule capped carbs at 45; the active cap is 50.
	if carbs := ctx.MacroConstraints["carbohydrates_percent"]; carbs.Max == nil || *carbs.Max != 50 {
		t.Errorf("carb max = %v, want 50", carbs.Max)
	}
}

func TestProcess_ZeroSeverityIgnored(t *testing.T) {
	eng := newTestEngine(t)

	ctx, err := eng.Process(domain.DiagnosisContext{
		AssessmentID: "a-1",
		Diagnoses:    []domain.Diagnosis{{ID: "hypertension", SeverityScore: 0}},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(ctx.RuleIDsUsed) != 0 {
		t.Errorf("rule ids = %v, want none", ctx.RuleIDsUsed)
	}
	if len(ctx.MicroConstraints) != 0 {
		t.Errorf("micro constraints = %v, want none", ctx.MicroConstraints)
	}
}

func TestProcess_DeficitAndSodium(t *testing.T) {
	eng := newTestEngine(t)

	ctx, err := eng.Process(diagnosisCtx("obesity", "hypertension"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	cal := ctx.MacroConstraints["calories"]
	if cal.DeficitPercent == nil || *cal.DeficitPercent != 20 {
		t.Errorf("deficit = %v, want 20", cal.DeficitPercent)
	}
	sodium := ctx.MicroConstraints["sodium_mg"]
	if sodium.Max == nil || *sodium.Max != 1500 {
		t.Errorf("sodium max = %v, want 1500", sodium.Max)
	}

	want := []string{"fried_foods", "papad", "pickled_foods", "refined_sugar"}
	if !reflect.DeepEqual(ctx.FoodExclusions, want) {
		t.Errorf("exclusions = %v, want %v", ctx.FoodExclusions, want)
	}
}

func TestProcess_SamePriorityMoreRestrictiveWins(t *testing.T) {
	k := kb.New()
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "rule_loose",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"cond_a"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Min: domain.Float(30), Max: domain.Float(60)},
			"calories":              {DeficitPercent: domain.Float(10)},
		},
	})
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "rule_tight",
		Status:    "active",
		Priority:  "high",
		AppliesTo: []string{"cond_b"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Min: domain.Float(40), Max: domain.Float(50)},
			"calories":              {DeficitPercent: domain.Float(15)},
		},
	})

	ctx, err := NewEngine(k).Process(diagnosisCtx("cond_a", "cond_b"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	carbs := ctx.MacroConstraints["carbohydrates_percent"]
	if carbs.Min == nil || *carbs.Min != 40 {
		t.Errorf("carb min = %v, want 40 (higher min is more restrictive)", carbs.Min)
	}
	if carbs.Max == nil || *carbs.Max != 50 {
		t.Errorf("carb max = %v, want 50 (lower max is more restrictive)", carbs.Max)
	}
	cal := ctx.MacroConstraints["calories"]
	if cal.DeficitPercent == nil || *cal.DeficitPercent != 15 {
		t.Errorf("deficit = %v, want 15 (larger deficit is more restrictive)", cal.DeficitPercent)
	}
}

func TestProcess_HigherPriorityKeepsLooserBound(t *testing.T) {
	k := kb.New()
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "rule_critical",
		Status:    "active",
		Priority:  "critical",
		AppliesTo: []string{"cond_a"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Max: domain.Float(55)},
		},
	})
	k.AddMNTRule(domain.MNTRule{
		RuleID:    "rule_medium",
		Status:    "active",
		Priority:  "medium",
		AppliesTo: []string{"cond_a"},
		MacroConstraints: map[string]domain.Bound{
			"carbohydrates_percent": {Max: domain.Float(40)},
		},
	})

	ctx, err := NewEngine(k).Process(diagnosisCtx("cond_a"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Priority beats restrictiveness: the medium rule's tighter cap must
	// not override the critical rule's.
	carbs := ctx.MacroConstraints["carbohydrates_percent"]
	if carbs.Max == nil || *carbs.Max != 55 {
		t.Errorf("carb max = %v, want 55", carbs.Max)
	}
}

func TestNormalizeExclusion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"refined_sugars", "refined_sugar"},
		{"Refined_Sugar", "refined_sugar"},
		{" sugar ", "refined_sugar"},
		{"deep_fried_foods", "fried_foods"},
		{"pickled_foods", "pickled_foods"},
	}
	for _, tt := range tests {
		if got := normalizeExclusion(tt.in); got != tt.want {
			t.Errorf("normalizeExclusion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
