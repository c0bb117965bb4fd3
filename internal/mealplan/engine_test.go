package mealplan

import (
	"math"
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

func baseIntake() domain.IntakeContext {
	return domain.IntakeContext{
		AssessmentID: "a-1",
		Schedule:     domain.Schedule{WakeTime: "06:30", SleepTime: "22:30"},
	}
}

func targetWithCalories(c float64) domain.TargetContext {
	return domain.TargetContext{CaloriesTarget: c}
}

func TestBuild_CalorieDrivenCount(t *testing.T) {
	ctx, err := NewEngine().Build(baseIntake(), targetWithCalories(2633))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ctx.MealCount != 5 || len(ctx.Meals) != 5 {
		t.Fatalf("meal count = %d (%d meals), want 5", ctx.MealCount, len(ctx.Meals))
	}

	wantNames := []string{"breakfast", "snack_1", "lunch", "snack_2", "dinner"}
	for i, meal := range ctx.Meals {
		if meal.Name != wantNames[i] {
			t.Errorf("meal[%d] = %q, want %q", i, meal.Name, wantNames[i])
		}
	}

	sum := 0.0
	for _, meal := range ctx.Meals {
		sum += meal.EnergyWeight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum = %f, want 1.0", sum)
	}

	dinner := ctx.Meals[4]
	if dinner.Window.End != "19:30" {
		t.Errorf("dinner ends %s, want 19:30 (three hours before sleep)", dinner.Window.End)
	}
}

func TestBuild_ExplicitPreferenceWins(t *testing.T) {
	tests := []struct {
		preferred int
		want      int
	}{
		{3, 3},
		{1, 2}, // clamped up
		{9, 6}, // clamped down
	}
	for _, tt := range tests {
		intake := baseIntake()
		intake.Schedule.PreferredMealCount = tt.preferred
		ctx, err := NewEngine().Build(intake, targetWithCalories(2633))
		if err != nil {
			t.Fatalf("Build(preferred=%d): %v", tt.preferred, err)
		}
		if ctx.MealCount != tt.want {
			t.Errorf("preferred %d: count = %d, want %d", tt.preferred, ctx.MealCount, tt.want)
		}
	}
}

func TestBuild_FastingCompressesDay(t *testing.T) {
	intake := baseIntake()
	intake.Schedule.FastingWindowHours = 16

	ctx, err := NewEngine().Build(intake, targetWithCalories(2633))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ctx.MealCount != 2 {
		t.Errorf("count = %d, want 2 for a 16h fast", ctx.MealCount)
	}
	if ctx.Meals[0].Name != "breakfast" || ctx.Meals[1].Name != "dinner" {
		t.Errorf("meals = %s, %s; want breakfast, dinner", ctx.Meals[0].Name, ctx.Meals[1].Name)
	}
}

func TestBuild_NightShiftSpansMidnight(t *testing.T) {
	intake := baseIntake()
	intake.Schedule = domain.Schedule{WakeTime: "18:00", SleepTime: "04:00"}

	ctx, err := NewEngine().Build(intake, targetWithCalories(1500))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ctx.MealCount != 3 {
		t.Fatalf("count = %d, want 3", ctx.MealCount)
	}
	dinner := ctx.Meals[2]
	if dinner.Window.Start != "00:15" || dinner.Window.End != "01:00" {
		t.Errorf("dinner window = %+v, want 00:15-01:00 past midnight", dinner.Window)
	}
}

func TestBuild_EatingWindowTooShort(t *testing.T) {
	intake := baseIntake()
	intake.Schedule = domain.Schedule{WakeTime: "06:00", SleepTime: "10:00"}

	_, err := NewEngine().Build(intake, targetWithCalories(1500))
	engErr, ok := err.(*domain.EngineError)
	if !ok || engErr.Code != domain.ErrDinnerTooLate.Code {
		t.Errorf("err = %v, want dinner-too-late", err)
	}
}

func TestBuild_TightWindowCompressesMeals(t *testing.T) {
	intake := baseIntake()
	intake.Schedule = domain.Schedule{WakeTime: "08:00", SleepTime: "16:00", PreferredMealCount: 6}

	ctx, err := NewEngine().Build(intake, targetWithCalories(1800))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ctx.MealCount != 6 {
		t.Fatalf("meal count = %d, want 6", ctx.MealCount)
	}
	// Six meals between 09:00 and 13:15 leave 39 minutes apiece; the
	// windows shrink to the spacing instead of overlapping.
	first := ctx.Meals[0].Window
	if first.Start != "09:00" || first.End != "09:39" {
		t.Errorf("first window = %s-%s, want 09:00-09:39", first.Start, first.End)
	}
}

func TestBuild_WindowTooShortForMealCount(t *testing.T) {
	intake := baseIntake()
	intake.Schedule = domain.Schedule{WakeTime: "08:00", SleepTime: "13:00", PreferredMealCount: 6}

	_, err := NewEngine().Build(intake, targetWithCalories(1500))
	engErr, ok := err.(*domain.EngineError)
	if !ok || engErr.Code != domain.ErrWindowTooShort.Code {
		t.Errorf("err = %v, want window-too-short", err)
	}
}

func TestValidate_Overlap(t *testing.T) {
	ctx := domain.MealStructureContext{
		MealCount: 2,
		Meals: []domain.Meal{
			{Name: "breakfast", Window: domain.TimingWindow{Start: "08:00", End: "09:00"}, EnergyWeight: 0.5},
			{Name: "lunch", Window: domain.TimingWindow{Start: "08:30", End: "09:30"}, EnergyWeight: 0.5},
		},
	}
	err := Validate(ctx, domain.Schedule{WakeTime: "06:30", SleepTime: "22:30"})
	engErr, ok := err.(*domain.EngineError)
	if !ok || engErr.Code != domain.ErrTimingOverlap.Code {
		t.Errorf("err = %v, want timing overlap", err)
	}
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	ctx := domain.MealStructureContext{
		MealCount: 2,
		Meals: []domain.Meal{
			{Name: "breakfast", Window: domain.TimingWindow{Start: "08:00", End: "08:45"}, EnergyWeight: 0.5},
			{Name: "dinner", Window: domain.TimingWindow{Start: "18:00", End: "18:45"}, EnergyWeight: 0.4},
		},
	}
	err := Validate(ctx, domain.Schedule{WakeTime: "06:30", SleepTime: "22:30"})
	engErr, ok := err.(*domain.EngineError)
	if !ok || engErr.Code != domain.ErrWeightsInvalid.Code {
		t.Errorf("err = %v, want weights invalid", err)
	}
}

func TestNormalizeWeights_RemainderToLargest(t *testing.T) {
	meals := []domain.Meal{
		{Name: "breakfast", EnergyWeight: 0.333},
		{Name: "lunch", EnergyWeight: 0.333},
		{Name: "dinner", EnergyWeight: 0.333},
	}
	normalizeWeights(meals)

	sum := 0.0
	for _, m := range meals {
		sum += m.EnergyWeight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("sum = %f, want exactly 1.0", sum)
	}
	if meals[0].EnergyWeight != 0.34 {
		t.Errorf("largest meal weight = %f, want 0.34 with the remainder", meals[0].EnergyWeight)
	}
}

func TestRebalanceWeights(t *testing.T) {
	ctx := domain.MealStructureContext{
		Meals: []domain.Meal{
			{Name: "breakfast", EnergyWeight: 0.30},
			{Name: "lunch", EnergyWeight: 0.40},
			{Name: "dinner", EnergyWeight: 0.30},
		},
	}
	delivered := map[string]float64{"breakfast": 700, "lunch": 800, "dinner": 500}

	if !RebalanceWeights(&ctx, 2000, delivered) {
		t.Fatal("expected a rebalance, breakfast drifted 16% over its share")
	}
	if ctx.Meals[0].EnergyWeight != 0.35 {
		t.Errorf("breakfast weight = %f, want 0.35", ctx.Meals[0].EnergyWeight)
	}
	if ctx.Meals[2].EnergyWeight != 0.25 {
		t.Errorf("dinner weight = %f, want 0.25", ctx.Meals[2].EnergyWeight)
	}

	// Within tolerance: nothing moves.
	ctx2 := domain.MealStructureContext{
		Meals: []domain.Meal{{Name: "breakfast", EnergyWeight: 1.0}},
	}
	if RebalanceWeights(&ctx2, 2000, map[string]float64{"breakfast": 1960}) {
		t.Error("rebalanced despite 2% drift within tolerance")
	}
}

func TestProteinSufficient(t *testing.T) {
	target := domain.TargetContext{
		Macros: map[string]domain.Range{"protein_g": {Min: 100, Max: 130}},
	}
	if !ProteinSufficient(domain.Nutrition{ProteinG: 96}, target) {
		t.Error("96g against a 100g floor should pass at 95% sufficiency")
	}
	if ProteinSufficient(domain.Nutrition{ProteinG: 94}, target) {
		t.Error("94g against a 100g floor should fail")
	}
	if !ProteinSufficient(domain.Nutrition{ProteinG: 0}, domain.TargetContext{}) {
		t.Error("no protein floor means always sufficient")
	}
}
