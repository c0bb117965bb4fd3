package diagnose

import (
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(kb.Builtin())
}

func baseIntake() domain.IntakeContext {
	return domain.IntakeContext{
		AssessmentID: "a-1",
		ClientID:     "c-1",
		Profile: domain.Profile{
			Age: 42, Gender: "male", HeightCM: 172, WeightKG: 70, ActivityLevel: "moderate",
		},
		Labs: map[string]float64{},
	}
}

func findDiagnosis(ctx domain.DiagnosisContext, id string) *domain.Diagnosis {
	for i := range ctx.Diagnoses {
		if ctx.Diagnoses[i].ID == id {
			return &ctx.Diagnoses[i]
		}
	}
	return nil
}

func TestDiagnose_DiabetesWithExcessCarbs(t *testing.T) {
	eng := newTestEngine(t)

	intake := baseIntake()
	intake.Labs = map[string]float64{"HbA1c": 7.5}
	intake.DietHistory.CarbPercent = 60

	ctx, err := eng.Diagnose(intake)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	t2d := findDiagnosis(ctx, "type_2_diabetes")
	if t2d == nil {
		t.Fatal("type_2_diabetes not emitted")
	}
	if t2d.Severity != "moderate" {
		t.Errorf("t2d severity = %q, want moderate", t2d.Severity)
	}
	if t2d.Type != domain.DiagnosisMedical {
		t.Errorf("t2d type = %q, want medical", t2d.Type)
	}

	carbs := findDiagnosis(ctx, "excess_carbohydrate_intake")
	if carbs == nil {
		t.Fatal("excess_carbohydrate_intake not emitted")
	}
	if carbs.Type != domain.DiagnosisNutrition {
		t.Errorf("carbs type = %q, want nutrition", carbs.Type)
	}
}

func TestDiagnose_EvidenceRecordsBand(t *testing.T) {
	eng := newTestEngine(t)

	intake := baseIntake()
	intake.Labs = map[string]float64{"hba1c": 7.5}

	ctx, err := eng.Diagnose(intake)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	t2d := findDiagnosis(ctx, "type_2_diabetes")
	if t2d == nil {
		t.Fatal("type_2_diabetes not emitted")
	}
	if len(t2d.Evidence) != 1 {
		t.Fatalf("evidence count = %d, want 1", len(t2d.Evidence))
	}
	ev := t2d.Evidence[0]
	if ev.Parameter != "hba1c" || ev.Value != 7.5 {
		t.Errorf("evidence = %+v", ev)
	}
	if ev.BandMin == nil || *ev.BandMin != 7.0 {
		t.Errorf("band min = %v, want 7.0", ev.BandMin)
	}
	if ev.BandMax == nil || *ev.BandMax != 8.5 {
		t.Errorf("band max = %v, want 8.5", ev.BandMax)
	}
	if ev.Source != "kb:type_2_diabetes/hba1c" {
		t.Errorf("source = %q", ev.Source)
	}
}

func TestDiagnose_HierarchySuppressesPrediabetes(t *testing.T) {
	eng := newTestEngine(t)

	// Fasting glucose in the prediabetes band, HbA1c in the diabetes band.
	// The subsumed diagnosis must be dropped.
	intake := baseIntake()
	intake.Labs = map[string]float64{"hba1c": 7.2, "fasting_blood_sugar": 110}

	ctx, err := eng.Diagnose(intake)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if findDiagnosis(ctx, "type_2_diabetes") == nil {
		t.Error("type_2_diabetes not emitted")
	}
	if findDiagnosis(ctx, "prediabetes") != nil {
		t.Error("prediabetes emitted despite type_2_diabetes")
	}
}

func TestDiagnose_PregnancySkipsBMIConditions(t *testing.T) {
	eng := newTestEngine(t)

	intake := baseIntake()
	intake.Profile.Gender = "female"
	intake.Profile.Pregnant = true
	intake.Profile.WeightKG = 95 // BMI ~32

	ctx, err := eng.Diagnose(intake)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if findDiagnosis(ctx, "obesity") != nil {
		t.Error("obesity emitted for pregnant client")
	}
}

func TestDiagnose_SeverityScores(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name     string
		hba1c    float64
		severity string
		minScore float64
		maxScore float64
	}{
		{"band floor", 7.0, "moderate", 7.0, 7.05},
		{"mid band", 7.75, "moderate", 7.9, 8.1},
		{"open top band capped", 12.0, "severe", 10.0, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intake := baseIntake()
			intake.Labs = map[string]float64{"hba1c": tt.hba1c}
			ctx, err := eng.Diagnose(intake)
			if err != nil {
				t.Fatalf("Diagnose: %v", err)
			}
			d := findDiagnosis(ctx, "type_2_diabetes")
			if d == nil {
				t.Fatal("type_2_diabetes not emitted")
			}
			if d.Severity != tt.severity {
				t.Errorf("severity = %q, want %q", d.Severity, tt.severity)
			}
			if d.SeverityScore < tt.minScore || d.SeverityScore > tt.maxScore {
				t.Errorf("score = %f, want in [%f, %f]", d.SeverityScore, tt.minScore, tt.maxScore)
			}
		})
	}
}

func TestDiagnose_SortedBySeverityScore(t *testing.T) {
	eng := newTestEngine(t)

	intake := baseIntake()
	intake.Labs = map[string]float64{"hba1c": 9.0, "systolic_bp": 132}
	intake.DietHistory.FiberG = 18

	ctx, err := eng.Diagnose(intake)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(ctx.Diagnoses) < 3 {
		t.Fatalf("diagnoses = %d, want at least 3", len(ctx.Diagnoses))
	}
	for i := 1; i < len(ctx.Diagnoses); i++ {
		if ctx.Diagnoses[i].SeverityScore > ctx.Diagnoses[i-1].SeverityScore {
			t.Errorf("diagnoses not sorted: %s (%.1f) after %s (%.1f)",
				ctx.Diagnoses[i].ID, ctx.Diagnoses[i].SeverityScore,
				ctx.Diagnoses[i-1].ID, ctx.Diagnoses[i-1].SeverityScore)
		}
	}
}

func TestDiagnose_NoFindings(t *testing.T) {
	eng := newTestEngine(t)

	ctx, err := eng.Diagnose(baseIntake())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(ctx.Diagnoses) != 0 {
		t.Errorf("diagnoses = %v, want none", ctx.Diagnoses)
	}
	if ctx.AssessmentID != "a-1" {
		t.Errorf("assessment id = %q, want a-1", ctx.AssessmentID)
	}
}

func TestNormalizeLabs_Aliases(t *testing.T) {
	labs := normalizeLabs(map[string]float64{
		"HbA1c":      7.1,
		"FBS":        130,
		"Systolic":   142,
		"unknown_x":  1,
	})

	if labs["hba1c"] != 7.1 {
		t.Errorf("hba1c = %f, want 7.1", labs["hba1c"])
	}
	if labs["fasting_glucose"] != 130 {
		t.Errorf("fasting_glucose = %f, want 130", labs["fasting_glucose"])
	}
	if labs["systolic_bp"] != 142 {
		t.Errorf("systolic_bp = %f, want 142", labs["systolic_bp"])
	}
	if labs["unknown_x"] != 1 {
		t.Errorf("unknown keys should pass through lowercased")
	}
}

func TestNormalizeLabs_CollisionsAreDeterministic(t *testing.T) {
	// The canonical spelling beats any alias, no matter the map order.
	for i := 0; i < 20; i++ {
		labs := normalizeLabs(map[string]float64{"a1c": 6.0, "hba1c": 7.0})
		if labs["hba1c"] != 7.0 {
			t.Fatalf("hba1c = %f, want the canonical key's 7.0", labs["hba1c"])
		}
	}

	// Between aliases alone, sorted key order decides.
	for i := 0; i < 20; i++ {
		labs := normalizeLabs(map[string]float64{"glycated_hemoglobin": 6.5, "a1c": 6.0})
		if labs["hba1c"] != 6.0 {
			t.Fatalf("hba1c = %f, want 6.0 from the first alias in sorted order", labs["hba1c"])
		}
	}
}
