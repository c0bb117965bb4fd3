package workflow

import (
	"github.com/kosha-health/ncp-engine/internal/contract"
	"github.com/kosha-health/ncp-engine/internal/domain"
)

// Pipeline stage names. These key the persisted stage contexts and the
// gate registry.
const (
	StageIntake        = "intake"
	StageDiagnosis     = "diagnosis"
	StageMNT           = "mnt"
	StageTarget        = "target"
	StageMealStructure = "meal_structure"
	StageExchange      = "exchange"
	StageAyurveda      = "ayurveda"
	StageIntervention  = "intervention"
)

// Gate validates the output of one pipeline stage before the next stage
// may consume it.
type Gate interface {
	Name() string
	Evaluate(doc any) error
}

// contractGate checks a stage document against its declared contract.
type contractGate struct {
	spec contract.Spec
}

func (g *contractGate) Name() string { return g.spec.Name }

func (g *contractGate) Evaluate(doc any) error {
	return g.spec.ValidateValue(doc)
}

// StageGateRegistry maps each pipeline stage to its gate.
type StageGateRegistry struct {
	gates map[string]Gate
}

// NewStageGateRegistry builds the registry with a contract gate for every
// pipeline stage.
func NewStageGateRegistry() *StageGateRegistry {
	gates := make(map[string]Gate, len(stageSpecs))
	for stage, spec := range stageSpecs {
		gates[stage] = &contractGate{spec: spec}
	}
	return &StageGateRegistry{gates: gates}
}

// Register sets a custom gate for a stage.
func (r *StageGateRegistry) Register(stage string, gate Gate) {
	r.gates[stage] = gate
}

// Check runs the stage's gate over the document. An unregistered stage
// passes: gates narrow, they never invent requirements.
func (r *StageGateRegistry) Check(stage string, doc any) error {
	g, ok := r.gates[stage]
	if !ok {
		return nil
	}
	if err := g.Evaluate(doc); err != nil {
		return domain.WrapEngineError(domain.ErrContractViolated.Code, "stage "+stage, err)
	}
	return nil
}

// stageSpecs declares the field contract for each stage context. The
// specs check structure, not semantics; the engines own the semantics.
var stageSpecs = map[string]contract.Spec{
	StageIntake: {
		Name: "intake_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "client_id", Kind: contract.String, Required: true},
			{Name: "profile", Kind: contract.Map, Required: true},
			{Name: "labs", Kind: contract.Map},
			{Name: "diet_history", Kind: contract.Map, Required: true},
			{Name: "schedule", Kind: contract.Map, Required: true},
			{Name: "preferences", Kind: contract.Map, Required: true},
			{Name: "symptoms", Kind: contract.List, Elem: contract.String},
			{Name: "dosha_quiz_scores", Kind: contract.Map},
		},
	},
	StageDiagnosis: {
		Name: "diagnosis_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "diagnoses", Kind: contract.List, Required: true, Elem: contract.Map},
		},
	},
	StageMNT: {
		Name: "mnt_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "macro_constraints", Kind: contract.Map, Required: true},
			{Name: "micro_constraints", Kind: contract.Map, Required: true},
			{Name: "food_exclusions", Kind: contract.List, Required: true, Elem: contract.String},
			{Name: "contraindications", Kind: contract.List, Elem: contract.String},
			{Name: "rule_ids_used", Kind: contract.List, Required: true, Elem: contract.String},
		},
	},
	StageTarget: {
		Name: "target_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "calories_target", Kind: contract.Number, Required: true},
			{Name: "calculation_source", Kind: contract.String, Required: true},
			{Name: "macros", Kind: contract.Map, Required: true},
			{Name: "key_micros", Kind: contract.Map, Required: true},
		},
	},
	StageMealStructure: {
		Name: "meal_structure_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "meal_count", Kind: contract.Number, Required: true},
			{Name: "meals", Kind: contract.List, Required: true, Elem: contract.Map},
		},
	},
	StageExchange: {
		Name: "exchange_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "meal_exchanges", Kind: contract.Map, Required: true},
			{Name: "daily_exchanges", Kind: contract.Map, Required: true},
			{Name: "meal_nutrition", Kind: contract.Map, Required: true},
			{Name: "daily_nutrition", Kind: contract.Map, Required: true},
		},
	},
	StageAyurveda: {
		Name: "ayurveda_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "dosha_primary", Kind: contract.String, Required: true},
			{Name: "dosha_scores", Kind: contract.Map, Required: true},
			{Name: "source", Kind: contract.String, Required: true},
			{Name: "lifestyle_guidelines", Kind: contract.Map, Required: true},
			{Name: "food_preferences", Kind: contract.List, Required: true, Elem: contract.Map},
		},
	},
	StageIntervention: {
		Name: "intervention_context",
		Fields: []contract.Field{
			{Name: "assessment_id", Kind: contract.String, Required: true},
			{Name: "plan_version", Kind: contract.Number, Required: true},
			{Name: "days", Kind: contract.List, Required: true, Elem: contract.Map},
			{Name: "constraints_snapshot", Kind: contract.Map, Required: true},
			{Name: "rule_ids_used", Kind: contract.List, Required: true, Elem: contract.String},
			{Name: "warnings", Kind: contract.List, Elem: contract.String},
		},
	},
}
