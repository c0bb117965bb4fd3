// Package domain defines the core types for the NCP decision pipeline.
package domain

// ClientState represents the lifecycle state of a client.
type ClientState string

const (
	StateNewClient        ClientState = "new_client"
	StateIntakeCompleted  ClientState = "intake_completed"
	StateDiagnosed        ClientState = "diagnosed"
	StatePlanGenerated    ClientState = "plan_generated"
	StateActiveMonitoring ClientState = "active_monitoring"
)

// StateTransition is one entry in a client's append-only transition history.
type StateTransition struct {
	From   ClientState `json:"from"`
	To     ClientState `json:"to"`
	AtUnix int64       `json:"at_unix"`
}

// Client is one client record with its lifecycle state. StateVersion
// backs optimistic locking on state updates.
type Client struct {
	ClientID      string      `json:"client_id"`
	Name          string      `json:"name"`
	State         ClientState `json:"state"`
	StateVersion  int64       `json:"state_version"`
	CreatedAtUnix int64       `json:"created_at_unix"`
	UpdatedAtUnix int64       `json:"updated_at_unix"`
}

// Assessment ties one intake encounter to a client. All stage contexts
// hang off the assessment ID.
type Assessment struct {
	AssessmentID  string `json:"assessment_id"`
	ClientID      string `json:"client_id"`
	CreatedAtUnix int64  `json:"created_at_unix"`
}

// Profile holds the anthropometric and lifestyle fields used for
// calorie and diagnosis calculations.
type Profile struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Pregnant      bool    `json:"pregnant"`
}

// DietHistory holds derived dietary metrics from the intake interview.
type DietHistory struct {
	CarbPercent   float64 `json:"carb_percent"`
	FiberG        float64 `json:"fiber_g"`
	ProteinGPerKG float64 `json:"protein_g_per_kg"`
}

// Schedule holds the client's daily rhythm used by the meal structure engine.
type Schedule struct {
	WakeTime           string  `json:"wake_time"`
	SleepTime          string  `json:"sleep_time"`
	FastingWindowHours float64 `json:"fasting_window_hours"`
	PreferredMealCount int     `json:"preferred_meal_count"`
}

// Preferences holds explicit client likes and dislikes as food IDs.
type Preferences struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
}

// IntakeContext is the assessment snapshot every downstream engine reads.
type IntakeContext struct {
	AssessmentID    string             `json:"assessment_id"`
	ClientID        string             `json:"client_id"`
	Profile         Profile            `json:"profile"`
	Labs            map[string]float64 `json:"labs"`
	DietHistory     DietHistory        `json:"diet_history"`
	Schedule        Schedule           `json:"schedule"`
	Preferences     Preferences        `json:"preferences"`
	Symptoms        []string           `json:"symptoms,omitempty"`
	DoshaQuizScores map[string]float64 `json:"dosha_quiz_scores,omitempty"`
}

// DiagnosisType distinguishes medical from nutrition diagnoses.
type DiagnosisType string

const (
	DiagnosisMedical   DiagnosisType = "medical"
	DiagnosisNutrition DiagnosisType = "nutrition"
)

// Evidence records the threshold band that fired for a diagnosis.
// All explainability comes from these records; there is no free text.
type Evidence struct {
	Parameter string   `json:"parameter"`
	Value     float64  `json:"value"`
	BandMin   *float64 `json:"band_min,omitempty"`
	BandMax   *float64 `json:"band_max,omitempty"`
	Severity  string   `json:"severity"`
	Unit      string   `json:"unit,omitempty"`
	Source    string   `json:"source"`
}

// Diagnosis is one emitted condition with its severity and evidence.
type Diagnosis struct {
	ID            string        `json:"id"`
	Type          DiagnosisType `json:"type"`
	Severity      string        `json:"severity"`
	SeverityScore float64       `json:"severity_score"`
	Evidence      []Evidence    `json:"evidence"`
}

// DiagnosisContext is the diagnosis engine's output.
type DiagnosisContext struct {
	AssessmentID string      `json:"assessment_id"`
	Diagnoses    []Diagnosis `json:"diagnoses"`
}

// Bound is a numeric constraint on one nutrient key. Nil fields are
// unconstrained.
type Bound struct {
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	DeficitPercent *float64 `json:"deficit_percent,omitempty"`
	SurplusPercent *float64 `json:"surplus_percent,omitempty"`
}

// MNTContext carries the merged therapy constraints. Once produced it is
// threaded unchanged through every later stage; food_exclusions must be
// honored by the food engine and the allocator.
type MNTContext struct {
	AssessmentID      string           `json:"assessment_id"`
	MacroConstraints  map[string]Bound `json:"macro_constraints"`
	MicroConstraints  map[string]Bound `json:"micro_constraints"`
	FoodExclusions    []string         `json:"food_exclusions"`
	Contraindications []string         `json:"contraindications,omitempty"`
	RuleIDsUsed       []string         `json:"rule_ids_used"`
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TargetContext carries the numeric nutrition targets.
// CalculationSource is "tdee" when the BMR-derived value survived untouched,
// "custom" when an MNT override or profile fallback fired.
type TargetContext struct {
	AssessmentID      string           `json:"assessment_id"`
	CaloriesTarget    float64          `json:"calories_target"`
	CalculationSource string           `json:"calculation_source"`
	Macros            map[string]Range `json:"macros"`
	KeyMicros         map[string]Bound `json:"key_micros"`
}

// TimingWindow is a meal's eating window in HH:MM local time.
// An End before Start means the window spans midnight.
type TimingWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Meal is one slot in the day's meal skeleton.
type Meal struct {
	Name         string       `json:"name"`
	Window       TimingWindow `json:"window"`
	EnergyWeight float64      `json:"energy_weight"`
	MacroIntent  string       `json:"macro_intent"`
}

// MealStructureContext is the meal structure engine's output.
// Energy weights are rounded to 2 decimals and sum to exactly 1.0.
type MealStructureContext struct {
	AssessmentID string `json:"assessment_id"`
	MealCount    int    `json:"meal_count"`
	Meals        []Meal `json:"meals"`
}

// EnergyWeights returns the meal-name to energy-weight map.
func (m MealStructureContext) EnergyWeights() map[string]float64 {
	out := make(map[string]float64, len(m.Meals))
	for _, meal := range m.Meals {
		out[meal.Name] = meal.EnergyWeight
	}
	return out
}

// Nutrition is a flat nutrient total used for meals, portions, and days.
type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMG float64 `json:"sodium_mg"`
}

// Add returns the sum of two nutrition totals.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		ProteinG: n.ProteinG + o.ProteinG,
		CarbsG:   n.CarbsG + o.CarbsG,
		FatG:     n.FatG + o.FatG,
		FiberG:   n.FiberG + o.FiberG,
		SodiumMG: n.SodiumMG + o.SodiumMG,
	}
}

// ExchangeContext maps each meal to its per-category exchange counts.
// Counts are non-negative multiples of 0.5.
type ExchangeContext struct {
	AssessmentID   string                        `json:"assessment_id"`
	MealExchanges  map[string]map[string]float64 `json:"meal_exchanges"`
	DailyExchanges map[string]float64            `json:"daily_exchanges"`
	MealNutrition  map[string]Nutrition          `json:"meal_nutrition"`
	DailyNutrition Nutrition                     `json:"daily_nutrition"`
}

// FoodPreference is one advisory ayurvedic preference. Never a constraint.
type FoodPreference struct {
	FoodID         string `json:"food_id"`
	PreferenceType string `json:"preference_type"`
	Reason         string `json:"reason"`
	Modifiable     bool   `json:"modifiable"`
}

// AyurvedaContext is the dosha assessment output. Source is "quiz" when
// explicit quiz scores were available, "heuristic" otherwise.
type AyurvedaContext struct {
	AssessmentID        string             `json:"assessment_id"`
	DoshaPrimary        string             `json:"dosha_primary"`
	DoshaSecondary      string             `json:"dosha_secondary,omitempty"`
	DoshaScores         map[string]float64 `json:"dosha_scores"`
	Source              string             `json:"source"`
	LifestyleGuidelines map[string]string  `json:"lifestyle_guidelines"`
	FoodPreferences     []FoodPreference   `json:"food_preferences"`
}

// AllocatedFood is one food placed into a meal with its computed quantity.
type AllocatedFood struct {
	FoodID           string    `json:"food_id"`
	DisplayName      string    `json:"display_name"`
	ExchangeCategory string    `json:"exchange_category"`
	Exchanges        float64   `json:"exchanges"`
	QuantityG        float64   `json:"quantity_g"`
	Nutrition        Nutrition `json:"nutrition"`
}

// MealAllocation is one meal's concrete food list. Warnings are non-fatal:
// an unfilled category or a variety violation degrades the plan, it never
// fails the run.
type MealAllocation struct {
	MealName  string          `json:"meal_name"`
	Foods     []AllocatedFood `json:"foods"`
	Nutrition Nutrition       `json:"nutrition"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// DayPlan is one day of allocated meals.
type DayPlan struct {
	Day   int              `json:"day"`
	Meals []MealAllocation `json:"meals"`
}

// InterventionContext is the finalized artifact handed to downstream
// narrators. Food IDs, quantities, and rule IDs are immutable ground truth.
type InterventionContext struct {
	AssessmentID        string     `json:"assessment_id"`
	PlanVersion         int        `json:"plan_version"`
	Days                []DayPlan  `json:"days"`
	ConstraintsSnapshot MNTContext `json:"constraints_snapshot"`
	RuleIDsUsed         []string   `json:"rule_ids_used"`
	Warnings            []string   `json:"warnings,omitempty"`
}
