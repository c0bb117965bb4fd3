package domain

// FoodNutrition holds per-100g nutrient values for a catalog food.
type FoodNutrition struct {
	Calories               float64 `json:"calories"`
	ProteinG               float64 `json:"protein_g"`
	CarbsG                 float64 `json:"carbs_g"`
	FatG                   float64 `json:"fat_g"`
	FiberG                 float64 `json:"fiber_g"`
	SodiumMG               float64 `json:"sodium_mg"`
	CalorieDensityKcalPerG float64 `json:"calorie_density_kcal_per_g"`
}

// MNTProfile is the therapy metadata attached to a catalog food.
type MNTProfile struct {
	MedicalTags         map[string]bool `json:"medical_tags,omitempty"`
	MacroCompliance     map[string]bool `json:"macro_compliance,omitempty"`
	MicroCompliance     map[string]bool `json:"micro_compliance,omitempty"`
	PreferredConditions []string        `json:"preferred_conditions,omitempty"`
	InclusionTags       []string        `json:"inclusion_tags,omitempty"`
	ExclusionTags       []string        `json:"exclusion_tags,omitempty"`
	Contraindications   []string        `json:"contraindications,omitempty"`
}

// FoodRecord is one food master record from the knowledge base.
// Compatibility maps condition IDs to "safe", "caution", or
// "contraindicated"; a missing entry means no record exists.
type FoodRecord struct {
	FoodID                  string            `json:"food_id"`
	DisplayName             string            `json:"display_name"`
	FoodType                string            `json:"food_type,omitempty"`
	CookingState            string            `json:"cooking_state,omitempty"`
	ExchangeCategory        string            `json:"exchange_category"`
	ServingSizePerExchangeG float64           `json:"serving_size_per_exchange_g"`
	CommonServingSizeG      float64           `json:"common_serving_size_g,omitempty"`
	Nutrition               FoodNutrition     `json:"nutrition"`
	MNTProfile              MNTProfile        `json:"mnt_profile"`
	Compatibility           map[string]string `json:"compatibility,omitempty"`
}

// DedupRecord traces the variants suppressed when a food group collapsed
// to its best-ranked member.
type DedupRecord struct {
	GroupKey        string   `json:"group_key"`
	VariationsFound int      `json:"variations_found"`
	VariantFoodIDs  []string `json:"variant_food_ids"`
	VariantNames    []string `json:"variant_names"`
}

// RankingInfo is the scoring metadata attached to a ranked food.
type RankingInfo struct {
	TotalScore float64            `json:"total_score"`
	Rank       int                `json:"rank"`
	TierScores map[string]float64 `json:"tier_scores,omitempty"`
	Factors    map[string]string  `json:"factors,omitempty"`
	Dedup      *DedupRecord       `json:"deduplication,omitempty"`
}

// RankedFood is a catalog food with its ranking metadata.
type RankedFood struct {
	FoodRecord
	Ranking RankingInfo `json:"ranking"`
}

// SeverityBand is one ordered threshold band for a diagnosis parameter.
type SeverityBand struct {
	Level string   `json:"level"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

// Eligibility gates a condition rule to the clients it can apply to.
// Empty fields mean no restriction.
type Eligibility struct {
	Genders         []string `json:"genders,omitempty"`
	MinAge          *int     `json:"min_age,omitempty"`
	MaxAge          *int     `json:"max_age,omitempty"`
	ExcludePregnant bool     `json:"exclude_pregnant,omitempty"`
}

// ConditionRule is one declarative diagnosis rule from the knowledge base.
// Bands maps a parameter name to its ordered severity bands.
type ConditionRule struct {
	ConditionID string                    `json:"condition_id"`
	Type        DiagnosisType             `json:"type"`
	Bands       map[string][]SeverityBand `json:"bands"`
	Eligibility Eligibility               `json:"eligibility,omitempty"`
}

// MNTRule is one declarative therapy rule from the knowledge base.
type MNTRule struct {
	RuleID            string           `json:"rule_id"`
	Status            string           `json:"status"`
	Priority          string           `json:"priority"`
	AppliesTo         []string         `json:"applies_to_diagnoses"`
	MacroConstraints  map[string]Bound `json:"macro_constraints,omitempty"`
	MicroConstraints  map[string]Bound `json:"micro_constraints,omitempty"`
	FoodExclusions    []string         `json:"food_exclusions,omitempty"`
	Contraindications []string         `json:"contraindications,omitempty"`
}

// ExchangeStandard is the per-exchange nutrition for one food category.
type ExchangeStandard struct {
	Category string  `json:"category"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DoshaProfile holds the advisory guidance for one dosha.
type DoshaProfile struct {
	Dosha           string   `json:"dosha"`
	Favor           []string `json:"favor"`
	Avoid           []string `json:"avoid"`
	MealTiming      string   `json:"meal_timing"`
	FoodTemperature string   `json:"food_temperature"`
	Lifestyle       []string `json:"lifestyle"`
}

// Float returns a pointer to v. Convenience for building Bound literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
