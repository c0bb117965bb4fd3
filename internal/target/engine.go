// Package target computes the numeric nutrition targets: daily calories
// from resting energy expenditure, macro ranges in percent and grams, and
// key micronutrient bounds. MNT constraints always override the population
// baselines; a micro bound set by therapy passes through exactly.
package target

import (
	"math"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// activityFactors are the standard TDEE multipliers over BMR.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// fallbackCalories is used when the profile is too incomplete for a
// Mifflin-St Jeor estimate.
const fallbackCalories = 2000

// Default macro distribution ranges, percent of calories.
var defaultMacroPercents = map[string]domain.Range{
	"carbohydrates_percent": {Min: 45, Max: 60},
	"protein_percent":       {Min: 15, Max: 25},
	"fat_percent":           {Min: 20, Max: 30},
}

// caloriesPerGram converts a percent key to grams.
var caloriesPerGram = map[string]float64{
	"carbohydrates_percent": 4,
	"protein_percent":       4,
	"fat_percent":           9,
}

// gramsKey maps a percent key to its grams counterpart.
var gramsKey = map[string]string{
	"carbohydrates_percent": "carbohydrates_g",
	"protein_percent":       "protein_g",
	"fat_percent":           "fat_g",
}

// Engine is the target calculation engine.
type Engine struct{}

// NewEngine creates a target engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute derives the calorie target, macro ranges, and key micro bounds
// for one assessment.
func (e *Engine) Compute(intake domain.IntakeContext, mnt domain.MNTContext) (domain.TargetContext, error) {
	calories, source := calorieTarget(intake.Profile, mnt)

	ctx := domain.TargetContext{
		AssessmentID:      intake.AssessmentID,
		CaloriesTarget:    calories,
		CalculationSource: source,
		Macros:            macroRanges(calories, mnt),
		KeyMicros:         keyMicros(intake.Profile, mnt),
	}
	return ctx, nil
}

// calorieTarget computes TDEE via Mifflin-St Jeor and applies the MNT
// calorie bound. The source is "tdee" only when the estimate survived
// untouched; any deficit, clamp, or fallback makes it "custom".
func calorieTarget(p domain.Profile, mnt domain.MNTContext) (float64, string) {
	source := "tdee"

	var calories float64
	if p.WeightKG <= 0 || p.HeightCM <= 0 || p.Age <= 0 {
		calories = fallbackCalories
		source = "custom"
	} else {
		bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
		if p.Gender == "female" {
			bmr -= 161
		} else {
			bmr += 5
		}
		factor, ok := activityFactors[p.ActivityLevel]
		if !ok {
			factor = activityFactors["sedentary"]
		}
		calories = bmr * factor
	}

	if bound, ok := mnt.MacroConstraints["calories"]; ok {
		if bound.DeficitPercent != nil {
			calories *= 1 - *bound.DeficitPercent/100
			source = "custom"
		}
		if bound.SurplusPercent != nil {
			calories *= 1 + *bound.SurplusPercent/100
			source = "custom"
		}
		if bound.Min != nil && calories < *bound.Min {
			calories = *bound.Min
			source = "custom"
		}
		if bound.Max != nil && calories > *bound.Max {
			calories = *bound.Max
			source = "custom"
		}
	}

	return math.Round(calories), source
}

// macroRanges narrows the default percent distribution by the MNT macro
// constraints, then converts each percent range to grams at 4/4/9 kcal
// per gram. A zero calorie target yields zero-width gram ranges.
func macroRanges(calories float64, mnt domain.MNTContext) map[string]domain.Range {
	out := make(map[string]domain.Range, 2*len(defaultMacroPercents))

	for key, def := range defaultMacroPercents {
		r := def
		if bound, ok := mnt.MacroConstraints[key]; ok {
			if bound.Min != nil && *bound.Min > r.Min {
				r.Min = *bound.Min
			}
			if bound.Max != nil && *bound.Max < r.Max {
				r.Max = *bound.Max
			}
			// A constraint outside the default band collapses the range
			// to the constraint edge rather than inverting it.
			if r.Min > r.Max {
				if bound.Max != nil && *bound.Max < def.Min {
					r.Min = r.Max
				} else {
					r.Max = r.Min
				}
			}
		}
		out[key] = r

		perGram := caloriesPerGram[key]
		out[gramsKey[key]] = domain.Range{
			Min: math.Round(calories * r.Min / 100 / perGram),
			Max: math.Round(calories * r.Max / 100 / perGram),
		}
	}
	return out
}

// keyMicros returns the baseline micro bounds for the client's age and
// gender, with MNT micro constraints passed through exactly.
func keyMicros(p domain.Profile, mnt domain.MNTContext) map[string]domain.Bound {
	out := map[string]domain.Bound{
		"fiber_g":      {Min: domain.Float(fiberBaseline(p))},
		"sodium_mg":    {Max: domain.Float(2300)},
		"calcium_mg":   {Min: domain.Float(calciumBaseline(p))},
		"vitamin_d_iu": {Min: domain.Float(vitaminDBaseline(p))},
		"iron_mg":      {Min: domain.Float(ironBaseline(p))},
	}

	for key, bound := range mnt.MicroConstraints {
		out[key] = bound
	}
	return out
}

func fiberBaseline(p domain.Profile) float64 {
	if p.Gender == "female" {
		if p.Age >= 50 {
			return 21
		}
		return 25
	}
	if p.Age >= 50 {
		return 30
	}
	return 38
}

func calciumBaseline(p domain.Profile) float64 {
	if p.Age >= 70 || (p.Gender == "female" && p.Age >= 50) {
		return 1200
	}
	return 1000
}

func vitaminDBaseline(p domain.Profile) float64 {
	if p.Age >= 70 {
		return 800
	}
	return 600
}

// ironBaseline reflects menstrual iron loss: women need 18mg until 50,
// everyone else 8mg.
func ironBaseline(p domain.Profile) float64 {
	if p.Gender == "female" && p.Age < 50 {
		return 18
	}
	return 8
}
