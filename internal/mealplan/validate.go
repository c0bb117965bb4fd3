package mealplan

import (
	"fmt"
	"math"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

const (
	// Tolerance for a meal's calories against its energy weight share.
	calorieShareTolerance = 0.05
	// A day must deliver this fraction of the protein floor.
	proteinSufficiencyRatio = 0.95
)

// Validate checks a meal skeleton against the client's schedule: windows
// must parse, must not overlap (including windows that span midnight),
// dinner must end three hours before sleep, and the energy weights must
// sum to exactly 1.0.
func Validate(ctx domain.MealStructureContext, schedule domain.Schedule) error {
	if len(ctx.Meals) == 0 {
		return domain.ErrNoMeals
	}

	wake, err := parseHHMM(schedule.WakeTime)
	if err != nil {
		return err
	}
	sleep, err := parseHHMM(schedule.SleepTime)
	if err != nil {
		return err
	}
	if sleep <= wake {
		sleep += minutesPerDay
	}

	type span struct {
		name       string
		start, end int
	}
	spans := make([]span, len(ctx.Meals))
	for i, meal := range ctx.Meals {
		start, end, err := windowSpan(meal.Window, wake)
		if err != nil {
			return err
		}
		spans[i] = span{meal.Name, start, end}
	}

	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				return domain.NewEngineError(domain.ErrTimingOverlap.Code,
					fmt.Sprintf("windows for %s and %s overlap", spans[i].name, spans[j].name))
			}
		}
	}

	for _, sp := range spans {
		if sp.name == "dinner" && sp.end > sleep-dinnerSleepGapMinutes {
			return domain.NewEngineError(domain.ErrDinnerTooLate.Code,
				fmt.Sprintf("dinner ends at %s, less than three hours before sleep at %s",
					formatHHMM(sp.end), schedule.SleepTime))
		}
	}

	sum := 0.0
	for _, meal := range ctx.Meals {
		sum += meal.EnergyWeight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return domain.NewEngineError(domain.ErrWeightsInvalid.Code,
			fmt.Sprintf("energy weights sum to %.4f", sum))
	}
	return nil
}

// RebalanceWeights compares each meal's delivered calories to its energy
// weight share of the target. When any meal drifts past the tolerance,
// the weights are recomputed from the delivered calories so downstream
// stages see the distribution that was actually achieved. Returns whether
// a rebalance happened.
func RebalanceWeights(ctx *domain.MealStructureContext, target float64, mealCalories map[string]float64) bool {
	if target <= 0 {
		return false
	}
	total := 0.0
	for _, c := range mealCalories {
		total += c
	}
	if total <= 0 {
		return false
	}

	drifted := false
	for _, meal := range ctx.Meals {
		want := meal.EnergyWeight * target
		if want <= 0 {
			continue
		}
		if math.Abs(mealCalories[meal.Name]-want)/want > calorieShareTolerance {
			drifted = true
			break
		}
	}
	if !drifted {
		return false
	}

	for i := range ctx.Meals {
		ctx.Meals[i].EnergyWeight = mealCalories[ctx.Meals[i].Name] / total
	}
	normalizeWeights(ctx.Meals)
	return true
}

// ProteinSufficient reports whether the day's protein reaches the
// sufficiency share of the target's protein floor.
func ProteinSufficient(daily domain.Nutrition, target domain.TargetContext) bool {
	floor, ok := target.Macros["protein_g"]
	if !ok || floor.Min <= 0 {
		return true
	}
	return daily.ProteinG >= proteinSufficiencyRatio*floor.Min
}
