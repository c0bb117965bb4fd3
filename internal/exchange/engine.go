// Package exchange distributes the day's calorie and protein targets
// across meals as food-exchange counts. The fill is two-phase: protein
// categories first until the meal's protein share is met, then the
// remaining calories round-robin across the other categories. Counts are
// always multiples of half an exchange.
package exchange

import (
	"math"
	"sort"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

const (
	// A category counts as a protein source above this density.
	proteinDensityFloor = 0.05 // g protein per kcal

	proteinToleranceG    = 2.0
	calorieToleranceKcal = 10.0

	increment      = 0.5
	maxPerCategory = 2.0
	maxFillPasses  = 32
)

// Engine is the exchange distribution engine.
type Engine struct {
	KB *kb.KB
}

// NewEngine creates an exchange engine over the given knowledge base.
func NewEngine(k *kb.KB) *Engine {
	return &Engine{KB: k}
}

// Distribute fills every meal's exchange counts from the calorie target
// and the meal skeleton's energy weights.
func (e *Engine) Distribute(target domain.TargetContext, structure domain.MealStructureContext) (domain.ExchangeContext, error) {
	if len(structure.Meals) == 0 {
		return domain.ExchangeContext{}, domain.ErrNoMeals
	}

	proteinCats, calorieCats := e.splitCategories()

	dailyProtein := proteinMidpoint(target)

	ctx := domain.ExchangeContext{
		AssessmentID:   target.AssessmentID,
		MealExchanges:  make(map[string]map[string]float64, len(structure.Meals)),
		DailyExchanges: make(map[string]float64),
		MealNutrition:  make(map[string]domain.Nutrition, len(structure.Meals)),
	}

	for _, meal := range structure.Meals {
		mealCalories := target.CaloriesTarget * meal.EnergyWeight
		mealProtein := dailyProtein * meal.EnergyWeight

		counts := e.fillMeal(mealCalories, mealProtein, proteinCats, calorieCats)
		ctx.MealExchanges[meal.Name] = counts

		nutrition := e.nutritionFor(counts)
		ctx.MealNutrition[meal.Name] = nutrition
		ctx.DailyNutrition = ctx.DailyNutrition.Add(nutrition)
		for cat, count := range counts {
			ctx.DailyExchanges[cat] += count
		}
	}
	return ctx, nil
}

// splitCategories partitions the exchange standards into protein sources,
// densest first, and calorie fillers in catalog order.
func (e *Engine) splitCategories() ([]domain.ExchangeStandard, []domain.ExchangeStandard) {
	var protein, calorie []domain.ExchangeStandard
	for _, std := range e.KB.Standards() {
		if std.Calories <= 0 {
			continue
		}
		if std.ProteinG/std.Calories >= proteinDensityFloor {
			protein = append(protein, std)
		} else {
			calorie = append(calorie, std)
		}
	}
	sort.SliceStable(protein, func(i, j int) bool {
		return protein[i].ProteinG/protein[i].Calories > protein[j].ProteinG/protein[j].Calories
	})
	return protein, calorie
}

// fillMeal runs the two-phase fill for one meal.
func (e *Engine) fillMeal(calorieTarget, proteinTarget float64, proteinCats, calorieCats []domain.ExchangeStandard) map[string]float64 {
	counts := make(map[string]float64)
	var calories, protein float64

	// Phase 1: protein sources until the protein share is within
	// tolerance, never spending calories the meal does not have.
	for _, std := range proteinCats {
		for proteinTarget-protein > proteinToleranceG &&
			counts[std.Category] < maxPerCategory &&
			increment*std.Calories <= calorieTarget-calories+calorieToleranceKcal {
			counts[std.Category] += increment
			calories += increment * std.Calories
			protein += increment * std.ProteinG
		}
	}

	// Phase 2: round-robin the remaining calories across the fillers.
	for pass := 0; pass < maxFillPasses; pass++ {
		added := false
		for _, std := range calorieCats {
			if calorieTarget-calories <= calorieToleranceKcal {
				return counts
			}
			if counts[std.Category] >= maxPerCategory {
				continue
			}
			if increment*std.Calories > calorieTarget-calories+calorieToleranceKcal {
				continue
			}
			counts[std.Category] += increment
			calories += increment * std.Calories
			protein += increment * std.ProteinG
			added = true
		}
		if !added {
			break
		}
	}
	return counts
}

// nutritionFor totals a meal's counts against the per-exchange standards.
func (e *Engine) nutritionFor(counts map[string]float64) domain.Nutrition {
	var n domain.Nutrition
	for cat, count := range counts {
		std, err := e.KB.Standard(cat)
		if err != nil {
			continue
		}
		n.Calories += count * std.Calories
		n.ProteinG += count * std.ProteinG
		n.CarbsG += count * std.CarbsG
		n.FatG += count * std.FatG
	}
	n.Calories = round1(n.Calories)
	n.ProteinG = round1(n.ProteinG)
	n.CarbsG = round1(n.CarbsG)
	n.FatG = round1(n.FatG)
	return n
}

// proteinMidpoint picks the day's protein goal from the target's gram
// range; the midpoint balances the floor against the ceiling.
func proteinMidpoint(target domain.TargetContext) float64 {
	r, ok := target.Macros["protein_g"]
	if !ok || r.Max <= 0 {
		return 0
	}
	return (r.Min + r.Max) / 2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
