package allocation

import (
	"fmt"
	"math"
	"sort"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// fallbackServingG stands in when a food record carries neither a
// per-exchange serving size nor a common serving size.
const fallbackServingG = 100

// Allocator builds day plans from the ranked shortlists and the
// exchange distribution.
type Allocator struct{}

// NewAllocator creates an allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Plan allocates foods for the requested number of days. Unfillable
// categories and variety compromises surface as warnings on the affected
// meal; the plan itself always completes.
func (a *Allocator) Plan(shortlist map[string][]domain.RankedFood, exchanges domain.ExchangeContext, structure domain.MealStructureContext, days int) ([]domain.DayPlan, []string, error) {
	if len(structure.Meals) == 0 {
		return nil, nil, domain.ErrNoMeals
	}
	if len(shortlist) == 0 {
		return nil, nil, domain.ErrNoRankedFoods
	}
	if days < 1 {
		days = 1
	}

	track := newTracker()
	var planWarnings []string
	out := make([]domain.DayPlan, 0, days)

	for day := 1; day <= days; day++ {
		track.startDay()
		plan := domain.DayPlan{Day: day}

		for _, meal := range structure.Meals {
			allocation := a.fillMeal(meal.Name, exchanges.MealExchanges[meal.Name], shortlist, track)
			for _, w := range allocation.Warnings {
				planWarnings = append(planWarnings, fmt.Sprintf("day %d %s: %s", day, meal.Name, w))
			}
			plan.Meals = append(plan.Meals, allocation)
		}
		out = append(out, plan)
	}
	return out, planWarnings, nil
}

// fillMeal picks one food per category, largest exchange counts first.
func (a *Allocator) fillMeal(mealName string, counts map[string]float64, shortlist map[string][]domain.RankedFood, track *tracker) domain.MealAllocation {
	allocation := domain.MealAllocation{MealName: mealName}

	for _, cat := range categoriesByCount(counts) {
		count := counts[cat]
		candidates := shortlist[cat]
		if len(candidates) == 0 {
			allocation.Warnings = append(allocation.Warnings,
				fmt.Sprintf("no foods available for %s, %.1f exchanges unfilled", cat, count))
			continue
		}

		chosen, warning := pick(mealName, candidates, track)
		if chosen == nil {
			allocation.Warnings = append(allocation.Warnings,
				fmt.Sprintf("all %s foods already used today, %.1f exchanges unfilled", cat, count))
			continue
		}
		if warning != "" {
			allocation.Warnings = append(allocation.Warnings, warning)
		}

		placed, servingWarning := allocate(*chosen, count)
		if servingWarning != "" {
			allocation.Warnings = append(allocation.Warnings, servingWarning)
		}
		track.mark(mealName, placed.FoodID)
		allocation.Foods = append(allocation.Foods, placed)
		allocation.Nutrition = allocation.Nutrition.Add(placed.Nutrition)
	}
	return allocation
}

// pick returns the best-ranked candidate that satisfies both variety
// rules. When only the consecutive-day rule blocks, one reselection is
// attempted; if every remaining candidate repeats yesterday, the best of
// them is accepted with a warning.
func pick(mealName string, candidates []domain.RankedFood, track *tracker) (*domain.RankedFood, string) {
	var repeat *domain.RankedFood
	for i := range candidates {
		c := &candidates[i]
		if track.usedToday(c.FoodID) {
			continue
		}
		if !track.usedYesterdayIn(mealName, c.FoodID) {
			return c, ""
		}
		if repeat == nil {
			repeat = c
		}
	}
	if repeat != nil {
		return repeat, fmt.Sprintf("%s repeats from yesterday's %s", repeat.FoodID, mealName)
	}
	return nil, ""
}

// allocate computes the placed quantity and scales the per-100g
// nutrition to it.
func allocate(f domain.RankedFood, count float64) (domain.AllocatedFood, string) {
	serving := f.ServingSizePerExchangeG
	warning := ""
	if serving <= 0 {
		if f.CommonServingSizeG > 0 {
			serving = f.CommonServingSizeG
			warning = fmt.Sprintf("%s has no serving size per exchange, using its %.0fg common serving", f.FoodID, serving)
		} else {
			serving = fallbackServingG
			warning = fmt.Sprintf("%s has no serving size, assuming %dg per exchange", f.FoodID, fallbackServingG)
		}
	}

	quantity := round1(serving * count)
	scale := quantity / 100

	return domain.AllocatedFood{
		FoodID:           f.FoodID,
		DisplayName:      f.DisplayName,
		ExchangeCategory: f.ExchangeCategory,
		Exchanges:        count,
		QuantityG:        quantity,
		Nutrition: domain.Nutrition{
			Calories: round1(f.Nutrition.Calories * scale),
			ProteinG: round1(f.Nutrition.ProteinG * scale),
			CarbsG:   round1(f.Nutrition.CarbsG * scale),
			FatG:     round1(f.Nutrition.FatG * scale),
			FiberG:   round1(f.Nutrition.FiberG * scale),
			SodiumMG: round1(f.Nutrition.SodiumMG * scale),
		},
	}, warning
}

// categoriesByCount orders a meal's categories by exchange count,
// largest first, alphabetical on ties. Zero counts are dropped.
func categoriesByCount(counts map[string]float64) []string {
	cats := make([]string, 0, len(counts))
	for cat, count := range counts {
		if count > 0 {
			cats = append(cats, cat)
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
