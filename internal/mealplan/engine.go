// Package mealplan builds the day's meal skeleton: how many meals, when
// each one is eaten, and what share of the day's energy it carries. The
// skeleton is pure structure; no foods are chosen here.
package mealplan

import (
	"fmt"
	"math"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

const (
	minMeals = 2
	maxMeals = 6

	mealWindowMinutes = 45
	// Meals squeezed closer together than this cannot be eaten.
	minMealSpacingMinutes = 15
	// Dinner must end at least this long before sleep.
	dinnerSleepGapMinutes = 180
	firstMealAfterWake    = 60
)

// slot is one entry in a meal-count template.
type slot struct {
	name   string
	weight float64
	intent string
}

// templates map a meal count to its chronological slots. Weights are the
// starting distribution; normalizeWeights makes them sum to exactly 1.0.
var templates = map[int][]slot{
	2: {
		{"breakfast", 0.45, "protein_forward"},
		{"dinner", 0.55, "balanced"},
	},
	3: {
		{"breakfast", 0.30, "protein_forward"},
		{"lunch", 0.40, "balanced"},
		{"dinner", 0.30, "light"},
	},
	4: {
		{"breakfast", 0.25, "protein_forward"},
		{"lunch", 0.35, "balanced"},
		{"snack_1", 0.10, "light"},
		{"dinner", 0.30, "light"},
	},
	5: {
		{"breakfast", 0.25, "protein_forward"},
		{"snack_1", 0.10, "light"},
		{"lunch", 0.30, "balanced"},
		{"snack_2", 0.10, "light"},
		{"dinner", 0.25, "light"},
	},
	6: {
		{"breakfast", 0.20, "protein_forward"},
		{"snack_1", 0.10, "light"},
		{"lunch", 0.30, "balanced"},
		{"snack_2", 0.10, "light"},
		{"snack_3", 0.05, "light"},
		{"dinner", 0.25, "light"},
	},
}

// Engine is the meal structure engine.
type Engine struct{}

// NewEngine creates a meal structure engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Build derives the meal skeleton from the client's schedule and the
// calorie target, then validates its own output before returning it.
func (e *Engine) Build(intake domain.IntakeContext, target domain.TargetContext) (domain.MealStructureContext, error) {
	count := mealCount(intake.Schedule, target.CaloriesTarget)

	slots, ok := templates[count]
	if !ok {
		return domain.MealStructureContext{}, domain.NewEngineError(domain.ErrNoMeals.Code,
			fmt.Sprintf("no template for %d meals", count))
	}

	windows, err := mealWindows(intake.Schedule, len(slots))
	if err != nil {
		return domain.MealStructureContext{}, err
	}

	meals := make([]domain.Meal, len(slots))
	for i, s := range slots {
		meals[i] = domain.Meal{
			Name:         s.name,
			Window:       windows[i],
			EnergyWeight: s.weight,
			MacroIntent:  s.intent,
		}
	}
	normalizeWeights(meals)

	ctx := domain.MealStructureContext{
		AssessmentID: intake.AssessmentID,
		MealCount:    count,
		Meals:        meals,
	}
	if err := Validate(ctx, intake.Schedule); err != nil {
		return domain.MealStructureContext{}, err
	}
	return ctx, nil
}

// mealCount resolves the day's meal count. An explicit client preference
// wins; otherwise a long fasting window compresses the day, and failing
// that the calorie target decides.
func mealCount(s domain.Schedule, calories float64) int {
	if s.PreferredMealCount > 0 {
		if s.PreferredMealCount < minMeals {
			return minMeals
		}
		if s.PreferredMealCount > maxMeals {
			return maxMeals
		}
		return s.PreferredMealCount
	}
	if s.FastingWindowHours >= 16 {
		return 2
	}
	if s.FastingWindowHours >= 14 {
		return 3
	}
	switch {
	case calories >= 2400:
		return 5
	case calories >= 1800:
		return 4
	default:
		return 3
	}
}

// mealWindows spaces the meal start times evenly between one hour after
// waking and the latest dinner start that still ends three hours before
// sleep. A sleep time earlier than the wake time is read as past midnight.
// When the eating span is tight, window length shrinks to the spacing so
// adjacent meals touch instead of overlapping; a span that cannot give
// each meal minMealSpacingMinutes is a typed error.
func mealWindows(s domain.Schedule, count int) ([]domain.TimingWindow, error) {
	wake, err := parseHHMM(s.WakeTime)
	if err != nil {
		return nil, err
	}
	sleep, err := parseHHMM(s.SleepTime)
	if err != nil {
		return nil, err
	}
	if sleep <= wake {
		sleep += minutesPerDay
	}

	first := wake + firstMealAfterWake
	last := sleep - dinnerSleepGapMinutes - mealWindowMinutes
	if last < first {
		return nil, domain.NewEngineError(domain.ErrDinnerTooLate.Code,
			fmt.Sprintf("eating window %s-%s cannot fit a dinner three hours before sleep", s.WakeTime, s.SleepTime))
	}

	windowLen := mealWindowMinutes
	if count > 1 {
		spacing := (last - first) / (count - 1)
		if spacing < minMealSpacingMinutes {
			return nil, domain.NewEngineError(domain.ErrWindowTooShort.Code,
				fmt.Sprintf("eating window %s-%s is too short for %d meals", s.WakeTime, s.SleepTime, count))
		}
		if spacing < windowLen {
			windowLen = spacing
		}
	}

	windows := make([]domain.TimingWindow, count)
	for i := 0; i < count; i++ {
		start := first
		if count > 1 {
			start = first + (last-first)*i/(count-1)
		}
		windows[i] = domain.TimingWindow{
			Start: formatHHMM(start),
			End:   formatHHMM(start + windowLen),
		}
	}
	return windows, nil
}

// normalizeWeights rounds every weight to 2 decimals and pushes the
// rounding remainder onto the largest meal so the sum is exactly 1.0.
func normalizeWeights(meals []domain.Meal) {
	if len(meals) == 0 {
		return
	}
	sum := 0.0
	largest := 0
	for i := range meals {
		meals[i].EnergyWeight = math.Round(meals[i].EnergyWeight*100) / 100
		sum += meals[i].EnergyWeight
		if meals[i].EnergyWeight > meals[largest].EnergyWeight {
			largest = i
		}
	}
	remainder := math.Round((1.0-sum)*100) / 100
	if remainder != 0 {
		meals[largest].EnergyWeight = math.Round((meals[largest].EnergyWeight+remainder)*100) / 100
	}
}
