// Package allocation places concrete foods into each meal slot of the
// plan's days, honoring the variety rules: a food appears at most once
// per day, and a meal avoids repeating yesterday's food for the same
// slot. Violations degrade to warnings, never failures.
package allocation

// tracker enforces the two variety rules across a plan's days.
type tracker struct {
	today     map[string]bool
	prevMeals map[string]map[string]bool
	currMeals map[string]map[string]bool
}

func newTracker() *tracker {
	return &tracker{
		today:     make(map[string]bool),
		prevMeals: make(map[string]map[string]bool),
		currMeals: make(map[string]map[string]bool),
	}
}

// startDay rolls the current day's per-meal sets into yesterday and
// clears the per-day set.
func (t *tracker) startDay() {
	t.prevMeals = t.currMeals
	t.currMeals = make(map[string]map[string]bool)
	t.today = make(map[string]bool)
}

// usedToday reports whether the food was already placed somewhere today.
func (t *tracker) usedToday(foodID string) bool {
	return t.today[foodID]
}

// usedYesterdayIn reports whether the food filled the same meal slot
// yesterday. Only the immediately preceding day counts.
func (t *tracker) usedYesterdayIn(meal, foodID string) bool {
	return t.prevMeals[meal][foodID]
}

// mark records a placement.
func (t *tracker) mark(meal, foodID string) {
	t.today[foodID] = true
	if t.currMeals[meal] == nil {
		t.currMeals[meal] = make(map[string]bool)
	}
	t.currMeals[meal][foodID] = true
}
