// Package ayurveda produces the advisory dosha assessment. Its output
// biases food ranking and adds lifestyle guidance; it never excludes a
// food and never overrides a therapy constraint.
package ayurveda

import (
	"strings"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

// doshaOrder fixes tie-breaking: the classical vata, pitta, kapha order.
var doshaOrder = []string{"vata", "pitta", "kapha"}

// symptomDosha maps reported symptoms to the dosha they point at.
var symptomDosha = map[string]string{
	"bloating":   "vata",
	"gas":        "vata",
	"dry_skin":   "vata",
	"acidity":    "pitta",
	"heartburn":  "pitta",
	"heat":       "pitta",
	"lethargy":   "kapha",
	"heaviness":  "kapha",
	"congestion": "kapha",
}

// Engine is the dosha assessment engine.
type Engine struct {
	KB *kb.KB
}

// NewEngine creates an ayurveda engine over the given knowledge base.
func NewEngine(k *kb.KB) *Engine {
	return &Engine{KB: k}
}

// Assess determines the client's dosha and attaches the matching
// guidance. Explicit quiz scores always win over the heuristics.
func (e *Engine) Assess(intake domain.IntakeContext, mnt domain.MNTContext) (domain.AyurvedaContext, error) {
	scores, source := doshaScores(intake)
	primary, secondary := topTwo(scores)

	ctx := domain.AyurvedaContext{
		AssessmentID:   intake.AssessmentID,
		DoshaPrimary:   primary,
		DoshaSecondary: secondary,
		DoshaScores:    scores,
		Source:         source,
	}

	profile, err := e.KB.Dosha(primary)
	if err != nil {
		return domain.AyurvedaContext{}, err
	}
	ctx.LifestyleGuidelines = map[string]string{
		"meal_timing":      profile.MealTiming,
		"food_temperature": profile.FoodTemperature,
		"lifestyle":        strings.Join(profile.Lifestyle, ", "),
	}
	ctx.FoodPreferences = foodPreferences(profile, mnt)
	return ctx, nil
}

// doshaScores returns the per-dosha scores and their source. Quiz scores
// pass through untouched; otherwise anthropometry and symptoms vote.
func doshaScores(intake domain.IntakeContext) (map[string]float64, string) {
	if len(intake.DoshaQuizScores) > 0 {
		scores := make(map[string]float64, len(intake.DoshaQuizScores))
		for dosha, v := range intake.DoshaQuizScores {
			scores[strings.ToLower(dosha)] = v
		}
		return scores, "quiz"
	}

	scores := map[string]float64{"vata": 1, "pitta": 1, "kapha": 1}
	if intake.Profile.HeightCM > 0 && intake.Profile.WeightKG > 0 {
		heightM := intake.Profile.HeightCM / 100
		bmi := intake.Profile.WeightKG / (heightM * heightM)
		if bmi > 27 {
			scores["kapha"] += 2
		}
		if bmi < 19 {
			scores["vata"] += 2
		}
	}
	for _, symptom := range intake.Symptoms {
		if dosha, ok := symptomDosha[strings.ToLower(symptom)]; ok {
			scores[dosha]++
		}
	}
	return scores, "heuristic"
}

// topTwo returns the highest and second-highest scoring doshas, ties
// broken by the classical order. The secondary is empty when its score
// is zero.
func topTwo(scores map[string]float64) (string, string) {
	best, second := "", ""
	for _, dosha := range doshaOrder {
		v, ok := scores[dosha]
		if !ok {
			continue
		}
		switch {
		case best == "" || v > scores[best]:
			second = best
			best = dosha
		case second == "" || v > scores[second]:
			second = dosha
		}
	}
	if best == "" {
		best = "vata"
	}
	if second != "" && scores[second] <= 0 {
		second = ""
	}
	return best, second
}

// foodPreferences converts a dosha profile's favor and avoid lists into
// advisory preferences, dropping anything therapy already excludes.
func foodPreferences(profile domain.DoshaProfile, mnt domain.MNTContext) []domain.FoodPreference {
	excluded := make(map[string]bool, len(mnt.FoodExclusions))
	for _, tag := range mnt.FoodExclusions {
		excluded[tag] = true
	}

	prefs := []domain.FoodPreference{}
	for _, item := range profile.Favor {
		if excluded[item] {
			continue
		}
		prefs = append(prefs, domain.FoodPreference{
			FoodID:         item,
			PreferenceType: "favor",
			Reason:         "dosha:" + profile.Dosha,
			Modifiable:     true,
		})
	}
	for _, item := range profile.Avoid {
		if excluded[item] {
			continue
		}
		prefs = append(prefs, domain.FoodPreference{
			FoodID:         item,
			PreferenceType: "avoid",
			Reason:         "dosha:" + profile.Dosha,
			Modifiable:     true,
		})
	}
	return prefs
}
