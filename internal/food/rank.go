package food

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// RankContext carries everything the scoring tiers read. RecentFoods is
// most-recent-first and drives the variety penalty.
type RankContext struct {
	Diagnoses   []domain.Diagnosis
	MNT         domain.MNTContext
	Ayurveda    domain.AyurvedaContext
	Preferences domain.Preferences
	RecentFoods []string
}

// Tier scores one concern of a food. Scores are raw points; the ranker
// combines them with the tier weights. The note explains what moved the
// score, empty when nothing notable applied.
type Tier interface {
	Name() string
	Score(f domain.FoodRecord, rc RankContext) (float64, string)
}

// tierWeights is the default contribution of each tier to the total.
// Disabled tiers drop out and the remaining weights renormalize.
var tierWeights = map[string]float64{
	"medical_safety":    0.45,
	"nutrition_quality": 0.27,
	"ayurveda":          0.18,
	"variety":           0.10,
	"preference":        0.05,
	"practical":         0.05,
}

// allTiers returns the tier set in evaluation order.
func allTiers() []Tier {
	return []Tier{
		medicalSafetyTier{},
		nutritionQualityTier{},
		ayurvedaTier{},
		varietyTier{},
		preferenceTier{},
		practicalTier{},
	}
}

// Ranker scores and orders foods. Construct with NewRanker.
type Ranker struct {
	tiers   []Tier
	weights map[string]float64
}

// NewRanker builds a ranker with the named tiers disabled. A nil map
// enables everything.
func NewRanker(disabled map[string]bool) *Ranker {
	var tiers []Tier
	weights := make(map[string]float64)
	var sum float64
	for _, tier := range allTiers() {
		if disabled[tier.Name()] {
			continue
		}
		tiers = append(tiers, tier)
		sum += tierWeights[tier.Name()]
	}
	for _, tier := range tiers {
		weights[tier.Name()] = tierWeights[tier.Name()] / sum
	}
	return &Ranker{tiers: tiers, weights: weights}
}

// Rank scores every food and returns them ordered best first. Ties keep
// the input (catalog) order. Rank numbers are assigned by the caller
// after deduplication.
func (r *Ranker) Rank(foods []domain.FoodRecord, rc RankContext) []domain.RankedFood {
	out := make([]domain.RankedFood, len(foods))
	for i, f := range foods {
		tierScores := make(map[string]float64, len(r.tiers))
		var factors map[string]string
		var total float64
		for _, tier := range r.tiers {
			s, note := tier.Score(f, rc)
			tierScores[tier.Name()] = s
			total += s * r.weights[tier.Name()]
			if note != "" {
				if factors == nil {
					factors = make(map[string]string)
				}
				factors[tier.Name()] = note
			}
		}
		out[i] = domain.RankedFood{
			FoodRecord: f,
			Ranking: domain.RankingInfo{
				TotalScore: total,
				TierScores: tierScores,
				Factors:    factors,
			},
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ranking.TotalScore > out[j].Ranking.TotalScore
	})
	return out
}

// ---- medical safety ----

// safetyTagFor maps a condition ID to the coarse safety tag used on food
// records.
var safetyTagFor = map[string]string{
	"type_2_diabetes": "diabetic_safe",
	"prediabetes":     "diabetic_safe",
	"hypertension":    "hypertension_safe",
	"obesity":         "obesity_safe",
	"overweight":      "obesity_safe",
}

type medicalSafetyTier struct{}

func (medicalSafetyTier) Name() string { return "medical_safety" }

func (medicalSafetyTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	var score float64
	var notes []string
	for _, d := range rc.Diagnoses {
		if tag, ok := safetyTagFor[d.ID]; ok && f.MNTProfile.MedicalTags[tag] {
			score += 100
			notes = append(notes, "tagged "+tag)
		}
		switch f.Compatibility[d.ID] {
		case "safe":
			score += 50
			notes = append(notes, "safe for "+d.ID)
		case "caution":
			score += 20
			notes = append(notes, "caution for "+d.ID)
		}
		for _, cond := range f.MNTProfile.PreferredConditions {
			if cond == d.ID {
				score += 30
				notes = append(notes, "preferred for "+d.ID)
			}
		}
	}
	for _, ok := range f.MNTProfile.MacroCompliance {
		if ok {
			score += 10
		}
	}
	for _, ok := range f.MNTProfile.MicroCompliance {
		if ok {
			score += 10
		}
	}
	score += 10 * float64(len(f.MNTProfile.InclusionTags))
	score -= 5 * float64(len(f.MNTProfile.ExclusionTags))
	return score, strings.Join(notes, ", ")
}

// ---- nutrition quality ----

type nutritionQualityTier struct{}

func (nutritionQualityTier) Name() string { return "nutrition_quality" }

func (nutritionQualityTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	n := f.Nutrition
	var score float64
	var notes []string

	if n.Calories > 0 {
		switch share := n.ProteinG * 4 / n.Calories; {
		case share >= 0.25:
			score += 20
			notes = append(notes, "protein-rich")
		case share >= 0.15:
			score += 15
			notes = append(notes, "good protein share")
		case share >= 0.10:
			score += 10
		}
	}
	switch {
	case n.FiberG >= 10:
		score += 15
		notes = append(notes, "high fiber")
	case n.FiberG >= 5:
		score += 10
		notes = append(notes, "good fiber")
	case n.FiberG >= 2.5:
		score += 5
	}
	if n.ProteinG > 0 && n.CarbsG > 0 && n.FatG > 0 {
		score += 10
	}
	switch {
	case n.CalorieDensityKcalPerG <= 1.0:
		score += 10
		notes = append(notes, "low calorie density")
	case n.CalorieDensityKcalPerG <= 2.5:
		score += 7
	case n.CalorieDensityKcalPerG <= 4.0:
		score += 3
	}
	return score, strings.Join(notes, ", ")
}

// ---- ayurveda ----

type ayurvedaTier struct{}

func (ayurvedaTier) Name() string { return "ayurveda" }

func (ayurvedaTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	var score float64
	note := ""
	for _, pref := range rc.Ayurveda.FoodPreferences {
		if pref.FoodID != f.FoodID && pref.FoodID != f.FoodType {
			continue
		}
		switch pref.PreferenceType {
		case "favor":
			score += 50
			note = fmt.Sprintf("favored for %s", rc.Ayurveda.DoshaPrimary)
		case "avoid":
			score -= 30
			note = fmt.Sprintf("avoid for %s", rc.Ayurveda.DoshaPrimary)
		}
	}
	return score, note
}

// ---- variety ----

type varietyTier struct{}

func (varietyTier) Name() string { return "variety" }

func (varietyTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	score := 50.0
	note := ""
	for i, id := range rc.RecentFoods {
		if id != f.FoodID {
			continue
		}
		switch {
		case i < 3:
			score -= float64(3-i) * 15
			note = "served recently"
		case i < 7:
			score -= float64(7-i) * 5
			note = "served this week"
		}
		break
	}
	return score, note
}

// ---- preference ----

type preferenceTier struct{}

func (preferenceTier) Name() string { return "preference" }

func (preferenceTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	for _, id := range rc.Preferences.Dislikes {
		if id == f.FoodID {
			return -50, "client dislike"
		}
	}
	for _, id := range rc.Preferences.Likes {
		if id == f.FoodID {
			return 20, "client favorite"
		}
	}
	return 0, ""
}

// ---- practical ----

type practicalTier struct{}

func (practicalTier) Name() string { return "practical" }

func (practicalTier) Score(f domain.FoodRecord, rc RankContext) (float64, string) {
	var score float64
	if f.ServingSizePerExchangeG >= 30 && f.ServingSizePerExchangeG <= 100 {
		score += 5
	}
	if f.FoodType != "processed" {
		score += 3
	}
	if f.CookingState == "raw" {
		score += 2
	}
	return score, ""
}
