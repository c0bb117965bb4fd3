package food

import (
	"testing"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

func t2dInput() FilterInput {
	return FilterInput{
		Diagnoses: []domain.Diagnosis{{ID: "type_2_diabetes", SeverityScore: 7}},
		MNT: domain.MNTContext{
			MacroConstraints: map[string]domain.Bound{},
			MicroConstraints: map[string]domain.Bound{},
			FoodExclusions:   []string{"refined_sugar", "sugary_beverages"},
		},
	}
}

func TestFilter_TherapyExclusions(t *testing.T) {
	kept, excluded := Filter(kb.Builtin().Foods(), t2dInput())

	keptIDs := make(map[string]bool)
	for _, f := range kept {
		keptIDs[f.FoodID] = true
	}

	// bread_white carries the refined_sugar tag and jaggery is
	// contraindicated for diabetes; neither may survive.
	for _, id := range []string{"bread_white", "jaggery"} {
		if keptIDs[id] {
			t.Errorf("%s survived the hard exclusions", id)
		}
		if excluded[id] == "" {
			t.Errorf("%s has no exclusion reason", id)
		}
	}

	// A caution compatibility record is authoritative: the coarse
	// diabetic_safe=false tag must not exclude these.
	for _, id := range []string{"banana_ripe", "potato", "wheat_flour_refined"} {
		if !keptIDs[id] {
			t.Errorf("%s excluded despite its caution record", id)
		}
	}
}

func TestFilter_SafetyTagDecidesWithoutRecord(t *testing.T) {
	noRecord := domain.FoodRecord{
		FoodID:      "mystery_sweet",
		DisplayName: "Mystery sweet",
		MNTProfile: domain.MNTProfile{
			MedicalTags: map[string]bool{"diabetic_safe": false},
		},
	}
	kept, excluded := Filter([]domain.FoodRecord{noRecord}, t2dInput())
	if len(kept) != 0 {
		t.Errorf("food with diabetic_safe=false and no record survived")
	}
	if excluded["mystery_sweet"] == "" {
		t.Error("no exclusion reason recorded")
	}
}

func TestFilter_ExtremeValues(t *testing.T) {
	salty := domain.FoodRecord{
		FoodID:    "salt_bomb",
		Nutrition: domain.FoodNutrition{SodiumMG: 12000, Calories: 300, CarbsG: 10},
	}
	carby := domain.FoodRecord{
		FoodID:    "pure_starch",
		Nutrition: domain.FoodNutrition{Calories: 100, CarbsG: 25},
	}

	in := FilterInput{MNT: domain.MNTContext{MicroConstraints: map[string]domain.Bound{}}}
	kept, excluded := Filter([]domain.FoodRecord{salty, carby}, in)
	if len(kept) != 0 {
		t.Errorf("extreme foods survived: %v", kept)
	}
	if excluded["salt_bomb"] == "" || excluded["pure_starch"] == "" {
		t.Errorf("missing exclusion reasons: %v", excluded)
	}
}

func TestFilter_SodiumCeilingFollowsTherapy(t *testing.T) {
	// 8000mg/100g passes the default ceiling (5 x 2300) but not the
	// tightened one (5 x 1500).
	food := domain.FoodRecord{
		FoodID:    "papad_plain",
		Nutrition: domain.FoodNutrition{SodiumMG: 8000, Calories: 300, CarbsG: 10},
	}

	in := FilterInput{MNT: domain.MNTContext{MicroConstraints: map[string]domain.Bound{}}}
	if kept, _ := Filter([]domain.FoodRecord{food}, in); len(kept) != 1 {
		t.Error("excluded under the default sodium ceiling")
	}

	in.MNT.MicroConstraints["sodium_mg"] = domain.Bound{Max: domain.Float(1500)}
	if kept, _ := Filter([]domain.FoodRecord{food}, in); len(kept) != 0 {
		t.Error("survived the tightened sodium ceiling")
	}
}

func TestShortlist_ExclusionInvariant(t *testing.T) {
	eng := NewEngine(kb.Builtin(), nil)
	rc := RankContext{
		Diagnoses: t2dInput().Diagnoses,
		MNT:       t2dInput().MNT,
		Preferences: domain.Preferences{
			Dislikes: []string{"spinach"},
		},
	}

	shortlist, err := eng.Shortlist(rc)
	if err != nil {
		t.Fatalf("Shortlist: %v", err)
	}

	for category, foods := range shortlist {
		if len(foods) > maxPerCategory {
			t.Errorf("%s has %d foods, cap is %d", category, len(foods), maxPerCategory)
		}
		for i, rf := range foods {
			if rf.FoodID == "bread_white" || rf.FoodID == "jaggery" {
				t.Errorf("excluded food %s reached the %s shortlist", rf.FoodID, category)
			}
			if rf.FoodID == "spinach" {
				t.Error("disliked food reached the shortlist")
			}
			if rf.Ranking.Rank != i+1 {
				t.Errorf("%s/%s rank = %d, want %d", category, rf.FoodID, rf.Ranking.Rank, i+1)
			}
		}
	}

	if len(shortlist["pulse"]) == 0 {
		t.Error("pulse category empty; safe pulses exist in the catalog")
	}
}
