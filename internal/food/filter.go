// Package food turns the knowledge-base catalog into a ranked, deduplicated
// shortlist per exchange category. Hard safety exclusions come first and are
// absolute; everything after is ordering, never admission.
package food

import (
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

const (
	// A food whose per-100g sodium exceeds this multiple of the daily
	// sodium ceiling is excluded outright.
	sodiumExtremeMultiple = 5.0
	// A food deriving more than this share of calories from carbohydrate
	// is excluded outright.
	carbCalorieShareMax = 0.95

	defaultSodiumDailyMaxMG = 2300
)

// FilterInput bundles what the hard-exclusion pass needs.
type FilterInput struct {
	Diagnoses []domain.Diagnosis
	MNT       domain.MNTContext
}

// Filter applies the hard exclusions to a candidate list. It returns the
// survivors in input order and a food-ID to reason trace for the excluded.
func Filter(candidates []domain.FoodRecord, in FilterInput) ([]domain.FoodRecord, map[string]string) {
	excludedTags := make(map[string]bool, len(in.MNT.FoodExclusions))
	for _, tag := range in.MNT.FoodExclusions {
		excludedTags[tag] = true
	}
	contraindicated := make(map[string]bool, len(in.MNT.Contraindications))
	for _, tag := range in.MNT.Contraindications {
		contraindicated[tag] = true
	}

	sodiumCeiling := defaultSodiumDailyMaxMG * sodiumExtremeMultiple
	if bound, ok := in.MNT.MicroConstraints["sodium_mg"]; ok && bound.Max != nil {
		sodiumCeiling = *bound.Max * sodiumExtremeMultiple
	}

	var kept []domain.FoodRecord
	excluded := make(map[string]string)

	for _, f := range candidates {
		if reason := excludeReason(f, in.Diagnoses, excludedTags, contraindicated, sodiumCeiling); reason != "" {
			excluded[f.FoodID] = reason
			continue
		}
		kept = append(kept, f)
	}
	return kept, excluded
}

func excludeReason(f domain.FoodRecord, diagnoses []domain.Diagnosis, excludedTags, contraindicated map[string]bool, sodiumCeiling float64) string {
	// Tier 1: therapy exclusions by ID or tag.
	if excludedTags[f.FoodID] {
		return "excluded by therapy rule"
	}
	for _, tag := range f.MNTProfile.ExclusionTags {
		if excludedTags[tag] {
			return fmt.Sprintf("carries excluded tag %s", tag)
		}
	}
	for _, tag := range f.MNTProfile.Contraindications {
		if contraindicated[tag] {
			return fmt.Sprintf("contraindicated: %s", tag)
		}
	}

	for _, d := range diagnoses {
		// The per-condition compatibility record is authoritative; the
		// coarse safety tag only decides when no record exists.
		if verdict, ok := f.Compatibility[d.ID]; ok {
			if verdict == "contraindicated" {
				return fmt.Sprintf("contraindicated for %s", d.ID)
			}
			continue
		}
		if d.ID == "type_2_diabetes" {
			if safe, tagged := f.MNTProfile.MedicalTags["diabetic_safe"]; tagged && !safe {
				return "not diabetic safe"
			}
		}
	}

	// Tier 2: extreme nutrient values per 100g.
	if f.Nutrition.SodiumMG > sodiumCeiling {
		return fmt.Sprintf("sodium %.0fmg/100g exceeds extreme-value ceiling", f.Nutrition.SodiumMG)
	}
	if f.Nutrition.Calories > 0 && f.Nutrition.CarbsG*4 > carbCalorieShareMax*f.Nutrition.Calories {
		return "nearly all calories from carbohydrate"
	}
	return ""
}
