package food

import (
	"strings"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// genericWords never form a dedup group: they name assortments, not foods.
var genericWords = map[string]bool{
	"mixed":       true,
	"various":     true,
	"assorted":    true,
	"other":       true,
	"combination": true,
}

// groupKey derives the identity a food is deduplicated under. A scientific
// name in parentheses is the strongest signal; otherwise the display name
// up to the first comma. Names too short or too generic get no group and
// survive on their own.
func groupKey(f domain.FoodRecord) string {
	name := f.DisplayName

	if open := strings.Index(name, "("); open >= 0 {
		if close := strings.Index(name[open:], ")"); close > 0 {
			sci := strings.ToLower(strings.TrimSpace(name[open+1 : open+close]))
			if len(sci) > 2 && !genericWords[sci] {
				return sci
			}
		}
	}

	base := name
	if comma := strings.Index(base, ","); comma >= 0 {
		base = base[:comma]
	}
	base = strings.ToLower(strings.TrimSpace(base))
	if len(base) <= 2 || genericWords[base] {
		return ""
	}
	return base
}

// Dedupe collapses each group to its best-ranked member, attaching a
// trace of the suppressed variants to the survivor. Input order is rank
// order and is preserved.
func Dedupe(ranked []domain.RankedFood) []domain.RankedFood {
	groups := make(map[string][]domain.RankedFood)
	for _, rf := range ranked {
		key := groupKey(rf.FoodRecord)
		if key == "" {
			key = rf.FoodID
		}
		groups[key] = append(groups[key], rf)
	}

	out := make([]domain.RankedFood, 0, len(groups))
	seen := make(map[string]bool)
	for _, rf := range ranked {
		key := groupKey(rf.FoodRecord)
		if key == "" {
			key = rf.FoodID
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		group := groups[key]
		if len(group) > 1 {
			record := &domain.DedupRecord{
				GroupKey:        key,
				VariationsFound: len(group),
			}
			for _, variant := range group[1:] {
				record.VariantFoodIDs = append(record.VariantFoodIDs, variant.FoodID)
				record.VariantNames = append(record.VariantNames, variant.DisplayName)
			}
			rf.Ranking.Dedup = record
		}
		out = append(out, rf)
	}
	return out
}
