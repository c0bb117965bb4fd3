package food

import (
	"sort"

	"github.com/kosha-health/ncp-engine/internal/domain"
	"github.com/kosha-health/ncp-engine/internal/kb"
)

// maxPerCategory caps each category's shortlist after deduplication.
const maxPerCategory = 15

// Engine produces the per-category food shortlists.
type Engine struct {
	KB     *kb.KB
	Ranker *Ranker
}

// NewEngine creates a food engine. disabledTiers names ranking tiers to
// switch off; nil enables all of them.
func NewEngine(k *kb.KB, disabledTiers map[string]bool) *Engine {
	return &Engine{KB: k, Ranker: NewRanker(disabledTiers)}
}

// Shortlist filters, ranks, and deduplicates the catalog per exchange
// category. Disliked foods are dropped after scoring but before
// deduplication so a disliked variant never represents its group.
func (e *Engine) Shortlist(rc RankContext) (map[string][]domain.RankedFood, error) {
	in := FilterInput{Diagnoses: rc.Diagnoses, MNT: rc.MNT}
	disliked := make(map[string]bool, len(rc.Preferences.Dislikes))
	for _, id := range rc.Preferences.Dislikes {
		disliked[id] = true
	}

	out := make(map[string][]domain.RankedFood)
	for category, candidates := range e.KB.FoodsByCategory() {
		kept, _ := Filter(candidates, in)
		if len(kept) == 0 {
			continue
		}

		ranked := e.Ranker.Rank(kept, rc)

		liked := ranked[:0]
		for _, rf := range ranked {
			if !disliked[rf.FoodID] {
				liked = append(liked, rf)
			}
		}

		deduped := Dedupe(liked)
		if len(deduped) > maxPerCategory {
			deduped = deduped[:maxPerCategory]
		}
		for i := range deduped {
			deduped[i].Ranking.Rank = i + 1
		}
		if len(deduped) > 0 {
			out[category] = deduped
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNoRankedFoods
	}
	return out, nil
}

// Categories returns the shortlist's categories ordered by shortlist
// size, largest first, then alphabetically. The allocator consumes them
// in descending exchange-count order; this ordering is for display.
func Categories(shortlist map[string][]domain.RankedFood) []string {
	cats := make([]string, 0, len(shortlist))
	for cat := range shortlist {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if len(shortlist[cats[i]]) != len(shortlist[cats[j]]) {
			return len(shortlist[cats[i]]) > len(shortlist[cats[j]])
		}
		return cats[i] < cats[j]
	})
	return cats
}
