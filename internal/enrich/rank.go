package enrich

import (
	"sort"

	"github.com/briteco/brief/internal/core"
)

// RankByImpact orders results HIGH first, then MEDIUM, then LOW. The sort is
// stable: within a level, the discovery order of the pool is preserved.
func RankByImpact(results []core.SearchResult) []core.SearchResult {
	ranked := make([]core.SearchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Impact.Weight() < ranked[j].Impact.Weight()
	})
	return ranked
}
