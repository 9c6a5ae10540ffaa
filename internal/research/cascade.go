package research

import (
	"context"
	"math"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/logger"
	"github.com/briteco/brief/internal/search"
)

const (
	// overfetchFactor requests more results than needed per query so URL
	// deduplication does not starve the pool.
	overfetchFactor = 1.5
	// maxPerCall bounds a single provider request.
	maxPerCall = 20
)

// BuildCascade constructs the standard three-tier query list for a user
// topic: the specific query, a broadened core-terms variant, and a generic
// fallback that always yields something.
func BuildCascade(topic string, target int) []core.QuerySpec {
	return []core.QuerySpec{
		{Query: topic + " insurance agents news", MaxResults: target},
		{Query: topic + " property casualty insurance", MaxResults: target},
		{Query: "P&C insurance industry news", MaxResults: target},
	}
}

// CascadeSearch iterates an ordered query list from most specific to most
// general, merging each batch into a URL-deduplicated pool, and stops as
// soon as the pool reaches target. A single failed query is logged and
// skipped; it never aborts the cascade. Returns at most target results in
// first-seen order.
func (s *Searcher) CascadeSearch(ctx context.Context, queries []core.QuerySpec, target int, exclude map[string]struct{}) []core.SearchResult {
	var pool []core.SearchResult
	seen := copyExcludes(exclude)

	for _, spec := range queries {
		if len(pool) >= target {
			break
		}

		want := spec.MaxResults
		if want <= 0 {
			want = target - len(pool)
		}
		fetch := int(math.Ceil(float64(want) * overfetchFactor))
		if fetch > maxPerCall {
			fetch = maxPerCall
		}

		results, err := s.provider.Search(ctx, spec.Query, search.Config{
			MaxResults:  fetch,
			ExcludeURLs: exclude,
		})
		if err != nil {
			logger.Warn("Cascade query failed, skipping", "query", spec.Query, "error", err.Error())
			continue
		}

		before := len(pool)
		pool = mergeDedup(pool, toCore(results), seen)
		logger.Debug("Cascade query merged", "query", spec.Query, "new_results", len(pool)-before, "pool_size", len(pool))
	}

	if len(pool) > target {
		pool = pool[:target]
	}
	return pool
}
