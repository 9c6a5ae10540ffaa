// Package research implements the search aggregation pipeline: cascading
// multi-query search, signal fan-out, URL deduplication, and the content
// denylist filter. All pools are request-local; the signal table and
// denylist are process-wide static data.
package research

import (
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/search"
)

// Searcher runs research queries against a search provider gateway.
type Searcher struct {
	provider search.Provider
}

// NewSearcher creates a searcher backed by the given provider.
func NewSearcher(provider search.Provider) *Searcher {
	return &Searcher{provider: provider}
}

// Provider exposes the underlying gateway (for handlers that need its name).
func (s *Searcher) Provider() search.Provider {
	return s.provider
}

// toCore converts gateway results into domain results.
func toCore(results []search.Result) []core.SearchResult {
	out := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, core.SearchResult{
			URL:         r.URL,
			Title:       r.Title,
			Publisher:   r.Publisher,
			PublishedAt: r.PublishedAt,
			Snippet:     r.Snippet,
		})
	}
	return out
}

// mergeDedup appends batch entries into pool, skipping any URL already
// present. First occurrence wins; later duplicates are dropped. seen is
// updated in place and returned together with the grown pool.
func mergeDedup(pool []core.SearchResult, batch []core.SearchResult, seen map[string]struct{}) []core.SearchResult {
	for _, r := range batch {
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		pool = append(pool, r)
	}
	return pool
}

// copyExcludes builds the seen-set for a new merge pass, pre-populated with
// the caller's exclude URLs so providers that ignore the exclude contract
// still cannot leak them into the pool.
func copyExcludes(exclude map[string]struct{}) map[string]struct{} {
	seen := make(map[string]struct{}, len(exclude))
	for u := range exclude {
		seen[u] = struct{}{}
	}
	return seen
}
