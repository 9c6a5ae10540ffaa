package research

import (
	"strings"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/logger"
)

// FilterDenylist removes any result whose combined title and snippet text
// contains a denylisted phrase (case-insensitive substring match). Results
// that match nothing pass through unchanged, in order.
func FilterDenylist(results []core.SearchResult) []core.SearchResult {
	kept := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		if phrase := matchDenylist(r); phrase != "" {
			logger.Info("Filtered result", "url", r.URL, "title", r.Title, "matched_phrase", phrase)
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// matchDenylist returns the first denylisted phrase found in the result's
// title or snippet, or "" if the result is clean.
func matchDenylist(r core.SearchResult) string {
	haystack := strings.ToLower(r.Title + " " + r.Snippet)
	for _, phrase := range brand.ExcludePhrases {
		if strings.Contains(haystack, phrase) {
			return phrase
		}
	}
	return ""
}
