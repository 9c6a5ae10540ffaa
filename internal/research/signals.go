package research

import (
	"context"
	"strings"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/logger"
	"github.com/briteco/brief/internal/search"
)

// resultsPerSignal is how many results each signal query requests.
const resultsPerSignal = 5

// Signals is the fixed table of market signals the fan-out search covers.
// Each query template may reference {window}, replaced with the caller's
// time-window tag (e.g. "past 2 weeks").
var Signals = []core.SignalDefinition{
	{Name: "auto_rates", Query: "auto insurance rate changes {window} US"},
	{Name: "homeowners", Query: "homeowners insurance market news {window}"},
	{Name: "catastrophe", Query: "catastrophe losses property insurance claims {window}"},
	{Name: "commercial_lines", Query: "commercial lines insurance trends {window}"},
	{Name: "claims_trends", Query: "P&C insurance claims trends {window}"},
	{Name: "regulation", Query: "state insurance regulation property casualty {window}"},
	{Name: "insurtech", Query: "insurtech technology independent agents {window}"},
	{Name: "agent_business", Query: "independent insurance agency growth advice {window}"},
}

// SignalFanOut issues one gateway call per market signal and merges all
// batches into a single URL-deduplicated pool. Each surviving result is
// tagged with the signal that first surfaced it. A signal's failure is
// logged and skipped; partial signal coverage is a degraded result, not an
// error.
func (s *Searcher) SignalFanOut(ctx context.Context, window string, exclude map[string]struct{}) []core.SearchResult {
	var pool []core.SearchResult
	seen := copyExcludes(exclude)

	for _, signal := range Signals {
		query := strings.ReplaceAll(signal.Query, "{window}", window)

		results, err := s.provider.Search(ctx, query, search.Config{
			MaxResults:  resultsPerSignal,
			ExcludeURLs: exclude,
		})
		if err != nil {
			logger.Warn("Signal query failed, skipping", "signal", signal.Name, "error", err.Error())
			continue
		}

		batch := toCore(results)
		for i := range batch {
			batch[i].SignalSource = signal.Name
		}

		before := len(pool)
		pool = mergeDedup(pool, batch, seen)
		logger.Debug("Signal merged", "signal", signal.Name, "new_results", len(pool)-before)
	}

	logger.Info("Signal fan-out completed", "signals", len(Signals), "pool_size", len(pool))
	return pool
}
