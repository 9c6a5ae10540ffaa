package research

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/search"
)

func result(url, title string) search.Result {
	return search.Result{URL: url, Title: title, Snippet: "snippet for " + title, Publisher: "example.com"}
}

func TestMergeDedupFirstSeenWins(t *testing.T) {
	seen := map[string]struct{}{}
	pool := mergeDedup(nil, []core.SearchResult{
		{URL: "https://a.com/1", Title: "first"},
		{URL: "https://b.com/2", Title: "second"},
	}, seen)
	pool = mergeDedup(pool, []core.SearchResult{
		{URL: "https://a.com/1", Title: "duplicate with different title"},
		{URL: "https://c.com/3", Title: "third"},
	}, seen)

	if len(pool) != 3 {
		t.Fatalf("Expected 3 unique results, got %d", len(pool))
	}
	if pool[0].Title != "first" {
		t.Errorf("First occurrence did not win: got title %q", pool[0].Title)
	}
	urls := map[string]int{}
	for _, r := range pool {
		urls[r.URL]++
	}
	for u, n := range urls {
		if n > 1 {
			t.Errorf("URL %s appears %d times in merged pool", u, n)
		}
	}
}

func TestCascadeEarlyStop(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]search.Result{
		result("https://a.com/1", "one"),
		result("https://a.com/2", "two"),
		result("https://a.com/3", "three"),
	})
	searcher := NewSearcher(provider)

	queries := []core.QuerySpec{
		{Query: "specific query"},
		{Query: "broadened query"},
		{Query: "generic fallback"},
	}
	pool := searcher.CascadeSearch(context.Background(), queries, 3, nil)

	if len(pool) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(pool))
	}
	if provider.CallCount != 1 {
		t.Errorf("Expected early stop after 1 query, provider was called %d times", provider.CallCount)
	}
}

func TestCascadeContinuesPastFailure(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetError(search.ErrProviderUnavailable)
	searcher := NewSearcher(provider)

	queries := []core.QuerySpec{
		{Query: "q1"},
		{Query: "q2"},
		{Query: "q3"},
	}
	pool := searcher.CascadeSearch(context.Background(), queries, 5, nil)

	if len(pool) != 0 {
		t.Fatalf("Expected empty pool from failing provider, got %d results", len(pool))
	}
	if provider.CallCount != 3 {
		t.Errorf("Expected all 3 queries attempted despite failures, got %d calls", provider.CallCount)
	}
}

func TestCascadeRespectsExcludeSet(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetResults([]search.Result{
		result("https://a.com/old", "already shown"),
		result("https://a.com/new", "fresh"),
	})
	searcher := NewSearcher(provider)

	exclude := map[string]struct{}{"https://a.com/old": {}}
	pool := searcher.CascadeSearch(context.Background(), []core.QuerySpec{{Query: "q"}}, 5, exclude)

	for _, r := range pool {
		if r.URL == "https://a.com/old" {
			t.Errorf("Excluded URL leaked into cascade pool")
		}
	}
}

func TestSignalFanOutDedupAndTagging(t *testing.T) {
	provider := search.NewMockProvider()
	searcher := NewSearcher(provider)

	// 8 signals, 2 results each: 16 raw results, 3 of which duplicate a URL
	// first seen by an earlier signal. Expect 13 unique entries.
	window := "past 2 weeks"
	for i, signal := range Signals {
		query := strings.ReplaceAll(signal.Query, "{window}", window)
		first := result(fmt.Sprintf("https://news.example.com/%s", signal.Name), signal.Name+" story")
		second := result(fmt.Sprintf("https://news.example.com/extra-%d", i), signal.Name+" extra")
		if i >= 5 {
			// Signals 6-8 each re-surface the first signal's lead URL.
			second = result("https://news.example.com/auto_rates", "duplicate of auto story")
		}
		provider.SetResultsForQuery(query, []search.Result{first, second})
	}

	pool := searcher.SignalFanOut(context.Background(), window, nil)

	if len(pool) != 13 {
		t.Fatalf("Expected 13 unique entries, got %d", len(pool))
	}
	for _, r := range pool {
		if r.SignalSource == "" {
			t.Errorf("Result %s missing signal_source tag", r.URL)
		}
	}
	// The shared URL must carry the tag of the signal that saw it first.
	for _, r := range pool {
		if r.URL == "https://news.example.com/auto_rates" && r.SignalSource != "auto_rates" {
			t.Errorf("Shared URL tagged %q, expected first-seen signal auto_rates", r.SignalSource)
		}
	}
	if provider.CallCount != len(Signals) {
		t.Errorf("Expected one call per signal (%d), got %d", len(Signals), provider.CallCount)
	}
}

func TestSignalFanOutSurvivesFailures(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetError(search.ErrProviderUnavailable)
	searcher := NewSearcher(provider)

	pool := searcher.SignalFanOut(context.Background(), "past week", nil)
	if len(pool) != 0 {
		t.Fatalf("Expected empty pool, got %d", len(pool))
	}
	if provider.CallCount != len(Signals) {
		t.Errorf("Expected all %d signals attempted, got %d calls", len(Signals), provider.CallCount)
	}
}

func TestFilterDenylist(t *testing.T) {
	results := []core.SearchResult{
		{URL: "https://a.com/1", Title: "Hurricane losses push homeowners premiums up", Snippet: "Catastrophe claims rise"},
		{URL: "https://a.com/2", Title: "Agency Names New CEO", Snippet: "Leadership announcement"},
		{URL: "https://a.com/3", Title: "Quiet quarter for carriers", Snippet: "Veteran executive steps down after 20 years"},
		{URL: "https://a.com/4", Title: "Telematics adoption grows among agents", Snippet: "Usage-based auto programs expand"},
	}

	kept := FilterDenylist(results)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 results after filtering, got %d", len(kept))
	}
	if kept[0].URL != "https://a.com/1" || kept[1].URL != "https://a.com/4" {
		t.Errorf("Filter changed order or kept wrong results: %+v", kept)
	}
}

func TestFilterDenylistCaseInsensitive(t *testing.T) {
	results := []core.SearchResult{
		{URL: "https://a.com/1", Title: "Broker PROMOTED TO regional lead"},
	}
	if kept := FilterDenylist(results); len(kept) != 0 {
		t.Errorf("Expected case-insensitive match to drop result, kept %d", len(kept))
	}
}

func TestFilterPreservesCleanResults(t *testing.T) {
	results := []core.SearchResult{
		{URL: "https://a.com/1", Title: "Flood maps redrawn", Snippet: "FEMA updates", SignalSource: "catastrophe"},
	}
	kept := FilterDenylist(results)
	if len(kept) != 1 {
		t.Fatalf("Expected clean result preserved, got %d", len(kept))
	}
	if !reflect.DeepEqual(kept[0], results[0]) {
		t.Errorf("Filter mutated a clean result: %+v", kept[0])
	}
}

func TestBuildCascadeShape(t *testing.T) {
	queries := BuildCascade("wildfire deductibles", 6)
	if len(queries) != 3 {
		t.Fatalf("Expected 3-tier cascade, got %d", len(queries))
	}
	if !strings.Contains(queries[0].Query, "wildfire deductibles") {
		t.Errorf("Most specific tier should contain the topic: %q", queries[0].Query)
	}
	if strings.Contains(queries[2].Query, "wildfire") {
		t.Errorf("Fallback tier should be generic: %q", queries[2].Query)
	}
}
