package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	g "github.com/serpapi/google-search-results-golang"

	"github.com/briteco/brief/internal/logger"
)

// SerpAPIProvider implements Provider using SerpAPI's Google engine
// (premium fallback option).
type SerpAPIProvider struct {
	apiKey    string
	rateLimit time.Duration
	lastCall  time.Time
}

// NewSerpAPIProvider creates a new SerpAPI search provider.
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey:    apiKey,
		rateLimit: 1 * time.Second,
	}
}

// Name returns the name of this provider.
func (s *SerpAPIProvider) Name() string {
	return "SerpAPI"
}

// Search performs a search using SerpAPI.
func (s *SerpAPIProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Respect rate limiting
	if elapsed := time.Since(s.lastCall); elapsed < s.rateLimit {
		time.Sleep(s.rateLimit - elapsed)
	}
	s.lastCall = time.Now()

	parameter := map[string]string{
		"engine":        "google",
		"q":             query,
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"num":           strconv.Itoa(cfg.MaxResults + len(cfg.ExcludeURLs)),
	}
	if cfg.SinceDays > 0 {
		switch {
		case cfg.SinceDays <= 1:
			parameter["tbs"] = "qdr:d"
		case cfg.SinceDays <= 7:
			parameter["tbs"] = "qdr:w"
		case cfg.SinceDays <= 30:
			parameter["tbs"] = "qdr:m"
		default:
			parameter["tbs"] = "qdr:y"
		}
	}

	search := g.NewGoogleSearch(parameter, s.apiKey)
	raw, err := search.GetJSON()
	if err != nil {
		return nil, fmt.Errorf("SerpAPI search failed: %w", err)
	}

	organic, ok := raw["organic_results"].([]interface{})
	if !ok {
		return nil, ErrNoResults
	}

	var results []Result
	for i, item := range organic {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := entry["title"].(string)
		link, _ := entry["link"].(string)
		snippet, _ := entry["snippet"].(string)
		date, _ := entry["date"].(string)
		if title == "" || link == "" {
			continue
		}
		results = append(results, Result{
			URL:         link,
			Title:       title,
			Snippet:     snippet,
			Publisher:   extractDomain(link),
			PublishedAt: date,
			Rank:        i + 1,
		})
	}
	results = capResults(results, cfg)

	logger.Info("SerpAPI search completed", "query", query, "results_found", len(results))

	return results, nil
}
