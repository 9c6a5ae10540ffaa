package search

import (
	"context"
)

// Provider is the uniform interface over web-search and research-search
// backends. Implementations must honor cfg.ExcludeURLs by omitting any
// result whose URL is in the set, and must return at most cfg.MaxResults
// entries. Providers signal failure by returning an error; callers decide
// whether one failed call aborts anything.
type Provider interface {
	Search(ctx context.Context, query string, cfg Config) ([]Result, error)
	Name() string
}

// Config holds configuration for one search request.
type Config struct {
	MaxResults  int                 // Maximum number of results to return
	SinceDays   int                 // Only return results newer than this many days (0 = no limit)
	ExcludeURLs map[string]struct{} // URLs the caller wants kept out of the results
}

// Result represents a unified search result.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Publisher   string `json:"publisher"`
	PublishedAt string `json:"published_at,omitempty"`
	Rank        int    `json:"rank"`
}

// ProviderType identifies a search backend.
type ProviderType string

const (
	ProviderTypeTavily     ProviderType = "tavily"
	ProviderTypeSerpAPI    ProviderType = "serpapi"
	ProviderTypePerplexity ProviderType = "perplexity"
	ProviderTypeMock       ProviderType = "mock"
)

// Factory creates search providers by type.
type Factory struct{}

// NewFactory creates a new provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateProvider creates a search provider of the specified type. Missing
// credentials are reported here, before any network call is attempted.
func (f *Factory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeTavily:
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewTavilyProvider(apiKey), nil
	case ProviderTypeSerpAPI:
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case ProviderTypePerplexity:
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewPerplexityProvider(apiKey, config["base_url"], config["model"]), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// excluded reports whether a URL is in the exclude set.
func excluded(url string, cfg Config) bool {
	if len(cfg.ExcludeURLs) == 0 {
		return false
	}
	_, ok := cfg.ExcludeURLs[url]
	return ok
}

// capResults applies the exclude set and max-count contract to a raw
// provider result list, preserving order.
func capResults(results []Result, cfg Config) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if excluded(r.URL, cfg) {
			continue
		}
		out = append(out, r)
		if cfg.MaxResults > 0 && len(out) >= cfg.MaxResults {
			break
		}
	}
	return out
}
