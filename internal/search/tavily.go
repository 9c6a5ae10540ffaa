package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/briteco/brief/internal/logger"
)

const tavilyAPIURL = "https://api.tavily.com/search"

// TavilyProvider implements Provider using the Tavily Search API, the
// default general web/news backend.
type TavilyProvider struct {
	apiKey string
	client *http.Client
}

// NewTavilyProvider creates a new Tavily search provider.
func NewTavilyProvider(apiKey string) *TavilyProvider {
	return &TavilyProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the name of this provider.
func (t *TavilyProvider) Name() string {
	return "Tavily"
}

type tavilyRequest struct {
	Query       string `json:"query"`
	APIKey      string `json:"api_key"`
	SearchDepth string `json:"search_depth,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Days        int    `json:"days,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date,omitempty"`
	} `json:"results"`
}

// Search performs a search using the Tavily API.
func (t *TavilyProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	reqBody := tavilyRequest{
		Query:       query,
		APIKey:      t.apiKey,
		SearchDepth: "basic",
		// Overfetch so the exclude set does not starve the caller.
		MaxResults: cfg.MaxResults + len(cfg.ExcludeURLs),
	}
	if cfg.SinceDays > 0 {
		reqBody.Topic = "news"
		reqBody.Days = cfg.SinceDays
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Tavily API error: %d %s", resp.StatusCode, string(body))
	}

	var apiResponse tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse Tavily response: %w", err)
	}

	results := make([]Result, 0, len(apiResponse.Results))
	for i, item := range apiResponse.Results {
		results = append(results, Result{
			URL:         item.URL,
			Title:       item.Title,
			Snippet:     item.Content,
			Publisher:   extractDomain(item.URL),
			PublishedAt: item.PublishedDate,
			Rank:        i + 1,
		})
	}
	results = capResults(results, cfg)

	logger.Info("Tavily search completed", "query", query, "results_found", len(results))

	return results, nil
}

// extractDomain extracts the domain name from a URL.
func extractDomain(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	domain := parsed.Hostname()
	return strings.TrimPrefix(domain, "www.")
}
