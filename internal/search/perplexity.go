package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/logger"
)

const defaultPerplexityBaseURL = "https://api.perplexity.ai"

// PerplexityProvider implements Provider using Perplexity's citation-backed
// research models through their OpenAI-compatible chat API. Unlike the index
// backends, it asks the model to search and return structured articles.
type PerplexityProvider struct {
	client openai.Client
	model  string
}

// NewPerplexityProvider creates a new Perplexity research-search provider.
func NewPerplexityProvider(apiKey, baseURL, model string) *PerplexityProvider {
	if baseURL == "" {
		baseURL = defaultPerplexityBaseURL
	}
	if model == "" {
		model = "sonar-pro"
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &PerplexityProvider{client: client, model: model}
}

// Name returns the name of this provider.
func (p *PerplexityProvider) Name() string {
	return "Perplexity"
}

type perplexityArticle struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	Date    string `json:"date,omitempty"`
}

// Search asks the research model for recent articles matching the query.
func (p *PerplexityProvider) Search(ctx context.Context, query string, cfg Config) ([]Result, error) {
	prompt := p.buildPrompt(query, cfg)

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response from perplexity")
	}

	content := stripCodeFences(response.Choices[0].Message.Content)

	var articles []perplexityArticle
	if err := json.Unmarshal([]byte(content), &articles); err != nil {
		return nil, fmt.Errorf("failed to parse perplexity response: %w", err)
	}

	results := make([]Result, 0, len(articles))
	for i, a := range articles {
		if a.URL == "" || a.Title == "" {
			continue
		}
		publisher := a.Source
		if publisher == "" {
			publisher = extractDomain(a.URL)
		}
		results = append(results, Result{
			URL:         a.URL,
			Title:       a.Title,
			Snippet:     a.Summary,
			Publisher:   publisher,
			PublishedAt: a.Date,
			Rank:        i + 1,
		})
	}
	results = capResults(results, cfg)

	logger.Info("Perplexity search completed", "query", query, "results_found", len(results))

	return results, nil
}

func (p *PerplexityProvider) buildPrompt(query string, cfg Config) string {
	var b strings.Builder

	days := cfg.SinceDays
	if days <= 0 {
		days = 30
	}
	fmt.Fprintf(&b, "Research this insurance topic: %q\n\n", query)
	fmt.Fprintf(&b, "Find up to %d recent articles (within the past %d days) from different sources.\n\n", cfg.MaxResults, days)
	b.WriteString(brand.SearchSourcesPrompt())

	if len(cfg.ExcludeURLs) > 0 {
		b.WriteString("\nDo NOT include any of these already-used URLs:\n")
		for u := range cfg.ExcludeURLs {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}

	b.WriteString(`
For each article provide the exact title, the source website name, the real
working URL, a 2-3 sentence summary, and the publication date if available.

Return as a JSON array:
[
  {
    "title": "Exact article headline",
    "source": "Source name (e.g., Insurance Journal)",
    "url": "https://full-url-to-article",
    "summary": "2-3 sentence summary",
    "date": "Publication date if available"
  }
]

IMPORTANT: Only include real articles with working URLs. Return ONLY the JSON array.`)

	return b.String()
}

// stripCodeFences removes an optional Markdown code fence wrapper so the
// remainder can be JSON-decoded.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
