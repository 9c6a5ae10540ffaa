package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
)

// DiscoverTopics scans the configured insurance news sources for trending
// P&C topics using a citation-backed research model and returns 5-8 topic
// suggestions. Failure here is unrecoverable for the caller; there is no
// sensible default topic list.
func DiscoverTopics(ctx context.Context, generator llm.TextGenerator) ([]core.TopicSuggestion, error) {
	prompt := buildTopicPrompt()

	response, err := generator.Generate(ctx, prompt, llm.Options{Temperature: 0.3})
	if err != nil {
		return nil, fmt.Errorf("topic discovery failed: %w", err)
	}

	cleaned := stripCodeFences(response)

	var topics []core.TopicSuggestion
	if err := json.Unmarshal([]byte(cleaned), &topics); err != nil {
		return nil, fmt.Errorf("failed to parse topic suggestions: %w", err)
	}

	logger.Info("Topic discovery completed", "topics_found", len(topics))
	return topics, nil
}

func buildTopicPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, `Search the following insurance news sources for the most relevant and trending stories from the past 2 weeks:
%s

Focus ONLY on:
- Property & Casualty (P&C) insurance topics
- Homeowners insurance
- Auto insurance
- Commercial insurance
- Claims trends
- Agent/broker business topics
- Industry regulations affecting P&C

EXCLUDE completely:
- Health insurance
- Life insurance
- Political topics or partisan content
- International news (US only)
- People news (appointments, obituaries)
- Press releases

Return 6-8 distinct topic ideas as a JSON array with this format:
[
  {
    "topic": "Brief topic title (5-10 words)",
    "description": "2-3 sentence summary of the news angle",
    "relevance": "Why this matters for insurance agents",
    "sources_hint": ["Source1", "Source2"]
  }
]

Return ONLY the JSON array, no other text.`, strings.Join(brand.NewsSources, ", "))

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
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
