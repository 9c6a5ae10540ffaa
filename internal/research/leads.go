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

// ResearchArticles finds 4-6 recent source articles covering different angles
// of a topic, for the Spotlight section.
func ResearchArticles(ctx context.Context, generator llm.TextGenerator, topic string) ([]core.ArticleLead, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required for article research")
	}

	prompt := fmt.Sprintf(`Research this insurance topic in depth: %q

Search these sources: %s

Find 4-6 recent articles (within past 30 days) that cover different angles of this topic.

For each article, provide:
- The exact article title
- The source website name
- The URL (must be a real, working URL)
- A 2-3 sentence summary of the article's key points
- Key statistics or quotes if available

Return as JSON array:
[
  {
    "title": "Exact article headline",
    "source": "Source name (e.g., Insurance Journal)",
    "url": "https://full-url-to-article",
    "summary": "2-3 sentence summary",
    "key_points": ["Point 1", "Point 2"],
    "date": "Publication date if available"
  }
]

IMPORTANT: Only include real articles with working URLs. Return ONLY the JSON array.`,
		topic, strings.Join(brand.NewsSources, ", "))

	response, err := generator.Generate(ctx, prompt, llm.Options{Temperature: 0.2})
	if err != nil {
		return nil, fmt.Errorf("article research failed: %w", err)
	}

	var articles []core.ArticleLead
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &articles); err != nil {
		return nil, fmt.Errorf("failed to parse article leads: %w", err)
	}

	logger.Info("Article research completed", "topic", topic, "articles_found", len(articles))
	return articles, nil
}

// ResearchClaims finds unusual or notable P&C claims stories for the Curious
// Claims section.
func ResearchClaims(ctx context.Context, generator llm.TextGenerator) ([]core.ClaimLead, error) {
	prompt := `Search for unusual, interesting, or outrageous insurance claims stories from recent news.

Look for stories that are:
- Quirky or unexpected claims
- Large or notable settlements
- Unusual circumstances
- Interesting legal outcomes
- Stories that would engage insurance professionals

Focus on P&C claims (property, auto, liability) - NOT health or life insurance.
US stories preferred.

Return 5-6 story options as JSON:
[
  {
    "headline": "Catchy headline for the story",
    "summary": "2-3 sentence summary of what happened",
    "source": "News source name",
    "url": "URL to the original story",
    "claim_type": "Type of claim (auto, property, liability, etc.)",
    "interest_factor": "What makes this story interesting"
  }
]

Return ONLY the JSON array.`

	response, err := generator.Generate(ctx, prompt, llm.Options{Temperature: 0.4})
	if err != nil {
		return nil, fmt.Errorf("claims research failed: %w", err)
	}

	var claims []core.ClaimLead
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &claims); err != nil {
		return nil, fmt.Errorf("failed to parse claim leads: %w", err)
	}

	logger.Info("Claims research completed", "stories_found", len(claims))
	return claims, nil
}

// ResearchAgentTips finds 5-6 candidate advice topics for the Agent Advantage
// section. topicHint narrows the search and may be empty.
func ResearchAgentTips(ctx context.Context, generator llm.TextGenerator, topicHint string) ([]core.TipLead, error) {
	topicContext := ""
	if topicHint != "" {
		topicContext = fmt.Sprintf(" related to %q", topicHint)
	}

	prompt := fmt.Sprintf(`Find actionable tips and advice for independent insurance agents%s.

Search for recent articles, guides, or expert advice that help agents:
- Grow their business
- Improve client relationships
- Navigate market challenges
- Use technology effectively
- Handle claims better
- Increase sales/retention

Return 5-6 topic options for an "Agent Advantage" newsletter section:
[
  {
    "title": "Tip topic title (5-10 words)",
    "angle": "The specific advice angle",
    "key_points": ["Point 1", "Point 2", "Point 3", "Point 4", "Point 5"],
    "source_articles": ["Article title 1", "Article title 2"],
    "relevance": "Why this matters now for agents"
  }
]

Return ONLY the JSON array.`, topicContext)

	response, err := generator.Generate(ctx, prompt, llm.Options{Temperature: 0.4})
	if err != nil {
		return nil, fmt.Errorf("agent tips research failed: %w", err)
	}

	var tips []core.TipLead
	if err := json.Unmarshal([]byte(stripCodeFences(response)), &tips); err != nil {
		return nil, fmt.Errorf("failed to parse tip leads: %w", err)
	}

	logger.Info("Agent tips research completed", "topics_found", len(tips))
	return tips, nil
}
