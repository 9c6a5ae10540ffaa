package sections

import (
	"context"
	"fmt"
	"strings"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
)

// roundupSize is the fixed bullet count of the News Roundup section.
const roundupSize = 5

// GenerateRoundup writes the Insurance News Roundup: five headline-style
// bullets with source hyperlinks, researched by a citation-backed model.
// Fewer than five usable items is accepted as a partial result; zero is an
// error.
func (g *Generator) GenerateRoundup(ctx context.Context) (*core.NewsRoundup, error) {
	prompt := fmt.Sprintf(`Find %d recent insurance news headlines that would interest P&C insurance agents.

Search: %s

Requirements:
- Each should be a single, catchy headline-style sentence
- Include hyperlink to the source
- Mix of topics: market trends, regulations, technology, claims, agent business
- US-focused, P&C only (no health, life, international, political)

Return as JSON:
[
  {
    "headline": "Catchy one-sentence news item with key detail or statistic",
    "source": "Source name",
    "url": "Full URL to article",
    "category": "market|regulation|technology|claims|business"
  }
]

Return ONLY %d items as JSON array.`,
		roundupSize, strings.Join(brand.NewsSources, ", "), roundupSize)

	var items []core.RoundupItem
	if err := g.generateJSON(ctx, prompt, llm.Options{Temperature: 0.3}, &items); err != nil {
		return nil, fmt.Errorf("roundup generation failed: %w", err)
	}

	// Keep only items with the headline and link the section depends on.
	usable := items[:0]
	for _, item := range items {
		if item.Headline != "" && item.URL != "" {
			usable = append(usable, item)
		}
	}
	if len(usable) == 0 {
		return nil, ErrEmptySection
	}
	if len(usable) > roundupSize {
		usable = usable[:roundupSize]
	}
	if len(usable) < roundupSize {
		logger.Warn("Roundup came back short", "wanted", roundupSize, "got", len(usable))
	}

	logger.Info("News Roundup generated", "items", len(usable))
	return &core.NewsRoundup{Items: usable}, nil
}
