package sections

import (
	"context"
	"fmt"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
)

// GenerateBriteSpot writes The Brite Spot company-news section.
func (g *Generator) GenerateBriteSpot(ctx context.Context, title, topic, details string) (*core.BriteSpot, error) {
	if title == "" || topic == "" {
		return nil, fmt.Errorf("title and topic are required for the Brite Spot section")
	}
	if details == "" {
		details = "None provided"
	}

	prompt := fmt.Sprintf(`Write content for "The Brite Spot" section of an insurance agent newsletter.

%s

Title: %s
Topic/Announcement: %s
Additional details: %s

Requirements:
- Sub-header title: Use the provided title (max 15 words)
- Body: Maximum 100 words
- Announce a new feature, tool, product, or company news
- Professional but engaging tone
- Clear value proposition for agents

Return as JSON:
{
  "title": "The sub-header title",
  "body": "The main body text (max 100 words)"
}

Return ONLY the JSON.`, brand.StyleGuideForPrompt("brite_spot"), title, topic, details)

	var spot core.BriteSpot
	if err := g.generateJSON(ctx, prompt, llm.Options{MaxTokens: 400}, &spot); err != nil {
		return nil, fmt.Errorf("brite spot generation failed: %w", err)
	}
	if spot.Body == "" {
		return nil, ErrEmptySection
	}
	if spot.Title == "" {
		spot.Title = title
	}

	logger.Info("Brite Spot generated", "title", spot.Title)
	return &spot, nil
}
