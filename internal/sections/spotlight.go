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

// GenerateSpotlight writes the InsurNews Spotlight deep dive from a topic and
// its researched source articles.
func (g *Generator) GenerateSpotlight(ctx context.Context, topic string, articles []core.ArticleLead) (*core.Spotlight, error) {
	if topic == "" || len(articles) == 0 {
		return nil, fmt.Errorf("topic and articles are required for the Spotlight section")
	}

	blocks := make([]string, len(articles))
	for i, a := range articles {
		blocks[i] = fmt.Sprintf("Source: %s\nTitle: %s\nURL: %s\nSummary: %s",
			a.Source, a.Title, a.URL, a.Summary)
	}

	prompt := fmt.Sprintf(`Write the "InsurNews Spotlight" section for an insurance agent newsletter.

%s

Main Topic: %s

Source Articles:
%s

Requirements:
- Sub-header: A compelling title (max 15 words) that captures the main story
- Opening paragraph: 1-4 sentences introducing the topic
- Up to 4 H3 subsections, each with:
  - A clear subheading
  - 1-2 paragraphs (1-4 sentences each)
  - Inline hyperlinks to source articles where relevant
- "Implications for Agents" as the final H3
- Total length: 400-600 words

IMPORTANT: Include hyperlinks to the source articles naturally within the text using markdown format [text](url)

Return as JSON:
{
  "title": "Main sub-header title",
  "intro": "Opening paragraph",
  "sections": [
    {
      "heading": "H3 heading",
      "content": "Paragraph(s) with [hyperlinks](url) embedded"
    }
  ],
  "agent_implications": "Final paragraph about what this means for agents"
}

Return ONLY the JSON.`,
		brand.StyleGuideForPrompt("insurnews_spotlight"), topic, strings.Join(blocks, "\n\n"))

	var spotlight core.Spotlight
	if err := g.generateJSON(ctx, prompt, llm.Options{MaxTokens: 1500}, &spotlight); err != nil {
		return nil, fmt.Errorf("spotlight generation failed: %w", err)
	}
	if spotlight.Intro == "" && len(spotlight.Sections) == 0 {
		return nil, ErrEmptySection
	}
	if len(spotlight.Sections) > 4 {
		spotlight.Sections = spotlight.Sections[:4]
	}

	logger.Info("Spotlight generated", "topic", topic, "subsections", len(spotlight.Sections))
	return &spotlight, nil
}
