package sections

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

// GenerateCuriousClaims writes the Curious Claims section from one researched
// claim story. The model is asked for JSON; prose responses degrade to a
// single-block section rather than failing.
func (g *Generator) GenerateCuriousClaims(ctx context.Context, story core.ClaimLead) (*core.CuriousClaims, error) {
	if story.Headline == "" && story.Summary == "" {
		return nil, fmt.Errorf("claim story is required for the Curious Claims section")
	}

	prompt := fmt.Sprintf(`Write the "Curious Claims" section for an insurance agent newsletter.

%s

Story Details:
Headline: %s
Summary: %s
Source: %s
URL: %s
Claim Type: %s
Interest Factor: %s

Requirements:
- Sub-header title: Catchy, max 15 words
- At least 2 paragraphs, each 1-4+ sentences
- Can include an optional H3 subheading if it helps structure
- Include hyperlink to source article
- Engaging, slightly playful tone while remaining professional
- End with insurance relevance or takeaway

Return as JSON:
{
  "title": "Catchy sub-header title",
  "paragraphs": [
    "First paragraph with story setup...",
    "Second paragraph with details and [source link](url)..."
  ],
  "subheading": "Optional H3 if needed (or null)",
  "subheading_content": "Content under subheading (or null)"
}

Return ONLY the JSON.`,
		brand.StyleGuideForPrompt("curious_claims"),
		story.Headline, story.Summary, story.Source, story.URL,
		story.ClaimType, story.InterestFactor)

	response, err := g.generator.Generate(ctx, prompt, llm.Options{MaxTokens: 800})
	if err != nil {
		return nil, fmt.Errorf("curious claims generation failed: %w", err)
	}

	cleaned := stripCodeFences(response)

	var claims core.CuriousClaims
	if err := json.Unmarshal([]byte(cleaned), &claims); err != nil {
		// Prose response: keep the whole text as one paragraph under the
		// researched headline.
		text := strings.TrimSpace(cleaned)
		if text == "" {
			return nil, ErrEmptySection
		}
		logger.Warn("Curious Claims response was not JSON, using prose as one block")
		claims = core.CuriousClaims{Title: story.Headline, Paragraphs: []string{text}}
	}
	if len(claims.Paragraphs) == 0 {
		return nil, ErrEmptySection
	}
	if claims.Title == "" {
		claims.Title = story.Headline
	}

	logger.Info("Curious Claims generated", "title", claims.Title, "paragraphs", len(claims.Paragraphs))
	return &claims, nil
}
