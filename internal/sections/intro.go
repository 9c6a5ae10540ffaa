package sections

import (
	"context"
	"fmt"
	"strings"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
)

// GenerateIntroduction writes the opening paragraph of an issue from the
// issue's highlights and an optional special announcement.
func (g *Generator) GenerateIntroduction(ctx context.Context, highlights []string, announcement string) (string, error) {
	highlightsText := "No specific highlights provided"
	if len(highlights) > 0 {
		lines := make([]string, len(highlights))
		for i, h := range highlights {
			lines[i] = "- " + h
		}
		highlightsText = strings.Join(lines, "\n")
	}
	if announcement == "" {
		announcement = "None"
	}

	prompt := fmt.Sprintf(`Write a brief newsletter introduction for "The BriteCo Brief" - an insurance agent newsletter.

%s

Newsletter highlights to mention:
%s

Special announcement (if any): %s

Requirements:
- 1-4 sentences, punchy and engaging
- Address readers as "Agents"
- Highlight what's in this issue
- Include any special announcements, contests, or calls-to-action
- Professional but friendly tone
- End with enthusiasm for the content

Write ONLY the introduction paragraph, no other text.`,
		brand.StyleGuideForPrompt("introduction"), highlightsText, announcement)

	response, err := g.generator.Generate(ctx, prompt, llm.Options{MaxTokens: 300})
	if err != nil {
		return "", fmt.Errorf("introduction generation failed: %w", err)
	}

	intro := strings.TrimSpace(stripCodeFences(response))
	if intro == "" {
		return "", ErrEmptySection
	}

	logger.Info("Introduction generated", "length", len(intro))
	return intro, nil
}
