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

// advantageTips is the fixed tip count of the Agent Advantage section.
const advantageTips = 5

// GenerateAdvantage writes the Agent Advantage five-tip section from a
// researched tip topic. The model is asked for JSON; prose responses are
// recovered via [INTRO]/[TIPS] marker parsing, accepting partial tip lists.
func (g *Generator) GenerateAdvantage(ctx context.Context, topic core.TipLead) (*core.AgentAdvantage, error) {
	if topic.Title == "" {
		return nil, fmt.Errorf("topic is required for the Agent Advantage section")
	}

	keyPoints, _ := json.Marshal(topic.KeyPoints)

	prompt := fmt.Sprintf(`Write the "Agent Advantage" section for an insurance agent newsletter.

%s

Topic: %s
Angle: %s
Key Points to Cover: %s
Why It Matters: %s

Requirements:
- Sub-header title: Max 15 words, action-oriented
- Quick intro paragraph (2-3 sentences)
- Exactly %d bullet points, each with:
  - Mini-title (up to 10 words, bold)
  - 1-3 supporting sentences
- Optional closing sentence to wrap up

Return as JSON:
{
  "title": "Sub-header title",
  "intro": "Brief intro paragraph",
  "tips": [
    {
      "mini_title": "Bold mini-title",
      "content": "1-3 sentences of supporting content"
    }
  ],
  "closing": "Optional closing sentence (or null)"
}

Return ONLY the JSON with exactly %d tips.`,
		brand.StyleGuideForPrompt("agent_advantage"),
		topic.Title, topic.Angle, keyPoints, topic.Relevance,
		advantageTips, advantageTips)

	response, err := g.generator.Generate(ctx, prompt, llm.Options{MaxTokens: 1000})
	if err != nil {
		return nil, fmt.Errorf("agent advantage generation failed: %w", err)
	}

	cleaned := stripCodeFences(response)

	var advantage core.AgentAdvantage
	if err := json.Unmarshal([]byte(cleaned), &advantage); err != nil {
		// Prose response: recover intro and numbered tips from markers.
		parsed := parseMarkedTips(cleaned)
		if strings.TrimSpace(parsed.Intro) == "" && len(parsed.Tips) == 0 {
			return nil, ErrEmptySection
		}
		logger.Warn("Agent Advantage response was not JSON, recovered via markers",
			"tips_recovered", len(parsed.Tips))
		advantage = core.AgentAdvantage{Title: topic.Title, Intro: parsed.Intro, Tips: parsed.Tips}
	}
	if advantage.Intro == "" && len(advantage.Tips) == 0 {
		return nil, ErrEmptySection
	}
	if advantage.Title == "" {
		advantage.Title = topic.Title
	}
	if len(advantage.Tips) > advantageTips {
		advantage.Tips = advantage.Tips[:advantageTips]
	}
	if len(advantage.Tips) < advantageTips {
		logger.Warn("Agent Advantage came back short", "wanted", advantageTips, "got", len(advantage.Tips))
	}

	logger.Info("Agent Advantage generated", "title", advantage.Title, "tips", len(advantage.Tips))
	return &advantage, nil
}
