package sections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
)

// BrandCheck reviews assembled newsletter content against the brand
// guidelines and returns a scored report.
func (g *Generator) BrandCheck(ctx context.Context, newsletter *core.Newsletter) (*core.BrandCheckResult, error) {
	contentText, err := json.MarshalIndent(newsletter, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize newsletter for review: %w", err)
	}

	prompt := fmt.Sprintf(`Review this insurance newsletter content for brand consistency and quality.

Content to review:
%s

Check for:
1. Professional tone appropriate for insurance agents
2. Accuracy and clarity of information
3. Consistent formatting
4. Appropriate length for each section
5. Engaging but not sensational language
6. Proper attribution of sources
7. No health/life insurance, political, or international content
8. Clear calls-to-action where appropriate

Return as JSON:
{
  "overall_score": 1-10,
  "passes": true/false,
  "issues": [
    {
      "section": "Section name",
      "issue": "Description of issue",
      "suggestion": "How to fix"
    }
  ],
  "strengths": ["Strength 1", "Strength 2"],
  "suggestions": ["General suggestion 1", "General suggestion 2"]
}

Return ONLY the JSON.`, contentText)

	var result core.BrandCheckResult
	if err := g.generateJSON(ctx, prompt, llm.Options{MaxTokens: 1000}, &result); err != nil {
		return nil, fmt.Errorf("brand check failed: %w", err)
	}

	logger.Info("Brand check complete", "score", result.OverallScore, "passes", result.Passes)
	return &result, nil
}
