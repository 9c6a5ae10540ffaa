// Package enrich adds editorial metadata to raw search results: an
// actionable headline, a supporting data point, a recommended agent action,
// and a categorical impact rating. Enrichment is strictly additive; a result
// that fails enrichment keeps its raw fields and receives deterministic
// defaults so downstream sections always see a fully-populated pool.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
	"github.com/xeipuuv/gojsonschema"
)

// batchSize caps how many results go into one model call. Larger batches
// degrade the positional fidelity of the returned array.
const batchSize = 12

// defaultSoWhat is the action line applied when the model gives none.
const defaultSoWhat = "Stay on top of this development so you can speak to it when clients ask."

// Task selects the enrichment instruction embedded in the prompt. Every task
// returns the same row shape; tasks differ in which fields they emphasize.
type Task string

const (
	// TaskClassifyImpact asks only for the industry-impact rating.
	TaskClassifyImpact Task = "classify_impact"
	// TaskStoryAngles asks for a newsletter angle per story.
	TaskStoryAngles Task = "story_angles"
	// TaskEditorialTriple asks for headline, supporting data, and so-what.
	TaskEditorialTriple Task = "editorial_triple"
)

// responseSchema validates the shape of one enrichment response before any
// value is merged. Only impact is universally required; the remaining fields
// depend on the task. Impact levels are validated separately so unknown
// levels coerce instead of failing the batch.
const responseSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"headline": {"type": "string"},
			"industry_data": {"type": "string"},
			"so_what": {"type": "string"},
			"story_angle": {"type": "string"},
			"impact": {"type": "string"},
			"signals": {"type": "array", "items": {"type": "string"}},
			"content_type": {"type": "string"}
		},
		"required": ["impact"]
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(responseSchema)

// enrichmentRow is one positional entry of a model response.
type enrichmentRow struct {
	Headline     string   `json:"headline"`
	IndustryData string   `json:"industry_data"`
	SoWhat       string   `json:"so_what"`
	StoryAngle   string   `json:"story_angle"`
	Impact       string   `json:"impact"`
	Signals      []string `json:"signals,omitempty"`
	ContentType  string   `json:"content_type"`
}

// Enricher annotates search results with editorial metadata via a text model.
type Enricher struct {
	generator llm.TextGenerator
}

// NewEnricher creates an enricher backed by the given text generator.
func NewEnricher(generator llm.TextGenerator) *Enricher {
	return &Enricher{generator: generator}
}

// Enrich annotates every result in the pool according to the task. The
// output slice has exactly the same length and order as the input: batches
// that fail for any reason (transport error, malformed JSON, schema
// violation) fall back to defaults rather than dropping entries.
func (e *Enricher) Enrich(ctx context.Context, results []core.SearchResult, task Task) []core.SearchResult {
	enriched := make([]core.SearchResult, len(results))
	copy(enriched, results)

	for start := 0; start < len(enriched); start += batchSize {
		end := start + batchSize
		if end > len(enriched) {
			end = len(enriched)
		}
		e.enrichBatch(ctx, enriched[start:end], task)
	}

	return enriched
}

// enrichBatch annotates one batch in place.
func (e *Enricher) enrichBatch(ctx context.Context, batch []core.SearchResult, task Task) {
	prompt := buildEnrichmentPrompt(batch, task)

	response, err := e.generator.Generate(ctx, prompt, llm.Options{Temperature: 0.2})
	if err != nil {
		logger.Warn("Enrichment call failed, applying defaults",
			"task", string(task), "batch_size", len(batch), "error", err.Error())
		applyDefaults(batch)
		return
	}

	rows, err := parseEnrichmentResponse(response)
	if err != nil {
		logger.Warn("Enrichment response rejected, applying defaults",
			"task", string(task), "batch_size", len(batch), "error", err.Error())
		applyDefaults(batch)
		return
	}

	if len(rows) != len(batch) {
		logger.Warn("Enrichment response length mismatch",
			"task", string(task), "expected", len(batch), "got", len(rows))
	}

	// Positional merge: row i annotates batch item i. Rows beyond the batch
	// are discarded; batch items beyond the rows get defaults.
	for i := range batch {
		if i >= len(rows) {
			applyDefaults(batch[i : i+1])
			continue
		}
		merge(&batch[i], rows[i])
	}
}

// merge applies one response row onto a result, filling gaps with defaults.
func merge(r *core.SearchResult, row enrichmentRow) {
	r.Headline = strings.TrimSpace(row.Headline)
	if r.Headline == "" {
		r.Headline = r.Title
	}
	r.IndustryData = strings.TrimSpace(row.IndustryData)
	r.SoWhat = strings.TrimSpace(row.SoWhat)
	if r.SoWhat == "" {
		r.SoWhat = defaultSoWhat
	}
	r.StoryAngle = strings.TrimSpace(row.StoryAngle)
	r.Impact = core.CoerceImpact(strings.ToUpper(strings.TrimSpace(row.Impact)))
	r.Signals = row.Signals
	r.ContentType = row.ContentType
	r.Enriched = true
}

// applyDefaults fills the deterministic fallback values on each result so
// every pool entry downstream is fully populated.
func applyDefaults(batch []core.SearchResult) {
	for i := range batch {
		batch[i].Headline = batch[i].Title
		batch[i].SoWhat = defaultSoWhat
		batch[i].Impact = core.ImpactMedium
		batch[i].Enriched = false
	}
}

// parseEnrichmentResponse strips an optional code fence, validates the JSON
// against the response schema, and decodes the rows.
func parseEnrichmentResponse(response string) ([]enrichmentRow, error) {
	cleaned := stripCodeFences(response)

	documentLoader := gojsonschema.NewStringLoader(cleaned)
	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("response failed schema validation: %s", validation.Errors()[0].String())
	}

	var rows []enrichmentRow
	if err := json.Unmarshal([]byte(cleaned), &rows); err != nil {
		return nil, fmt.Errorf("failed to decode enrichment rows: %w", err)
	}
	return rows, nil
}

// taskInstruction returns the per-item field list the model is asked for.
func taskInstruction(task Task) string {
	switch task {
	case TaskClassifyImpact:
		return `- "impact": exactly one of HIGH, MEDIUM, or LOW for how urgently agents should act
- "signals": affected topic tags, e.g. ["auto_rates", "claims_trends"]`
	case TaskStoryAngles:
		return `- "story_angle": one sentence pitching the most compelling newsletter angle for this story
- "content_type": one of news, tip, trend, insight, case_study
- "impact": exactly one of HIGH, MEDIUM, or LOW for how urgently agents should act`
	default: // TaskEditorialTriple
		return `- "headline": an actionable 5-12 word title rewritten for agents
- "industry_data": one sentence with the most concrete fact or figure from the item
- "so_what": one sentence telling an agent what to do with this information
- "impact": exactly one of HIGH, MEDIUM, or LOW for how urgently agents should act
- "signals": affected topic tags, e.g. ["auto_rates", "claims_trends"]
- "content_type": one of news, tip, trend, insight, case_study`
	}
}

// buildEnrichmentPrompt renders the batch as a numbered listing and asks for
// a same-length, same-order JSON array back.
func buildEnrichmentPrompt(batch []core.SearchResult, task Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an editor for a newsletter read by independent P&C insurance agents.
Below are %d news items. For EACH item, in the SAME ORDER, produce:
%s

Items:
`, len(batch), taskInstruction(task))

	for i, r := range batch {
		fmt.Fprintf(&b, "%d. Title: %s\n   Source: %s\n   Summary: %s\n", i+1, r.Title, r.Publisher, r.Snippet)
	}

	fmt.Fprintf(&b, `
Return ONLY a JSON array of exactly %d objects, one per item, in the same
order as listed. No commentary, no markdown.`, len(batch))

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
