package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
)

// mockGenerator replays canned responses, one per Generate call.
type mockGenerator struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "[]", nil
	}
	response := m.responses[0]
	m.responses = m.responses[1:]
	return response, nil
}

func (m *mockGenerator) ModelName() string { return "mock-model" }

func pool(n int) []core.SearchResult {
	results := make([]core.SearchResult, n)
	for i := range results {
		results[i] = core.SearchResult{
			URL:       fmt.Sprintf("https://news.example.com/%d", i),
			Title:     fmt.Sprintf("Original title %d", i),
			Publisher: "example.com",
			Snippet:   fmt.Sprintf("Snippet %d", i),
		}
	}
	return results
}

func rowsJSON(t *testing.T, rows []enrichmentRow) string {
	t.Helper()
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("marshal rows: %v", err)
	}
	return string(data)
}

func TestEnrichPositionalMerge(t *testing.T) {
	rows := []enrichmentRow{
		{Headline: "Rates jump 11% statewide", IndustryData: "Auto premiums rose 11%", SoWhat: "Review renewals now", Impact: "HIGH", Signals: []string{"auto_rates"}, ContentType: "news"},
		{Headline: "Carriers expand telematics", SoWhat: "Mention discounts at renewal", Impact: "LOW", ContentType: "trend"},
	}
	gen := &mockGenerator{responses: []string{rowsJSON(t, rows)}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(2), TaskEditorialTriple)

	if len(enriched) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(enriched))
	}
	if enriched[0].Headline != "Rates jump 11% statewide" || enriched[0].Impact != core.ImpactHigh {
		t.Errorf("Row 0 not merged: %+v", enriched[0])
	}
	if enriched[1].Headline != "Carriers expand telematics" || enriched[1].Impact != core.ImpactLow {
		t.Errorf("Row 1 not merged: %+v", enriched[1])
	}
	if enriched[0].Title != "Original title 0" {
		t.Errorf("Raw title was overwritten: %q", enriched[0].Title)
	}
	if !enriched[0].Enriched || !enriched[1].Enriched {
		t.Errorf("Merged results should be marked enriched")
	}
}

func TestEnrichGeneratorFailureAppliesDefaults(t *testing.T) {
	gen := &mockGenerator{err: errors.New("model unavailable")}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(3), TaskEditorialTriple)

	if len(enriched) != 3 {
		t.Fatalf("Failure must not drop results: got %d of 3", len(enriched))
	}
	for i, r := range enriched {
		if r.Impact != core.ImpactMedium {
			t.Errorf("Result %d: expected default MEDIUM impact, got %s", i, r.Impact)
		}
		if r.Headline != r.Title {
			t.Errorf("Result %d: expected original title as headline, got %q", i, r.Headline)
		}
		if r.SoWhat != defaultSoWhat {
			t.Errorf("Result %d: expected default so_what, got %q", i, r.SoWhat)
		}
		if r.Enriched {
			t.Errorf("Result %d: defaulted result must not be marked enriched", i)
		}
	}
}

func TestEnrichMalformedResponseAppliesDefaults(t *testing.T) {
	gen := &mockGenerator{responses: []string{"Sure! Here are the enriched items you asked for."}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(2), TaskEditorialTriple)

	for i, r := range enriched {
		if r.Impact != core.ImpactMedium || r.Headline != r.Title {
			t.Errorf("Result %d: malformed response should default, got %+v", i, r)
		}
	}
}

func TestEnrichShortResponseDefaultsTail(t *testing.T) {
	rows := []enrichmentRow{
		{Headline: "Only row", SoWhat: "Act on it", Impact: "HIGH"},
	}
	gen := &mockGenerator{responses: []string{rowsJSON(t, rows)}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(3), TaskEditorialTriple)

	if enriched[0].Headline != "Only row" || enriched[0].Impact != core.ImpactHigh {
		t.Errorf("Covered row should merge: %+v", enriched[0])
	}
	for i := 1; i < 3; i++ {
		if enriched[i].Impact != core.ImpactMedium || enriched[i].Headline != enriched[i].Title {
			t.Errorf("Uncovered result %d should default: %+v", i, enriched[i])
		}
	}
}

func TestEnrichStripsCodeFence(t *testing.T) {
	rows := []enrichmentRow{{Headline: "Fenced headline", SoWhat: "Do the thing", Impact: "LOW"}}
	fenced := "```json\n" + rowsJSON(t, rows) + "\n```"
	gen := &mockGenerator{responses: []string{fenced}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(1), TaskEditorialTriple)

	if enriched[0].Headline != "Fenced headline" {
		t.Errorf("Fenced response not parsed: %+v", enriched[0])
	}
}

func TestEnrichCoercesUnknownImpact(t *testing.T) {
	rows := []enrichmentRow{
		{Headline: "h", SoWhat: "s", Impact: "CRITICAL"},
		{Headline: "h", SoWhat: "s", Impact: "high"},
		{Headline: "h", SoWhat: "s", Impact: " Medium "},
	}
	gen := &mockGenerator{responses: []string{rowsJSON(t, rows)}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(3), TaskEditorialTriple)

	if enriched[0].Impact != core.ImpactMedium {
		t.Errorf("Unknown level should coerce to MEDIUM, got %s", enriched[0].Impact)
	}
	if enriched[1].Impact != core.ImpactHigh {
		t.Errorf("Lowercase high should normalize to HIGH, got %s", enriched[1].Impact)
	}
	if enriched[2].Impact != core.ImpactMedium {
		t.Errorf("Padded Medium should normalize to MEDIUM, got %s", enriched[2].Impact)
	}
}

func TestEnrichBatching(t *testing.T) {
	// 13 results: one full batch of 12 plus one of 1.
	full := make([]enrichmentRow, batchSize)
	for i := range full {
		full[i] = enrichmentRow{Headline: fmt.Sprintf("h%d", i), SoWhat: "s", Impact: "MEDIUM"}
	}
	tail := []enrichmentRow{{Headline: "tail", SoWhat: "s", Impact: "HIGH"}}
	gen := &mockGenerator{responses: []string{rowsJSON(t, full), rowsJSON(t, tail)}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(batchSize+1), TaskEditorialTriple)

	if gen.calls != 2 {
		t.Fatalf("Expected 2 batched calls for %d results, got %d", batchSize+1, gen.calls)
	}
	if enriched[batchSize].Headline != "tail" || enriched[batchSize].Impact != core.ImpactHigh {
		t.Errorf("Second batch not merged: %+v", enriched[batchSize])
	}
	if !strings.Contains(gen.prompts[0], fmt.Sprintf("%d. Title:", batchSize)) {
		t.Errorf("First prompt should number all %d items", batchSize)
	}
}

func TestEnrichEmptyPool(t *testing.T) {
	gen := &mockGenerator{}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), nil, TaskEditorialTriple)
	if len(enriched) != 0 {
		t.Errorf("Expected empty output for empty pool, got %d", len(enriched))
	}
	if gen.calls != 0 {
		t.Errorf("Empty pool must not call the model, got %d calls", gen.calls)
	}
}

func TestEnrichTaskSelectsInstruction(t *testing.T) {
	gen := &mockGenerator{responses: []string{`[{"impact":"LOW","story_angle":"Angle here"}]`}}
	enricher := NewEnricher(gen)

	enriched := enricher.Enrich(context.Background(), pool(1), TaskStoryAngles)

	if !strings.Contains(gen.prompts[0], "story_angle") {
		t.Errorf("Story-angle task should request story_angle field")
	}
	if strings.Contains(gen.prompts[0], "industry_data") {
		t.Errorf("Story-angle task should not request the editorial triple fields")
	}
	if enriched[0].StoryAngle != "Angle here" {
		t.Errorf("Story angle not merged: %+v", enriched[0])
	}
	if enriched[0].Headline != enriched[0].Title {
		t.Errorf("Missing headline should default to original title, got %q", enriched[0].Headline)
	}
}

func TestRankByImpactStable(t *testing.T) {
	results := []core.SearchResult{
		{URL: "m1", Impact: core.ImpactMedium},
		{URL: "l1", Impact: core.ImpactLow},
		{URL: "h1", Impact: core.ImpactHigh},
		{URL: "m2", Impact: core.ImpactMedium},
		{URL: "h2", Impact: core.ImpactHigh},
		{URL: "l2", Impact: core.ImpactLow},
	}

	ranked := RankByImpact(results)

	want := []string{"h1", "h2", "m1", "m2", "l1", "l2"}
	for i, u := range want {
		if ranked[i].URL != u {
			t.Errorf("Position %d: expected %s, got %s", i, u, ranked[i].URL)
		}
	}
	if results[0].URL != "m1" {
		t.Errorf("RankByImpact must not mutate its input")
	}
}

func TestRankByImpactTreatsUnsetAsMedium(t *testing.T) {
	results := []core.SearchResult{
		{URL: "unset"},
		{URL: "high", Impact: core.ImpactHigh},
		{URL: "low", Impact: core.ImpactLow},
	}
	ranked := RankByImpact(results)
	if ranked[0].URL != "high" || ranked[1].URL != "unset" || ranked[2].URL != "low" {
		t.Errorf("Unset impact should rank as MEDIUM: %+v", ranked)
	}
}
