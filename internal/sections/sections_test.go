package sections

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/llm"
)

// mockGenerator replays canned responses, one per Generate call.
type mockGenerator struct {
	responses []string
	err       error
	prompts   []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	response := m.responses[0]
	m.responses = m.responses[1:]
	return response, nil
}

func (m *mockGenerator) ModelName() string { return "mock-model" }

func TestGenerateIntroduction(t *testing.T) {
	gen := &mockGenerator{responses: []string{"Agents, summer storm season is here and this issue has you covered."}}
	g := NewGenerator(gen)

	intro, err := g.GenerateIntroduction(context.Background(), []string{"Hurricane prep tips", "New wedding insurance"}, "Contest closes Friday")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(intro, "Agents,") {
		t.Errorf("Unexpected intro: %q", intro)
	}
	if !strings.Contains(gen.prompts[0], "Hurricane prep tips") || !strings.Contains(gen.prompts[0], "Contest closes Friday") {
		t.Errorf("Prompt missing highlights or announcement")
	}
	if !strings.Contains(gen.prompts[0], "EDITORIAL STYLE GUIDE") {
		t.Errorf("Prompt missing brand style guide")
	}
}

func TestGenerateIntroductionEmptyResponse(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{"   "}})
	if _, err := g.GenerateIntroduction(context.Background(), nil, ""); !errors.Is(err, ErrEmptySection) {
		t.Errorf("Expected ErrEmptySection, got %v", err)
	}
}

func TestGenerateBriteSpot(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		"```json\n{\"title\": \"Wedding Insurance Has Arrived\", \"body\": \"BriteCo now offers wedding insurance.\"}\n```",
	}})

	spot, err := g.GenerateBriteSpot(context.Background(), "Wedding Insurance Has Arrived", "New product launch", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if spot.Title != "Wedding Insurance Has Arrived" || spot.Body == "" {
		t.Errorf("Unexpected section: %+v", spot)
	}
}

func TestGenerateBriteSpotRequiresInputs(t *testing.T) {
	g := NewGenerator(&mockGenerator{})
	if _, err := g.GenerateBriteSpot(context.Background(), "", "topic", ""); err == nil {
		t.Errorf("Expected error for missing title")
	}
}

func TestGenerateSpotlightTruncatesSubsections(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		`{"title": "Rate Hikes Reshape the Market", "intro": "Intro.", "sections": [
			{"heading": "A", "content": "a"}, {"heading": "B", "content": "b"},
			{"heading": "C", "content": "c"}, {"heading": "D", "content": "d"},
			{"heading": "E", "content": "e"}],
		"agent_implications": "Talk to clients early."}`,
	}})

	spotlight, err := g.GenerateSpotlight(context.Background(), "auto rate hikes", []core.ArticleLead{
		{Title: "Rates up 11%", Source: "Insurance Journal", URL: "https://ij.com/a", Summary: "Rates rose."},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(spotlight.Sections) != 4 {
		t.Errorf("Expected subsections capped at 4, got %d", len(spotlight.Sections))
	}
	if spotlight.AgentImplications == "" {
		t.Errorf("Agent implications missing")
	}
}

func TestGenerateSpotlightRequiresArticles(t *testing.T) {
	g := NewGenerator(&mockGenerator{})
	if _, err := g.GenerateSpotlight(context.Background(), "topic", nil); err == nil {
		t.Errorf("Expected error for missing articles")
	}
}

func TestGenerateCuriousClaimsProseFallback(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		"A raccoon totaled a vintage convertible and the claim was paid in full.",
	}})

	claims, err := g.GenerateCuriousClaims(context.Background(), core.ClaimLead{
		Headline: "Raccoon vs. Roadster", Summary: "A raccoon story", URL: "https://cj.com/raccoon",
	})
	if err != nil {
		t.Fatalf("Prose response must degrade, not fail: %v", err)
	}
	if claims.Title != "Raccoon vs. Roadster" {
		t.Errorf("Fallback should use the researched headline, got %q", claims.Title)
	}
	if len(claims.Paragraphs) != 1 || !strings.Contains(claims.Paragraphs[0], "raccoon") {
		t.Errorf("Fallback should keep the whole text as one block: %+v", claims.Paragraphs)
	}
}

func TestGenerateRoundupFiltersAndCaps(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		`[
			{"headline": "H1", "source": "S", "url": "https://a/1", "category": "market"},
			{"headline": "", "source": "S", "url": "https://a/2"},
			{"headline": "H3", "source": "S", "url": ""},
			{"headline": "H4", "source": "S", "url": "https://a/4"},
			{"headline": "H5", "source": "S", "url": "https://a/5"},
			{"headline": "H6", "source": "S", "url": "https://a/6"},
			{"headline": "H7", "source": "S", "url": "https://a/7"},
			{"headline": "H8", "source": "S", "url": "https://a/8"}
		]`,
	}})

	roundup, err := g.GenerateRoundup(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(roundup.Items) != roundupSize {
		t.Errorf("Expected exactly %d items, got %d", roundupSize, len(roundup.Items))
	}
	for _, item := range roundup.Items {
		if item.Headline == "" || item.URL == "" {
			t.Errorf("Unusable item survived filtering: %+v", item)
		}
	}
}

func TestGenerateRoundupAcceptsPartial(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		`[{"headline": "Only one", "source": "S", "url": "https://a/1"}]`,
	}})
	roundup, err := g.GenerateRoundup(context.Background())
	if err != nil {
		t.Fatalf("Partial roundup should be accepted: %v", err)
	}
	if len(roundup.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(roundup.Items))
	}
}

func TestGenerateRoundupEmptyIsError(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{`[]`}})
	if _, err := g.GenerateRoundup(context.Background()); !errors.Is(err, ErrEmptySection) {
		t.Errorf("Expected ErrEmptySection, got %v", err)
	}
}

func TestGenerateAdvantageJSON(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		`{"title": "Win the Renewal Conversation", "intro": "Renewals are won early.",
		"tips": [
			{"mini_title": "Call before the carrier does", "content": "Reach out 60 days ahead."},
			{"mini_title": "Lead with the change", "content": "Explain the premium delta first."},
			{"mini_title": "Bundle review", "content": "Check for cross-sell gaps."},
			{"mini_title": "Document everything", "content": "Notes win E&O disputes."},
			{"mini_title": "Ask for the referral", "content": "Happy renewals refer."}
		], "closing": "Five calls this week."}`,
	}})

	advantage, err := g.GenerateAdvantage(context.Background(), core.TipLead{Title: "Renewal playbook", Angle: "retention"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(advantage.Tips) != advantageTips {
		t.Errorf("Expected %d tips, got %d", advantageTips, len(advantage.Tips))
	}
	if advantage.Closing == "" {
		t.Errorf("Closing lost in parse")
	}
}

func TestGenerateAdvantageMarkerFallback(t *testing.T) {
	prose := `[INTRO]
Renewals are won early, not at the deadline.
[TIPS]
1. **Call before the carrier does** Reach out 60 days ahead.
2. **Lead with the change** Explain the premium delta first.
3. **Document everything** Notes win disputes.`
	g := NewGenerator(&mockGenerator{responses: []string{prose}})

	advantage, err := g.GenerateAdvantage(context.Background(), core.TipLead{Title: "Renewal playbook"})
	if err != nil {
		t.Fatalf("Marker prose must be recovered, not fail: %v", err)
	}
	if advantage.Intro != "Renewals are won early, not at the deadline." {
		t.Errorf("Intro not recovered: %q", advantage.Intro)
	}
	if len(advantage.Tips) != 3 {
		t.Fatalf("Expected 3 recovered tips, got %d", len(advantage.Tips))
	}
	if advantage.Tips[0].MiniTitle != "Call before the carrier does" {
		t.Errorf("Tip title not recovered: %q", advantage.Tips[0].MiniTitle)
	}
	if advantage.Title != "Renewal playbook" {
		t.Errorf("Fallback should use the topic title, got %q", advantage.Title)
	}
}

func TestBrandCheck(t *testing.T) {
	g := NewGenerator(&mockGenerator{responses: []string{
		`{"overall_score": 8, "passes": true, "issues": [], "strengths": ["Clear tone"], "suggestions": []}`,
	}})

	result, err := g.BrandCheck(context.Background(), &core.Newsletter{Subject: "The BriteCo Brief", Introduction: "Agents, hello."})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.OverallScore != 8 || !result.Passes {
		t.Errorf("Unexpected result: %+v", result)
	}
}
