package gdocs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/briteco/brief/internal/core"
)

func TestNewExporterRequiresCredentials(t *testing.T) {
	if _, err := NewExporter(context.Background(), nil, ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}

func TestCollectLinesOrderAndHeadings(t *testing.T) {
	issue := &core.Newsletter{
		Subject:      "The BriteCo Brief - March",
		Introduction: "Agents, welcome.",
		Roundup: &core.NewsRoundup{Items: []core.RoundupItem{
			{Headline: "Rates up 11%", URL: "https://ij.com/a"},
		}},
		Advantage: &core.AgentAdvantage{
			Title: "Win the Renewal",
			Intro: "Renewals are won early.",
			Tips:  []core.Tip{{MiniTitle: "Call first", Content: "Reach out early."}},
		},
	}

	lines := collectLines(issue)

	if lines[0].heading != "HEADING_1" || lines[0].text != "The BriteCo Brief - March" {
		t.Errorf("First line should be the H1 subject: %+v", lines[0])
	}

	var sawRoundup, sawAdvantage bool
	for _, line := range lines {
		switch line.text {
		case "Insurance News Roundup":
			sawRoundup = true
			if line.heading != "HEADING_2" {
				t.Errorf("Section title should be H2: %+v", line)
			}
		case "Agent Advantage":
			sawAdvantage = true
		case "The Brite Spot", "InsurNews Spotlight", "Curious Claims":
			t.Errorf("Missing section %q should not produce lines", line.text)
		}
	}
	if !sawRoundup || !sawAdvantage {
		t.Errorf("Expected roundup and advantage sections in output")
	}
}

func TestBuildDocRequestsIndexes(t *testing.T) {
	issue := &core.Newsletter{
		Subject:      "Brief",
		Introduction: "Hello agents.",
	}

	requests := buildDocRequests(issue)

	// Subject insert + its heading style + introduction insert.
	if len(requests) != 3 {
		t.Fatalf("Expected 3 requests, got %d", len(requests))
	}
	if requests[0].InsertText == nil || requests[0].InsertText.Location.Index != 1 {
		t.Errorf("First insert must start at index 1: %+v", requests[0])
	}
	style := requests[1].UpdateParagraphStyle
	if style == nil || style.ParagraphStyle.NamedStyleType != "HEADING_1" {
		t.Fatalf("Second request should style the subject: %+v", requests[1])
	}
	wantEnd := int64(1 + len("Brief\n"))
	if style.Range.StartIndex != 1 || style.Range.EndIndex != wantEnd {
		t.Errorf("Heading range [%d,%d), want [1,%d)", style.Range.StartIndex, style.Range.EndIndex, wantEnd)
	}
	if requests[2].InsertText.Location.Index != wantEnd {
		t.Errorf("Next insert should continue at %d, got %d", wantEnd, requests[2].InsertText.Location.Index)
	}
}

func TestBuildDocRequestsUTF16Indexes(t *testing.T) {
	issue := &core.Newsletter{Subject: "Brief \U0001F4F0", Introduction: "Next."}

	requests := buildDocRequests(issue)

	// The emoji is two UTF-16 code units; the next insert index must account
	// for that, not the rune count.
	subject := "Brief \U0001F4F0\n"
	wantNext := int64(1) + utf16Len(subject)
	if requests[2].InsertText.Location.Index != wantNext {
		t.Errorf("UTF-16 index: got %d, want %d", requests[2].InsertText.Location.Index, wantNext)
	}
	if !strings.HasSuffix(requests[0].InsertText.Text, "\n") {
		t.Errorf("Paragraphs must be newline-terminated")
	}
}
