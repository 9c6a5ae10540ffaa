package sections

import (
	"regexp"
	"strings"

	"github.com/briteco/brief/internal/core"
)

// boldItemRe matches one numbered tip of the form
//
//	1. **Mini title** supporting sentences
//
// with optional punctuation after the closing bold marker.
var boldItemRe = regexp.MustCompile(`(?m)^\s*\d+\.\s*\*\*(.+?)\*\*[:.\s]*(.*)$`)

// markedTips is the result of parsing a marker-formatted tips response.
type markedTips struct {
	Intro string
	Tips  []core.Tip
}

// parseMarkedTips recovers an intro and numbered tips from prose the model
// returned with [INTRO] and [TIPS] marker tokens, e.g.
//
//	[INTRO]
//	Intro paragraph.
//	[TIPS]
//	1. **First tip** Supporting sentence.
//
// Markers are matched case-sensitively. If the markers are absent, the
// numbered-bold pattern alone is tried over the whole text. If nothing
// matches, the entire text becomes the intro and Tips is empty; callers
// decide whether that degenerate result is acceptable.
func parseMarkedTips(text string) markedTips {
	text = strings.TrimSpace(text)

	introBlock, tipsBlock := text, text
	if idx := strings.Index(text, "[TIPS]"); idx >= 0 {
		introBlock = text[:idx]
		tipsBlock = text[idx+len("[TIPS]"):]
	}
	introBlock = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(introBlock), "[INTRO]"))

	var tips []core.Tip
	for _, m := range boldItemRe.FindAllStringSubmatch(tipsBlock, -1) {
		tips = append(tips, core.Tip{
			MiniTitle: strings.TrimSpace(m[1]),
			Content:   strings.TrimSpace(m[2]),
		})
	}

	if len(tips) == 0 {
		return markedTips{Intro: text}
	}

	// Drop the numbered list from the intro when both came from the same
	// block (no [TIPS] marker present).
	if loc := boldItemRe.FindStringIndex(introBlock); loc != nil {
		introBlock = strings.TrimSpace(introBlock[:loc[0]])
	}
	return markedTips{Intro: introBlock, Tips: tips}
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
