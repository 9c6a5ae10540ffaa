// Package brand holds the BriteCo Brief editorial configuration: news
// sources, content filters, voice, section guidelines, and terminology
// rules. All of it is process-wide static data shared across requests.
package brand

import (
	"fmt"
	"strings"
)

// NewsSources are the insurance industry publications searched for
// newsletter content.
var NewsSources = []string{
	"insurancenewsnet.com",
	"insurancejournal.com",
	"businessinsurance.com",
	"insurancebusinessmag.com/us",
	"claimsjournal.com",
	"propertycasualty360.com",
	"carriermanagement.com",
}

// IncludeTopics are the content areas the newsletter covers.
var IncludeTopics = []string{
	"property and casualty",
	"P&C",
	"homeowners insurance",
	"auto insurance",
	"commercial insurance",
	"workers compensation",
	"liability insurance",
	"independent agents",
	"insurance technology",
	"claims management",
}

// ExcludePhrases is the denylist applied to search results. A result whose
// title or snippet contains any of these (case-insensitive) is dropped.
// The back half targets personnel and promotion announcements.
var ExcludePhrases = []string{
	"health insurance",
	"life insurance",
	"medicare",
	"medicaid",
	"affordable care act",
	"promoted to",
	"announces promotion",
	"new ceo",
	"new president",
	"executive appointment",
	"joins as",
	"named to",
	"leadership change",
	"personnel announcement",
	"new hire",
	"appointed as",
	"steps down",
	"retires from",
	"obituary",
}

// Voice captures the newsletter's tone for AI content generation.
type Voice struct {
	Tone        string
	Style       string
	Perspective string
	Avoid       []string
}

// DefaultVoice is the BriteCo Brief editorial voice.
var DefaultVoice = Voice{
	Tone:        "Professional but approachable, knowledgeable, supportive",
	Style:       "Clear, concise, actionable",
	Perspective: "We help independent insurance agents succeed",
	Avoid: []string{
		"Overly salesy language",
		"Jargon without explanation",
		"Health or life insurance content",
		"Political content",
		"Competitor bashing",
	},
}

// TerminologyDo and TerminologyDont are the BriteCo brand wording rules.
var (
	TerminologyDo = []string{
		"Call BriteCo an 'insurtech company' or 'insurance provider'",
		"Refer to BriteCo as a 'specialty jewelry insurance provider' when comparing to general insurers",
		"Say 'backed by an AM Best A+ rated Insurance Carrier'",
	}
	TerminologyDont = []string{
		"Call BriteCo an 'insurance company'",
		"Slander competitors",
		"Refer to the website as www.brite.co",
	}
)

// SectionGuideline describes structural constraints for one section.
type SectionGuideline struct {
	Structure []string
	MaxWords  int
	Tone      string
}

// SectionGuidelines maps section names to their editorial constraints.
var SectionGuidelines = map[string]SectionGuideline{
	"introduction": {
		Structure: []string{"1-4 sentences welcoming readers", "Reference the month/season", "Hint at content inside"},
		MaxWords:  75,
		Tone:      "Warm, welcoming, brief",
	},
	"brite_spot": {
		Structure: []string{"BriteCo company news or feature highlight", "New tools or updates for agents"},
		MaxWords:  100,
		Tone:      "Exciting, informative",
	},
	"curious_claims": {
		Structure: []string{"The Claim: What happened (2-3 sentences)", "The Outcome: How it was resolved", "Agent Takeaway: Lesson for agents"},
		MaxWords:  200,
		Tone:      "Engaging, storytelling, educational",
	},
	"news_roundup": {
		Structure: []string{"5 bullet points", "Each ~25 words", "Include source attribution"},
		MaxWords:  150,
		Tone:      "Factual, concise, newsworthy",
	},
	"insurnews_spotlight": {
		Structure: []string{"Executive summary", "Key facts and data", "Industry impact", "What it means for agents"},
		MaxWords:  600,
		Tone:      "Analytical, insightful, practical",
	},
	"agent_advantage": {
		Structure: []string{"5 actionable tips for agents", "Each ~30 words", "Focus on sales, retention, operations"},
		MaxWords:  250,
		Tone:      "Helpful, actionable, expert advice",
	},
}

// StyleGuideForPrompt renders a prompt-ready editorial style guide, optionally
// including the structural requirements for one section.
func StyleGuideForPrompt(sectionType string) string {
	var b strings.Builder

	b.WriteString("## EDITORIAL STYLE GUIDE\n\n")
	b.WriteString("### TONE & VOICE\n")
	fmt.Fprintf(&b, "- Tone: %s\n", DefaultVoice.Tone)
	fmt.Fprintf(&b, "- Style: %s\n", DefaultVoice.Style)
	fmt.Fprintf(&b, "- Perspective: %s\n", DefaultVoice.Perspective)
	b.WriteString("- AVOID: " + strings.Join(DefaultVoice.Avoid, ", ") + "\n\n")

	b.WriteString("### CONTENT FOCUS\n")
	b.WriteString("- INCLUDE topics about: " + strings.Join(IncludeTopics[:5], ", ") + "\n")
	b.WriteString("- EXCLUDE any content about: " + strings.Join(ExcludePhrases[:5], ", ") + "\n\n")

	b.WriteString("### BRITECO BRAND TERMINOLOGY\n")
	b.WriteString("DO:\n")
	for _, rule := range TerminologyDo {
		fmt.Fprintf(&b, "  - %s\n", rule)
	}
	b.WriteString("DON'T:\n")
	for _, rule := range TerminologyDont {
		fmt.Fprintf(&b, "  - %s\n", rule)
	}
	b.WriteString("\n")

	if g, ok := SectionGuidelines[sectionType]; ok {
		fmt.Fprintf(&b, "### %s SECTION REQUIREMENTS\n", strings.ToUpper(sectionType))
		for _, item := range g.Structure {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		if g.MaxWords > 0 {
			fmt.Fprintf(&b, "- Maximum: %d words\n", g.MaxWords)
		}
		fmt.Fprintf(&b, "- Tone: %s\n", g.Tone)
	}

	return b.String()
}

// SearchSourcesPrompt renders the preferred-sources instruction embedded in
// research prompts sent to citation-backed search providers.
func SearchSourcesPrompt() string {
	sites := make([]string, len(NewsSources))
	for i, s := range NewsSources {
		sites[i] = "site:" + s
	}
	return fmt.Sprintf(`PREFERRED SOURCES:
Search these insurance industry publications: %s

CONTENT REQUIREMENTS:
- Focus on Property & Casualty (P&C) insurance only
- Exclude health insurance, life insurance, Medicare/Medicaid content
- Exclude political news and international news
- Include news relevant to independent insurance agents
`, strings.Join(sites, " OR "))
}
