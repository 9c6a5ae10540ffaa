package core

import "time"

// Impact is the categorical urgency rating attached to a research result.
// It indicates how action-relevant a story is for an insurance agent reader.
type Impact string

const (
	ImpactHigh   Impact = "HIGH"
	ImpactMedium Impact = "MEDIUM"
	ImpactLow    Impact = "LOW"
)

// Weight returns the sort weight for an impact level (lower sorts first).
func (i Impact) Weight() int {
	switch i {
	case ImpactHigh:
		return 0
	case ImpactMedium:
		return 1
	case ImpactLow:
		return 2
	default:
		return 1
	}
}

// CoerceImpact normalizes a model-supplied impact string to one of the three
// allowed levels. Anything unrecognized becomes MEDIUM.
func CoerceImpact(s string) Impact {
	switch Impact(s) {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return Impact(s)
	default:
		return ImpactMedium
	}
}

// SearchResult represents one discovered article or page. Raw fields are set
// by a search provider and never mutated afterward; enrichment adds derived
// fields in place without overwriting the originals.
type SearchResult struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Publisher    string `json:"publisher"`
	PublishedAt  string `json:"published_at,omitempty"` // free-text or ISO date
	Snippet      string `json:"snippet"`
	SignalSource string `json:"signal_source,omitempty"` // fan-out query that found it

	// Enrichment-derived fields.
	Headline     string   `json:"headline,omitempty"`      // 5-12 word actionable title
	IndustryData string   `json:"industry_data,omitempty"` // one-sentence fact
	SoWhat       string   `json:"so_what,omitempty"`       // recommended agent action
	StoryAngle   string   `json:"story_angle,omitempty"`   // suggested newsletter angle
	Impact       Impact   `json:"impact,omitempty"`
	Signals      []string `json:"signals,omitempty"`      // affected topic tags
	ContentType  string   `json:"content_type,omitempty"` // news|tip|trend|insight|case_study
	Enriched     bool     `json:"enriched"`
}

// QuerySpec is one entry of a cascade search: a query string plus the number
// of results wanted from it. The ordered list is immutable per request.
type QuerySpec struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// SignalDefinition maps a fixed market-signal name to its canned query
// template. The table of definitions is process-wide static configuration.
type SignalDefinition struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// TopicSuggestion is one trending-topic idea surfaced during topic discovery.
type TopicSuggestion struct {
	Topic       string   `json:"topic"`
	Description string   `json:"description"`
	Relevance   string   `json:"relevance"`
	SourcesHint []string `json:"sources_hint,omitempty"`
}

// ArticleLead is one researched source article feeding the Spotlight section.
type ArticleLead struct {
	Title     string   `json:"title"`
	Source    string   `json:"source"`
	URL       string   `json:"url"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points,omitempty"`
	Date      string   `json:"date,omitempty"`
}

// ClaimLead is one candidate story for the Curious Claims section.
type ClaimLead struct {
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	Source         string `json:"source"`
	URL            string `json:"url"`
	ClaimType      string `json:"claim_type"`
	InterestFactor string `json:"interest_factor"`
}

// TipLead is one candidate topic for the Agent Advantage section.
type TipLead struct {
	Title          string   `json:"title"`
	Angle          string   `json:"angle"`
	KeyPoints      []string `json:"key_points"`
	SourceArticles []string `json:"source_articles,omitempty"`
	Relevance      string   `json:"relevance"`
}

// Tip is a single Agent Advantage item: a short bold mini-title with one to
// three supporting sentences.
type Tip struct {
	MiniTitle string `json:"mini_title"`
	Content   string `json:"content"`
}

// AgentAdvantage is the five-tip advice section.
type AgentAdvantage struct {
	Title   string `json:"title"`
	Intro   string `json:"intro"`
	Tips    []Tip  `json:"tips"`
	Closing string `json:"closing,omitempty"`
}

// RoundupItem is one headline-style bullet with its source hyperlink.
type RoundupItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

// NewsRoundup is the five-bullet quick-hits section.
type NewsRoundup struct {
	Items []RoundupItem `json:"items"`
}

// SpotlightSection is one H3 block within the InsurNews Spotlight.
type SpotlightSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Spotlight is the InsurNews Spotlight deep-dive section.
type Spotlight struct {
	Title             string             `json:"title"`
	Intro             string             `json:"intro"`
	Sections          []SpotlightSection `json:"sections"`
	AgentImplications string             `json:"agent_implications"`
}

// CuriousClaims is the quirky-claim story section.
type CuriousClaims struct {
	Title             string   `json:"title"`
	Paragraphs        []string `json:"paragraphs"`
	Subheading        string   `json:"subheading,omitempty"`
	SubheadingContent string   `json:"subheading_content,omitempty"`
}

// BriteSpot is the company-news section.
type BriteSpot struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Newsletter is one assembled issue ready for preview, email, or export.
type Newsletter struct {
	ID           string          `json:"id"`
	Subject      string          `json:"subject"`
	Preheader    string          `json:"preheader,omitempty"`
	Introduction string          `json:"introduction"`
	BriteSpot    *BriteSpot      `json:"brite_spot,omitempty"`
	Spotlight    *Spotlight      `json:"spotlight,omitempty"`
	Claims       *CuriousClaims  `json:"curious_claims,omitempty"`
	Roundup      *NewsRoundup    `json:"news_roundup,omitempty"`
	Advantage    *AgentAdvantage `json:"agent_advantage,omitempty"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// BrandCheckIssue is one problem flagged during a brand review.
type BrandCheckIssue struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// BrandCheckResult is the outcome of an LLM brand-guidelines review.
type BrandCheckResult struct {
	OverallScore int               `json:"overall_score"`
	Passes       bool              `json:"passes"`
	Issues       []BrandCheckIssue `json:"issues"`
	Strengths    []string          `json:"strengths"`
	Suggestions  []string          `json:"suggestions"`
}
