package server

import (
	"net/http"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/enrich"
	"github.com/briteco/brief/internal/newsletter"
	"github.com/briteco/brief/internal/research"
)

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"provider": s.deps.Searcher.Provider().Name(),
	})
}

// handleTeamMembers handles GET /api/team-members.
func (s *Server) handleTeamMembers(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"team_members": brand.TeamMembers,
	})
}

// handleResearchTopics handles POST /api/research-topics.
func (s *Server) handleResearchTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := research.DiscoverTopics(r.Context(), s.deps.Research)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "topics": topics})
}

// handleResearchArticles handles POST /api/research-articles.
func (s *Server) handleResearchArticles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		s.respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	articles, err := research.ResearchArticles(r.Context(), s.deps.Research, req.Topic)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "articles": articles})
}

// handleResearchClaims handles POST /api/research-claims.
func (s *Server) handleResearchClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := research.ResearchClaims(r.Context(), s.deps.Research)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "claims": claims})
}

// handleResearchRoundup handles POST /api/research-roundup.
func (s *Server) handleResearchRoundup(w http.ResponseWriter, r *http.Request) {
	roundup, err := s.roundup.GenerateRoundup(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "items": roundup.Items})
}

// handleResearchAgentTips handles POST /api/research-agent-tips.
func (s *Server) handleResearchAgentTips(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tips, err := research.ResearchAgentTips(r.Context(), s.deps.Research, req.Topic)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "tips": tips})
}

// handleResearchSignals handles POST /api/research-signals: the full market
// scan pipeline — signal fan-out, denylist filter, enrichment, ranking.
func (s *Server) handleResearchSignals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Window      string   `json:"window"`
		ExcludeURLs []string `json:"exclude_urls"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Window == "" {
		req.Window = "past 2 weeks"
	}

	exclude := make(map[string]struct{}, len(req.ExcludeURLs))
	for _, u := range req.ExcludeURLs {
		exclude[u] = struct{}{}
	}

	pool := s.deps.Searcher.SignalFanOut(r.Context(), req.Window, exclude)
	pool = research.FilterDenylist(pool)
	pool = s.enricher.Enrich(r.Context(), pool, enrich.TaskEditorialTriple)
	pool = enrich.RankByImpact(pool)

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "results": pool})
}

// handleGenerateIntro handles POST /api/generate-intro.
func (s *Server) handleGenerateIntro(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Highlights   []string `json:"highlights"`
		Announcement string   `json:"announcement"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	intro, err := s.creative.GenerateIntroduction(r.Context(), req.Highlights, req.Announcement)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "content": intro})
}

// handleGenerateBriteSpot handles POST /api/generate-brite-spot.
func (s *Server) handleGenerateBriteSpot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Topic   string `json:"topic"`
		Details string `json:"details"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Topic == "" {
		s.respondError(w, http.StatusBadRequest, "title and topic are required")
		return
	}

	spot, err := s.creative.GenerateBriteSpot(r.Context(), req.Title, req.Topic, req.Details)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "content": spot})
}

// handleGenerateInsurNews handles POST /api/generate-insurnews.
func (s *Server) handleGenerateInsurNews(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic    string             `json:"topic"`
		Articles []core.ArticleLead `json:"articles"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" || len(req.Articles) == 0 {
		s.respondError(w, http.StatusBadRequest, "topic and articles are required")
		return
	}

	spotlight, err := s.creative.GenerateSpotlight(r.Context(), req.Topic, req.Articles)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "content": spotlight})
}

// handleGenerateCuriousClaims handles POST /api/generate-curious-claims.
func (s *Server) handleGenerateCuriousClaims(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Story core.ClaimLead `json:"story"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := s.creative.GenerateCuriousClaims(r.Context(), req.Story)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "content": claims})
}

// handleGenerateAgentAdvantage handles POST /api/generate-agent-advantage.
func (s *Server) handleGenerateAgentAdvantage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic core.TipLead `json:"topic"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	advantage, err := s.creative.GenerateAdvantage(r.Context(), req.Topic)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "content": advantage})
}

// handleAssembleNewsletter handles POST /api/assemble-newsletter: combines
// section blocks into an issue and renders the HTML email.
func (s *Server) handleAssembleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject   string               `json:"subject"`
		Preheader string               `json:"preheader"`
		Intro     string               `json:"introduction"`
		BriteSpot *core.BriteSpot      `json:"brite_spot"`
		Spotlight *core.Spotlight      `json:"spotlight"`
		Claims    *core.CuriousClaims  `json:"curious_claims"`
		Roundup   *core.NewsRoundup    `json:"news_roundup"`
		Advantage *core.AgentAdvantage `json:"agent_advantage"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issue, err := newsletter.Assemble(req.Subject, req.Preheader, newsletter.Sections{
		Introduction: req.Intro,
		BriteSpot:    req.BriteSpot,
		Spotlight:    req.Spotlight,
		Claims:       req.Claims,
		Roundup:      req.Roundup,
		Advantage:    req.Advantage,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := newsletter.RenderHTML(issue, nil)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"newsletter": issue,
		"html":       html,
	})
}

// handleBrandCheck handles POST /api/brand-check.
func (s *Server) handleBrandCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content core.Newsletter `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.creative.BrandCheck(r.Context(), &req.Content)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "result": result})
}
