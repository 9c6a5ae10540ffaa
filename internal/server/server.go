// Package server exposes the newsletter pipeline as a JSON-over-HTTP API
// for the editorial frontend: research endpoints feed raw material, generate
// endpoints produce section blocks, and delivery endpoints ship the
// assembled issue.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/briteco/brief/internal/config"
	"github.com/briteco/brief/internal/email"
	"github.com/briteco/brief/internal/enrich"
	"github.com/briteco/brief/internal/gdocs"
	"github.com/briteco/brief/internal/llm"
	"github.com/briteco/brief/internal/logger"
	"github.com/briteco/brief/internal/ontraport"
	"github.com/briteco/brief/internal/research"
	"github.com/briteco/brief/internal/sections"
)

// Dependencies are the pipeline components the server fronts. Delivery
// dependencies (Sender, Exporter, CRM) may be nil when their credentials are
// not configured; the matching endpoints then return an error response.
type Dependencies struct {
	Searcher *research.Searcher
	Research llm.TextGenerator // citation-backed model for research endpoints
	Creative llm.TextGenerator // writing model for section generation
	Sender   *email.Sender
	Exporter *gdocs.Exporter
	CRM      *ontraport.Client
}

// Server is the HTTP front of the newsletter pipeline.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        config.Server
	deps       Dependencies
	creative   *sections.Generator
	roundup    *sections.Generator
	enricher   *enrich.Enricher
}

// New creates the HTTP server.
func New(cfg config.Server, deps Dependencies) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		deps:     deps,
		creative: sections.NewGenerator(deps.Creative),
		roundup:  sections.NewGenerator(deps.Research),
		enricher: enrich.NewEnricher(deps.Creative),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/team-members", s.handleTeamMembers)

		r.Post("/research-topics", s.handleResearchTopics)
		r.Post("/research-articles", s.handleResearchArticles)
		r.Post("/research-claims", s.handleResearchClaims)
		r.Post("/research-roundup", s.handleResearchRoundup)
		r.Post("/research-agent-tips", s.handleResearchAgentTips)
		r.Post("/research-signals", s.handleResearchSignals)

		r.Post("/generate-intro", s.handleGenerateIntro)
		r.Post("/generate-brite-spot", s.handleGenerateBriteSpot)
		r.Post("/generate-insurnews", s.handleGenerateInsurNews)
		r.Post("/generate-curious-claims", s.handleGenerateCuriousClaims)
		r.Post("/generate-agent-advantage", s.handleGenerateAgentAdvantage)

		r.Post("/assemble-newsletter", s.handleAssembleNewsletter)
		r.Post("/brand-check", s.handleBrandCheck)

		r.Post("/send-preview", s.handleSendPreview)
		r.Post("/export-to-docs", s.handleExportToDocs)
		r.Post("/send-to-ontraport", s.handleSendToOntraport)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Router returns the chi router (useful for testing).
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{"success": false, "error": message})
}

// decodeBody decodes a JSON request body, tolerating an empty body for
// endpoints whose parameters are all optional.
func decodeBody(r *http.Request, out any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
