package server

import (
	"net/http"

	"github.com/briteco/brief/internal/core"
)

// handleSendPreview handles POST /api/send-preview.
func (s *Server) handleSendPreview(w http.ResponseWriter, r *http.Request) {
	if s.deps.Sender == nil {
		s.respondError(w, http.StatusInternalServerError,
			"SMTP credentials not configured. Set SMTP_USER and SMTP_PASSWORD")
		return
	}

	var req struct {
		Recipients []string `json:"recipients"`
		Subject    string   `json:"subject"`
		HTML       string   `json:"html"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Recipients) == 0 || req.HTML == "" {
		s.respondError(w, http.StatusBadRequest, "recipients and HTML content required")
		return
	}
	if req.Subject == "" {
		req.Subject = "BriteCo Brief Preview"
	}

	report, err := s.deps.Sender.Send(req.Recipients, req.Subject, req.HTML)
	if err != nil {
		s.respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
			"report":  report,
		})
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "report": report})
}

// handleExportToDocs handles POST /api/export-to-docs.
func (s *Server) handleExportToDocs(w http.ResponseWriter, r *http.Request) {
	if s.deps.Exporter == nil {
		s.respondError(w, http.StatusInternalServerError,
			"Google Docs credentials not configured. Set GOOGLE_DOCS_CREDENTIALS")
		return
	}

	var req struct {
		Content core.Newsletter `json:"content"`
		Title   string          `json:"title"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := s.deps.Exporter.Export(r.Context(), &req.Content, req.Title)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "url": url})
}

// handleSendToOntraport handles POST /api/send-to-ontraport.
func (s *Server) handleSendToOntraport(w http.ResponseWriter, r *http.Request) {
	if s.deps.CRM == nil {
		s.respondError(w, http.StatusInternalServerError,
			"Ontraport credentials not configured. Set ONTRAPORT_APP_ID and ONTRAPORT_API_KEY")
		return
	}

	var req struct {
		HTML    string `json:"html"`
		Subject string `json:"subject"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HTML == "" || req.Subject == "" {
		s.respondError(w, http.StatusBadRequest, "HTML content and subject required")
		return
	}

	result, err := s.deps.CRM.Push(r.Context(), req.Subject, req.HTML)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "result": result})
}
