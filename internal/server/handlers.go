package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Alias1177/kalilfin/internal/analyze"
	"github.com/Alias1177/kalilfin/internal/chart"
	"github.com/Alias1177/kalilfin/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHome renders the portfolio page
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderView(w, r, "")
}

// handleAdd aggregates the submitted ticker and renders the page.
// A failed add only shows an inline error.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	ticker := analyze.NormalizeTicker(r.PostFormValue("ticker"))

	var errMsg string
	if _, err := s.dashboard.AddTicker(r.Context(), ticker); err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to add ticker")
		errMsg = fmt.Sprintf("Invalid ticker: %s", ticker)
	}

	s.renderView(w, r, errMsg)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.dashboard.RemoveTicker(chi.URLParam(r, "ticker"))
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.dashboard.Export()
	if errors.Is(err, models.ErrEmptyPortfolio) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Portfolio is empty!"))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to write export")
	}
}

// handleChart serves /chart/{ticker}.png
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ticker, ok := strings.CutSuffix(file, ".png")
	if !ok || ticker == "" {
		http.NotFound(w, r)
		return
	}

	record, found := s.dashboard.Record(ticker)
	if !found {
		http.NotFound(w, r)
		return
	}

	png, err := chart.RenderPriceChart(record)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", record.Ticker).Msg("Chart render failed")
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dashboard.View(r.Context(), ""))
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request, errMsg string) {
	view := s.dashboard.View(r.Context(), errMsg)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := pageTemplate.Execute(w, view); err != nil {
		s.log.Error().Err(err).Msg("Failed to render page")
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
