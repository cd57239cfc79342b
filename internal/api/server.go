package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hcalazans/autovoz/internal/analysis"
	"github.com/hcalazans/autovoz/internal/history"
	"github.com/hcalazans/autovoz/internal/models"
)

// AnalysisRunner is the server's view of the analysis pipeline.
type AnalysisRunner interface {
	Run(ctx context.Context, model string, limit int) (*analysis.RunResult, error)
}

// Server exposes the dashboard's JSON surface: trigger a run, browse
// history, read the latest analysis per model and compare the two most
// recently analyzed models.
type Server struct {
	runner       AnalysisRunner
	store        history.Store
	cache        analysis.SummaryCache
	historyLimit int
	collectLimit int
}

// ServerParams bundles the server's collaborators. Cache may be nil.
type ServerParams struct {
	Runner       AnalysisRunner
	Store        history.Store
	Cache        analysis.SummaryCache
	HistoryLimit int
	CollectLimit int
}

func NewServer(p ServerParams) *Server {
	if p.HistoryLimit <= 0 {
		p.HistoryLimit = history.DefaultLimit
	}
	if p.CollectLimit <= 0 {
		p.CollectLimit = 500
	}
	return &Server{
		runner:       p.Runner,
		store:        p.Store,
		cache:        p.Cache,
		historyLimit: p.HistoryLimit,
		collectLimit: p.CollectLimit,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", s.handleRunAnalysis)
		r.Get("/history", s.handleHistory)
		r.Get("/models/{model}/latest", s.handleLatest)
		r.Get("/compare", s.handleCompare)
	})
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type infoResponse struct {
	Info string `json:"info"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type runRequest struct {
	Model string `json:"model"`
	Limit int    `json:"limit"`
}

func (s *Server) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req.Model = strings.TrimSpace(req.Model)
	if req.Model == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "model is required"})
		return
	}
	if req.Limit <= 0 || req.Limit > s.collectLimit {
		req.Limit = s.collectLimit
	}

	result, err := s.runner.Run(r.Context(), req.Model, req.Limit)
	if err != nil {
		slog.Error("[API] Analysis run failed",
			slog.String("model", req.Model),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "analysis failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	summaries, err := s.store.FetchHistory(r.Context(), limit)
	if err != nil {
		slog.Error("[API] History fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "history unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	if s.cache != nil {
		if cached, ok := s.cache.GetLatest(r.Context(), model); ok {
			latest, found := history.LatestFor([]models.AnalysisSummary{cached}, model)
			if found {
				writeJSON(w, http.StatusOK, latest)
				return
			}
		}
	}

	summaries, err := s.store.FetchHistory(r.Context(), s.historyLimit)
	if err != nil {
		slog.Error("[API] History fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "history unavailable"})
		return
	}

	latest, ok := history.LatestFor(summaries, model)
	if !ok {
		writeJSON(w, http.StatusNotFound,
			infoResponse{Info: "nenhuma análise encontrada para " + model})
		return
	}

	writeJSON(w, http.StatusOK, latest)
}

type compareResponse struct {
	A *history.LatestAnalysis `json:"a"`
	B *history.LatestAnalysis `json:"b"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.FetchHistory(r.Context(), s.historyLimit)
	if err != nil {
		slog.Error("[API] History fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "history unavailable"})
		return
	}

	recent := history.RecentModels(summaries, 2)
	if len(recent) < 2 {
		writeJSON(w, http.StatusConflict,
			infoResponse{Info: "execute a análise para pelo menos dois modelos diferentes"})
		return
	}

	a, okA := history.LatestFor(summaries, recent[0])
	b, okB := history.LatestFor(summaries, recent[1])
	if !okA || !okB {
		writeJSON(w, http.StatusConflict,
			infoResponse{Info: "não foi possível buscar a última análise dos modelos"})
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{A: a, B: b})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("[API] Failed to encode response", slog.String("error", err.Error()))
	}
}
