package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hazyhaar/movieclub/pkg/kit"
	"github.com/hazyhaar/movieclub/pkg/store"
)

// NewRouter returns an http.Handler with the read-only movie club routes.
func NewRouter(s *store.Store, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		schedule: kit.Logging(logger, "schedule")(scheduleEndpoint(s)),
		search:   kit.Logging(logger, "search")(searchEndpoint(s)),
		movie:    kit.Logging(logger, "movie")(movieEndpoint(s)),
		stats:    kit.Logging(logger, "stats")(statsEndpoint(s)),
	}

	mux.HandleFunc("GET /v1/schedule", h.handleSchedule)
	mux.HandleFunc("GET /v1/movies/search", h.handleSearch)
	mux.HandleFunc("GET /v1/movies/{id}", h.handleMovie)
	mux.HandleFunc("GET /v1/stats", h.handleStats)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	schedule kit.Endpoint
	search   kit.Endpoint
	movie    kit.Endpoint
	stats    kit.Endpoint
}

// --- schedule ---

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := h.schedule(r.Context(), &scheduleReq{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- search by title ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "missing title query parameter")
		return
	}

	resp, err := h.search(r.Context(), &searchReq{Title: title})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- movie by id ---

func (h *handler) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	resp, err := h.movie(r.Context(), &movieReq{ID: id})
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- stats ---

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
