// Package server exposes question files over HTTP, so one quizz instance
// can be the network tier of another, together with a small admin API.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizz/internal/config"
	"github.com/abhisek/quizz/internal/files"
	"github.com/abhisek/quizz/internal/questionset"
	"github.com/abhisek/quizz/internal/quiz"
	"github.com/abhisek/quizz/internal/store"
)

// maxFileSize bounds uploaded question files.
const maxFileSize = 1 << 20

// Options configures the handler.
type Options struct {
	// AllowedOrigins for CORS. Default: any origin.
	AllowedOrigins []string

	// RequestLog enables chi's request logger.
	RequestLog bool

	// Timeout per request. Default: 30s.
	Timeout time.Duration
}

type server struct {
	files   *files.Service
	configs *config.Store
	events  store.EventRepo
}

// New returns the HTTP handler. events may be nil, which disables the
// history endpoint.
func New(fs *files.Service, configs *config.Store, events store.EventRepo, opts Options) http.Handler {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	s := &server{files: fs, configs: configs, events: events}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if opts.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/files/{name}", s.rawFile)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/files", s.listFiles)
		ar.Get("/files/{name}/check", s.checkFile)
		ar.Post("/files/{name}/tidy", s.tidyFile)
		ar.Put("/files/{name}", s.putFile)
		ar.Delete("/files/{name}", s.deleteFile)

		ar.Get("/config", s.getConfig)
		ar.Put("/config", s.updateConfig)
		ar.Post("/config/reset", s.resetConfig)

		if events != nil {
			ar.Get("/sessions", s.listSessions)
		}
	})

	return r
}

func (s *server) rawFile(w http.ResponseWriter, r *http.Request) {
	text, err := s.files.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

func (s *server) listFiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.files.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *server) checkFile(w http.ResponseWriter, r *http.Request) {
	rep, err := s.files.Check(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (s *server) tidyFile(w http.ResponseWriter, r *http.Request) {
	rep, err := s.files.Tidy(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, questionset.ErrNoQuestions) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (s *server) putFile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFileSize))
	if err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.files.Put(r.Context(), name, string(body)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configs.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *server) updateConfig(w http.ResponseWriter, r *http.Request) {
	var p config.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFileSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON: " + err.Error()})
		return
	}
	cfg, err := s.configs.Update(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *server) resetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configs.Reset(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

type sessionSummary struct {
	SessionID  string    `json:"sessionId"`
	File       string    `json:"file"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	FinishedAt time.Time `json:"finishedAt"`
}

func (s *server) listSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	events, err := s.events.RecentFinished(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]sessionSummary, 0, len(events))
	for _, e := range events {
		out = append(out, sessionSummary{
			SessionID:  e.SessionID,
			File:       e.QuestionFile,
			Score:      e.Score,
			Total:      e.Total,
			Percentage: quiz.Percentage(e.Score, e.Total),
			FinishedAt: e.Timestamp,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps domain errors to status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, files.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, files.ErrInvalidName),
		errors.Is(err, config.ErrInvalidQuestionCount),
		errors.Is(err, config.ErrEmptyQuestionFile):
		status = http.StatusBadRequest
	}
	respondJSON(w, status, errorBody{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
