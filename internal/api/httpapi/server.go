// Package httpapi exposes the event dispatch endpoint over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/app/skill"
)

// Server routes dispatcher requests to the skill service.
type Server struct {
	router *mux.Router
	svc    *skill.Service
}

// New creates the HTTP API around the skill service.
func New(svc *skill.Service) *Server {
	s := &Server{svc: svc}

	r := mux.NewRouter()
	r.Use(requestID, logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/users/{userID}/events", s.handleEvent).Methods(http.MethodPost)
	s.router = r

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var ev skill.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid event payload", http.StatusBadRequest)
		return
	}
	if ev.Kind == "" {
		http.Error(w, "event kind is required", http.StatusBadRequest)
		return
	}

	resp := s.svc.HandleEvent(r.Context(), userID, ev)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zlog.Error().Err(err).Msg("failed to encode response")
	}
}

// requestID tags every request with an id, honoring one supplied upstream.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		zlog.Debug().Msgf("http request: method=%s path=%s status=%d duration=%s request_id=%s",
			r.Method, r.URL.Path, rec.status, time.Since(start), w.Header().Get("X-Request-Id"))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
