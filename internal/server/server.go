// Package server implements the content-store HTTP API: record CRUD
// authorized by a per-record edit key, plus the AI transformation
// endpoints the authoring client calls.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/ai"
	"inkwell/internal/server/store"
)

// AI routes fan out to a metered upstream; keep the per-IP budget small.
const (
	aiRequestsPerSecond = 0.5
	aiBurst             = 3
)

// Server holds the handler dependencies.
type Server struct {
	records *store.Records
	writing *ai.Service
	log     *slog.Logger
	now     func() time.Time
}

// New assembles a server around an open database and an AI service.
func New(db *sql.DB, writing *ai.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		records: store.NewRecords(db),
		writing: writing,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", s.listRecords)
			r.Post("/", s.createRecord)
			r.Get("/{id}", s.getRecord)
			r.Put("/{id}", s.updateRecord)
			r.Delete("/{id}", s.deleteRecord)
		})
		r.Route("/ai", func(r chi.Router) {
			r.Use(rateLimitByIP(aiRequestsPerSecond, aiBurst))
			r.Post("/outline", s.aiOutline)
			r.Post("/polish", s.aiPolish)
			r.Post("/suggestions", s.aiSuggestions)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
