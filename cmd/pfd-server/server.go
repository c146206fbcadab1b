package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unklstewy/gcs-pfd/internal/auth"
	"github.com/unklstewy/gcs-pfd/internal/db"
	"github.com/unklstewy/gcs-pfd/internal/refresh"
	"github.com/unklstewy/gcs-pfd/pkg/lookup"
	"github.com/unklstewy/gcs-pfd/pkg/pfd"
	"github.com/unklstewy/gcs-pfd/pkg/telemetry"
)

// maxSnapshotBytes bounds uploaded snapshot documents.
const maxSnapshotBytes = 1 << 20

// Server holds the HTTP router and its dependencies
type Server struct {
	router   *chi.Mux
	loop     *refresh.Loop
	database *db.DB
	repo     *db.SnapshotRepository // nil when replaying a file
	authSvc  *auth.Service
	pfdCtx   pfd.Context
	gatherer prometheus.Gatherer
	origins  []string
	logger   *slog.Logger
}

// NewServer wires the routes. database and repo may be nil.
func NewServer(loop *refresh.Loop, database *db.DB, authSvc *auth.Service, pfdCtx pfd.Context,
	gatherer prometheus.Gatherer, origins []string, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		loop:     loop,
		database: database,
		authSvc:  authSvc,
		pfdCtx:   pfdCtx,
		gatherer: gatherer,
		origins:  origins,
		logger:   logger,
	}
	if database != nil {
		s.repo = db.NewSnapshotRepository(database)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authSvc.Middleware)
			r.Use(auth.RequirePermission(auth.CanViewDisplay))

			r.Get("/pfd", s.handleDisplay)
			r.Get("/pfd/stream", s.handleDisplayStream)
			r.Get("/vehicles", s.handleVehicles)
			r.Get("/vehicles/{vehicleID}/pfd", s.handleVehicleDisplay)

			r.With(auth.RequirePermission(auth.CanUploadTelemetry)).Post("/snapshots", s.handlePostSnapshot)
		})
	})
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	code := http.StatusOK

	if s.database != nil {
		healthy := db.HealthCheck(r.Context(), s.database)
		status["database"] = healthy
		if !healthy {
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	if _, err := s.loop.Current(); err != nil {
		status["display"] = err.Error()
	}

	respondJSON(w, code, status)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, op, err := s.authSvc.Authenticate(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.logger.Error("login failed", slog.String("username", req.Username), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"username": op.Username,
			"role":     op.Role,
		},
	})
}

// handleDisplay returns the display of the refresh loop. A failed last tick
// is reported next to the previous display.
func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	display, err := s.loop.Current()
	if display == nil {
		respondDerivationError(w, err)
		return
	}

	resp := map[string]interface{}{"display": display}
	if err != nil {
		resp["error"] = errorBody(err)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleDisplayStream pushes every new display as a server-sent event.
func (s *Server) handleDisplayStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates, cancel := s.loop.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case display, open := <-updates:
			if !open {
				return
			}
			data, err := json.Marshal(display)
			if err != nil {
				s.logger.Error("failed to encode display", slog.Any("error", err))
				return
			}
			fmt.Fprintf(w, "event: pfd\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondError(w, http.StatusNotFound, "no snapshot store configured")
		return
	}

	vehicles, err := s.repo.ListVehicles(r.Context())
	if err != nil {
		s.logger.Error("failed to list vehicles", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []db.VehicleSummary{}
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// handleVehicleDisplay derives the display of any stored vehicle on demand.
func (s *Server) handleVehicleDisplay(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondError(w, http.StatusNotFound, "no snapshot store configured")
		return
	}

	snap, err := s.repo.Latest(r.Context(), chi.URLParam(r, "vehicleID"))
	if errors.Is(err, telemetry.ErrNoSnapshot) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("failed to load snapshot", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	display, err := pfd.Derive(snap, s.pfdCtx)
	if err != nil {
		respondDerivationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"display": display})
}

func (s *Server) handlePostSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondError(w, http.StatusNotFound, "no snapshot store configured")
		return
	}

	var snap telemetry.Snapshot
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSnapshotBytes)).Decode(&snap); err != nil {
		respondError(w, http.StatusBadRequest, "invalid snapshot: "+err.Error())
		return
	}
	if snap.VehicleID == "" {
		respondError(w, http.StatusBadRequest, "snapshot needs a vehicleId")
		return
	}

	id, err := s.repo.Save(r.Context(), &snap)
	if err != nil {
		s.logger.Error("failed to store snapshot", slog.String("vehicle", snap.VehicleID), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to store snapshot")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// errorBody describes a derivation failure for API clients.
func errorBody(err error) map[string]interface{} {
	body := map[string]interface{}{"message": err.Error()}
	if mte, ok := telemetry.IsMissingTelemetry(err); ok {
		body["missingRecord"] = mte.Record
	}
	if le, ok := lookup.IsLookupError(err); ok {
		body["table"] = le.Table
		body["index"] = le.Index
	}
	return body
}

// respondDerivationError answers 422 for snapshots that cannot be derived
// and 503 when no snapshot could be read at all.
func respondDerivationError(w http.ResponseWriter, err error) {
	status := http.StatusServiceUnavailable
	if _, ok := telemetry.IsMissingTelemetry(err); ok {
		status = http.StatusUnprocessableEntity
	} else if _, ok := lookup.IsLookupError(err); ok {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, map[string]interface{}{"error": errorBody(err)})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
