package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kasuboski/marquee/config"
	"github.com/kasuboski/marquee/pkg/manager"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 3 * time.Second

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Server houses all dependencies for the discovery API such as loggers, the media manager and configuration.
type Server struct {
	baseLogger  *zap.SugaredLogger
	manager     manager.MediaManager
	config      config.Server
	searchLimit int
}

// New creates a new discovery server
func New(logger *zap.SugaredLogger, manager manager.MediaManager, cfg config.Config) Server {
	return Server{
		baseLogger:  logger,
		manager:     manager,
		config:      cfg.Server,
		searchLimit: cfg.Search.DefaultLimit,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) error {
	return writeResponse(w, status, ErrorResponse{Error: message})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Router builds the handler for every route. Each API route is served both
// at the root and under /api.
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(recordRoute)
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	limited := rtr.NewRoute().Subrouter()
	limited.Use(RateLimitMiddleware(s.config.RequestsPerMinute))
	s.routes(limited.PathPrefix("/api").Subrouter())
	s.routes(limited)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var h http.Handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)(rtr)
	h = s.LogMiddleware()(SecurityHeaders(h))

	if s.config.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.baseLogger}),
		handlers.PrintRecoveryStack(true),
	)(h)
}

func (s Server) routes(r *mux.Router) {
	r.HandleFunc("/search", s.Search()).Methods(http.MethodGet)

	r.HandleFunc("/genres", s.ListGenres()).Methods(http.MethodGet)
	r.HandleFunc("/genres/{id}/movies", s.GenreTitles(media.KindMovie)).Methods(http.MethodGet)
	r.HandleFunc("/genres/{id}/tv", s.GenreTitles(media.KindTV)).Methods(http.MethodGet)

	r.HandleFunc("/movies", s.Popular(media.KindMovie)).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id}", s.MovieDetails()).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id}/videos", s.MovieVideos()).Methods(http.MethodGet)

	r.HandleFunc("/tv", s.Popular(media.KindTV)).Methods(http.MethodGet)
	r.HandleFunc("/tv/{id}", s.TVDetails()).Methods(http.MethodGet)
	r.HandleFunc("/tv/{id}/season/{season}", s.Season()).Methods(http.MethodGet)

	r.HandleFunc("/play", s.Play()).Methods(http.MethodGet)
}

// Serve starts the http server and blocks until ctx is cancelled or the server fails
func (s Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", "port", s.config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.baseLogger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

type recoveryLogger struct {
	log *zap.SugaredLogger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error(v...)
}
