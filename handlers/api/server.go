package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-transcript/config"
	"github.com/nijaru/yt-transcript/middleware"
	"github.com/nijaru/yt-transcript/services/transcript"
	"github.com/nijaru/yt-transcript/validation"
)

type Server struct {
	transcripts *TranscriptHandler
	config      *config.Config
	logger      *logrus.Logger
	server      *http.Server
	startTime   time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func WithServices(transcriptSvc transcript.Service, validator *validation.Validator) ServerOption {
	return func(s *Server) {
		s.transcripts = NewTranscriptHandler(transcriptSvc, validator, s.config.Subtitles.MaxBodyBytes)
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	if s.transcripts != nil {
		s.addV1Routes(mux)
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.middleware(mux)
}

func (s *Server) addV1Routes(mux *http.ServeMux) {
	const v1Prefix = "/api/v1"

	mux.HandleFunc("POST "+v1Prefix+"/transcripts", s.transcripts.HandleCreate)
	mux.HandleFunc("GET "+v1Prefix+"/transcripts/{id}", s.transcripts.HandleGet)
	mux.HandleFunc("DELETE "+v1Prefix+"/transcripts/{id}", s.transcripts.HandleDelete)

	mux.HandleFunc("GET "+v1Prefix+"/videos/{videoID}/transcripts", s.transcripts.HandleListByVideo)
	mux.HandleFunc("GET "+v1Prefix+"/videos/{videoID}/transcripts/{id}", s.transcripts.HandleGetForVideo)

	mux.HandleFunc("POST "+v1Prefix+"/normalize", s.transcripts.HandleNormalize)
}

// middleware assembles the chain enabled in config. RequestID runs first so
// every later layer can see the id.
func (s *Server) middleware(handler http.Handler) http.Handler {
	mw := s.config.Middleware

	var middlewares []func(http.Handler) http.Handler
	if mw.EnableRequestID {
		middlewares = append(middlewares, middleware.RequestID())
	}
	if mw.EnableLogger {
		middlewares = append(middlewares, middleware.Logging(s.logger))
	}
	if mw.EnableRecover {
		middlewares = append(middlewares, middleware.Recovery(s.logger))
	}
	if mw.EnableCORS {
		middlewares = append(middlewares, middleware.CORS(s.config.CORS))
	}
	if mw.EnableRateLimit && s.config.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			s.config.RateLimit.RequestsPerMinute,
			s.config.RateLimit.BurstSize,
		)
		middlewares = append(middlewares, rateLimiter.Middleware)
	}
	if mw.EnableTimeout && s.config.RequestTimeout > 0 {
		middlewares = append(middlewares, middleware.Timeout(s.config.RequestTimeout))
	}

	return middleware.Chain(handler, middlewares...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.config.Version,
		"uptime":  time.Since(s.startTime).String(),
	}

	if s.config.Debug {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status["goroutines"] = runtime.NumGoroutine()
		status["memory"] = map[string]interface{}{
			"allocated": m.Alloc,
			"system":    m.Sys,
			"gc_cycles": m.NumGC,
		}
	}

	respondJSON(w, r, http.StatusOK, status)
}
