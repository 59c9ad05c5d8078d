package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/nijaru/yt-transcript/config"
	"github.com/nijaru/yt-transcript/errors"
)

const RequestIDHeader = "X-Request-ID"

func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}
	return handler
}

type RateLimiter interface {
	Allow() bool
	Wait(context.Context) error
	Middleware(http.Handler) http.Handler
}

// rateLimiter is a single token bucket shared by every client.
type rateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(requestsPerMinute int, burst int) RateLimiter {
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute)/60, burst),
	}
}

func (rl *rateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

func (rl *rateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

func (rl *rateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow() {
			writeError(w, r, errors.RateLimitExceeded("middleware.RateLimit"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestID reuses an incoming X-Request-ID or generates one, and exposes it
// through the request context and the response header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.New().String()
			}

			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), requestID)))
		})
	}
}

func Recovery(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.WithFields(logrus.Fields{
						"error":      rec,
						"stack":      string(debug.Stack()),
						"request_id": GetRequestID(r.Context()),
					}).Error("Panic recovered")

					writeError(w, r, errors.Internal("middleware.Recovery", nil, "Internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			if origin := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ","))
				h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
				if len(cfg.ExposedHeaders) > 0 {
					h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposedHeaders, ","))
				}
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allowedOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// Timeout bounds handler execution. Handlers see the deadline through the
// request context; the client gets a 503 with a JSON body once it passes.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	body := `{"success":false,"error":"Request timeout"}`
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, body)
	}
}

type errorBody struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(errorBody{
		Error:     appErr.Message,
		RequestID: GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}
