package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	TraceKey     contextKey = "trace"
	LoggerKey    contextKey = "logger"
)

type TraceInfo struct {
	RequestID string
	StartTime time.Time
	UserAgent string
	RemoteIP  string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func GetTraceInfo(ctx context.Context) *TraceInfo {
	if trace, ok := ctx.Value(TraceKey).(*TraceInfo); ok {
		return trace
	}
	return nil
}

// GetLogger returns the request-scoped entry installed by Logging.
func GetLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func Logging(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trace := &TraceInfo{
				RequestID: GetRequestID(r.Context()),
				StartTime: time.Now(),
				UserAgent: r.UserAgent(),
				RemoteIP:  r.RemoteAddr,
			}
			if trace.RequestID == "" {
				trace.RequestID = r.Header.Get(RequestIDHeader)
			}

			entry := logger.WithFields(logrus.Fields{
				"request_id": trace.RequestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  trace.RemoteIP,
				"user_agent": trace.UserAgent,
			})

			ctx := context.WithValue(r.Context(), TraceKey, trace)
			ctx = context.WithValue(ctx, LoggerKey, entry)

			entry.Debug("Request started")

			lrw := newLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r.WithContext(ctx))

			entry = entry.WithFields(logrus.Fields{
				"status":   lrw.statusCode,
				"duration": time.Since(trace.StartTime),
				"size":     lrw.size,
			})

			switch {
			case lrw.statusCode >= 500:
				entry.Error("Request completed with server error")
			case lrw.statusCode >= 400:
				entry.Warn("Request completed with client error")
			default:
				entry.Info("Request completed")
			}
		})
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if lrw.wroteHeader {
		return
	}
	lrw.statusCode = code
	lrw.wroteHeader = true
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if !lrw.wroteHeader {
		lrw.WriteHeader(http.StatusOK)
	}
	size, err := lrw.ResponseWriter.Write(b)
	lrw.size += int64(size)
	return size, err
}

func (lrw *loggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (lrw *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := lrw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("hijacking not supported")
}
