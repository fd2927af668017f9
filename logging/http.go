package logging

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds a client-supplied id.
const maxRequestIDLen = 64

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// resolveRequestID keeps a well-formed client id and mints a UUID otherwise.
func resolveRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if id == "" || len(id) > maxRequestIDLen || !requestIDPattern.MatchString(id) {
		return uuid.New().String()
	}
	return id
}

// HTTPLogger logs one entry per served request.
type HTTPLogger struct {
	logger *Logger
}

// NewHTTPLogger creates a new HTTP logger.
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{logger: logger}
}

type responseRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (r *responseRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Middleware returns an HTTP middleware that logs requests and responses.
func (h *HTTPLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := resolveRequestID(r)

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		recorder.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(recorder, r)

		level := INFO
		switch {
		case recorder.status >= 500:
			level = ERROR
		case recorder.status >= 400:
			level = WARN
		}
		h.logger.WithRequestID(requestID).
			WithCategory("http").
			WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("query", r.URL.RawQuery).
			WithField("status", recorder.status).
			WithField("size", recorder.size).
			WithField("remote_addr", r.RemoteAddr).
			WithField("user_agent", r.UserAgent()).
			WithField("referer", r.Referer()).
			WithDuration(time.Since(start)).
			Log(level, fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, recorder.status))
	})
}
