package runner

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network/httputils"
)

const RequestIDHeader = "X-Request-Id"

// ResponseLogWriter keeps the status and size of the response; it is a
// `http.Flusher` so the event streams keep working behind it.
type ResponseLogWriter struct {
	w      http.ResponseWriter
	status int
	size   int
}

func NewResponseLogWriter(w http.ResponseWriter) *ResponseLogWriter {
	return &ResponseLogWriter{w: w, status: http.StatusOK}
}

func (l *ResponseLogWriter) Header() http.Header {
	return l.w.Header()
}

func (l *ResponseLogWriter) Write(b []byte) (int, error) {
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *ResponseLogWriter) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *ResponseLogWriter) Status() int {
	return l.status
}

func (l *ResponseLogWriter) Size() int {
	return l.size
}

func (l *ResponseLogWriter) Flush() {
	if f, ok := l.w.(http.Flusher); ok {
		f.Flush()
	}
}

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					logger.Error("recover a panic", "error", err, "stack", string(debug.Stack()))
					httputils.WriteError(w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogMiddleware sets the request id header and logs the request and
// the response with it.
func RequestLogMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := r.Header.Get(RequestIDHeader)
			if len(uid) < 1 {
				uid = common.GenerateUUID()
			}
			w.Header().Set(RequestIDHeader, uid)

			logger.Debug(
				"request",
				"id", uid,
				"method", r.Method,
				"uri", r.URL.RequestURI(),
				"proto", r.Proto,
				"remote", r.RemoteAddr,
				"content-length", r.ContentLength,
				"user-agent", r.UserAgent(),
			)

			writer := NewResponseLogWriter(w)
			next.ServeHTTP(writer, r)

			logger.Debug("response", "id", uid, "status", writer.Status(), "size", writer.Size())
		})
	}
}

// MetricsMiddleware labels the API metrics by the route template, not by
// the requested path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		writer := NewResponseLogWriter(w)
		next.ServeHTTP(writer, r)

		metrics.API.ObserveRequest(endpoint, r.Method, writer.Status(), time.Since(begin))
	})
}

// RateLimitMiddleware limits the requests by the client ip; `rate` is like
// `100-S` or `1000-H`. The exceeded requests get 429.
func RateLimitMiddleware(rate string) (mux.MiddlewareFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	middleware := stdlib.NewMiddleware(limiter.New(memory.NewStore(), parsed))
	return middleware.Handler, nil
}
