package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response)
	Remove(key string)
}

// Response is a recorded reply; a zero `Expiration` never expires.
type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}

func (r *Response) Expired(now time.Time) bool {
	return !r.Expiration.IsZero() && !r.Expiration.After(now)
}

// Replay writes the recorded response to `w`.
func (r *Response) Replay(w http.ResponseWriter) {
	for k, v := range r.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(r.StatusCode)
	w.Write(r.Value)
}

// Cache wraps the read handlers of the API.
type Cache interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
}
