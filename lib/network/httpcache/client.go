package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"golang.org/x/sync/singleflight"
)

// Client caches the successful GET responses of the wrapped handlers by
// request url. Every key starts with `keyPrefix()`; the node uses its commit
// counter for it, so a commit makes the stored responses unreachable.
// Concurrent misses of the same key run the handler once.
type Client struct {
	adapter   Adapter
	ttl       time.Duration
	keyPrefix func() string
	inflight  singleflight.Group
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{keyPrefix: func() string { return "" }}
	if err := WithOptions(opts...)(c); err != nil {
		return nil, err
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

// WithExpire sets the lifetime of the stored responses; zero never expires.
func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.ttl = ttl
		return nil
	}
}

func WithKeyPrefix(f func() string) ClientOption {
	return func(c *Client) error {
		if f == nil {
			return errors.New("key prefix func is nil")
		}
		c.keyPrefix = f
		return nil
	}
}

func WithOptions(options ...ClientOption) ClientOption {
	return func(c *Client) error {
		for _, opt := range options {
			if err := opt(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return c.WrapHandlerFunc(next.ServeHTTP)
}

func (c *Client) WrapHandlerFunc(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next(w, r)
			return
		}

		key := c.key(r)
		if resp, found := c.lookup(key); found {
			log.Debug("cache hit", "key", key)
			resp.Replay(w)
			return
		}

		v, _, shared := c.inflight.Do(key, func() (interface{}, error) {
			return c.store(key, record(next, r)), nil
		})
		if shared {
			log.Debug("shared response", "key", key)
		}

		v.(*Response).Replay(w)
	}
}

func (c *Client) store(key string, resp *Response) *Response {
	if resp.StatusCode >= 400 {
		return resp
	}

	if c.ttl > 0 {
		resp.Expiration = time.Now().Add(c.ttl)
	}
	c.adapter.Set(key, resp)
	log.Debug("response cached", "key", key, "status", resp.StatusCode)

	return resp
}

// key is `<prefix>:<url>`; the query is re-encoded, so the order of the
// parameters does not matter.
func (c *Client) key(r *http.Request) string {
	u := *r.URL
	u.RawQuery = u.Query().Encode()

	return c.keyPrefix() + ":" + u.String()
}

func (c *Client) lookup(key string) (*Response, bool) {
	resp, found := c.adapter.Get(key)
	if !found {
		return nil, false
	}
	if resp.Expired(time.Now()) {
		c.adapter.Remove(key)
		return nil, false
	}
	return resp, true
}

func record(next http.HandlerFunc, r *http.Request) *Response {
	rec := httptest.NewRecorder()
	next(rec, r)

	result := rec.Result()
	return &Response{
		Value:      rec.Body.Bytes(),
		StatusCode: result.StatusCode,
		Header:     result.Header,
	}
}
