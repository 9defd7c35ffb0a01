package common

import (
	"bytes"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetrySetting turns on the retries of `HTTP2Client.Get` and
// `HTTP2Client.Do`.
type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     pester.BackoffStrategy
}

func NewRetrySetting(maxRetries int) *RetrySetting {
	return &RetrySetting{
		MaxRetries:  maxRetries,
		Concurrency: 1,
		Backoff:     pester.ExponentialJitterBackoff,
	}
}

type HTTP2Client struct {
	doer      HttpDoer
	client    *http.Client
	transport *http.Transport
}

func newHTTP2Transport(idleTimeout time.Duration, keepAlive bool) (*http.Transport, error) {
	transport := &http.Transport{
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		IdleConnTimeout:   idleTimeout,
		DisableKeepAlives: !keepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: time.Second,
		}).DialContext,
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, err
	}
	return transport, nil
}

// NewHTTP2Client makes http client, which speaks http2 over TLS. With
// `keepAlive` the timeouts are ignored, the event streams stay open.
func NewHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool) (*HTTP2Client, error) {
	if keepAlive {
		timeout, idleTimeout = 0, 0
	}

	transport, err := newHTTP2Transport(idleTimeout, keepAlive)
	if err != nil {
		return nil, err
	}

	c := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &HTTP2Client{doer: c, client: c, transport: transport}, nil
}

// NewPersistentHTTP2Client retries the failed requests by `retrySetting`;
// nil `retrySetting` is same with `NewHTTP2Client`.
func NewPersistentHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool, retrySetting *RetrySetting) (*HTTP2Client, error) {
	client, err := NewHTTP2Client(timeout, idleTimeout, keepAlive)
	if err != nil || retrySetting == nil {
		return client, err
	}

	ec := pester.NewExtendedClient(client.client)
	ec.MaxRetries = retrySetting.MaxRetries
	ec.Concurrency = retrySetting.Concurrency
	ec.Backoff = retrySetting.Backoff
	ec.KeepLog = false
	client.doer = ec

	return client, nil
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func newRequest(method, url string, body []byte, headers http.Header) (*http.Request, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if headers != nil {
		req.Header = headers
	}
	return req, nil
}

func (c *HTTP2Client) Get(url string, headers http.Header) (*http.Response, error) {
	req, err := newRequest(http.MethodGet, url, nil, headers)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post is never retried; the sequence id of a transaction makes the second
// submission fail.
func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (*http.Response, error) {
	req, err := newRequest(http.MethodPost, url, b, headers)
	if err != nil {
		return nil, err
	}
	return c.DoOnce(req)
}

func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

// DoOnce skips the retries.
func (c *HTTP2Client) DoOnce(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
