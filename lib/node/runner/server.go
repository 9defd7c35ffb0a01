package runner

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"

	"boscoin.io/minidao/lib/common"
)

// ServerConfig is parsed from the query of the bind endpoint, for example
// `https://0.0.0.0:12345?TLSCertFile=a.crt&TLSKeyFile=a.key&IdleTimeout=5s`.
type ServerConfig struct {
	Addr string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func (c ServerConfig) IsTLS() bool {
	return len(c.TLSCertFile) > 0
}

func parseDurationQuery(endpoint *common.Endpoint, key, defaultValue string) (d time.Duration, err error) {
	v := endpoint.Query().Get(key)
	if len(v) < 1 {
		v = defaultValue
	}

	if d, err = time.ParseDuration(v); err != nil {
		return
	}
	if d < 0 {
		err = errors.New("invalid '" + key + "'")
	}

	return
}

func NewServerConfigFromEndpoint(endpoint *common.Endpoint) (config ServerConfig, err error) {
	config.Addr = endpoint.Host

	if config.ReadTimeout, err = parseDurationQuery(endpoint, "ReadTimeout", "0s"); err != nil {
		return
	}
	if config.ReadHeaderTimeout, err = parseDurationQuery(endpoint, "ReadHeaderTimeout", "0s"); err != nil {
		return
	}
	// WriteTimeout stays 0 by default, the event streams never end
	if config.WriteTimeout, err = parseDurationQuery(endpoint, "WriteTimeout", "0s"); err != nil {
		return
	}
	if config.IdleTimeout, err = parseDurationQuery(endpoint, "IdleTimeout", "5s"); err != nil {
		return
	}

	if strings.ToLower(endpoint.Scheme) == "https" {
		config.TLSCertFile = endpoint.Query().Get("TLSCertFile")
		config.TLSKeyFile = endpoint.Query().Get("TLSKeyFile")
		if len(config.TLSCertFile) < 1 || len(config.TLSKeyFile) < 1 {
			err = errors.New("'TLSCertFile' and 'TLSKeyFile' are needed for https")
			return
		}
	}

	return
}

// NewHTTP2Server makes the server; HTTP/2 is negotiated only over TLS.
func NewHTTP2Server(config ServerConfig, handler http.Handler) (*http.Server, error) {
	server := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ErrorLog:          newServerErrorLog(),
	}
	server.SetKeepAlivesEnabled(true)

	if err := http2.ConfigureServer(server, &http2.Server{IdleTimeout: config.IdleTimeout}); err != nil {
		return nil, err
	}

	return server, nil
}
