package common

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPort is used when the endpoint has no port.
const DefaultPort int = 12345

// Endpoint is the listen or connect address of a node; the query carries
// the server settings like `TLSCertFile`.
type Endpoint url.URL

// String drops the query.
func (e *Endpoint) String() string {
	return (&url.URL{Scheme: e.Scheme, Host: e.Host, Path: e.Path}).String()
}

func (e *Endpoint) Query() url.Values {
	return (*url.URL)(e).Query()
}

func ParseEndpoint(s string) (*Endpoint, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}

	switch u.Scheme {
	case "http", "https":
	case "":
		return nil, errors.New("missing scheme")
	default:
		return nil, errors.Errorf("unsupported scheme, %q", u.Scheme)
	}

	if len(u.Port()) < 1 {
		u.Host = fmt.Sprintf("%s:%d", u.Host, DefaultPort)
	}
	if port, err := strconv.ParseUint(u.Port(), 10, 16); err != nil || port < 1 {
		return nil, errors.Errorf("invalid port, %q", u.Port())
	}
	u.Host = strings.ToLower(u.Host)

	return (*Endpoint)(u), nil
}
