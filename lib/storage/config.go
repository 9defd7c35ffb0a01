package storage

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Config is parsed from the storage uri:
//
//  - `file:///<path>`: leveldb on disk
//  - `memory://`: in-memory leveldb
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid storage uri")
	}

	config := &Config{Scheme: strings.ToLower(parsed.Scheme)}

	switch config.Scheme {
	case "file":
		if len(parsed.Path) < 1 {
			return nil, errors.New("empty path for file storage")
		}
		config.Path = parsed.Path
	case "memory":
	default:
		return nil, errors.Errorf("unsupported storage scheme, %q", parsed.Scheme)
	}

	return config, nil
}

func (c *Config) String() string {
	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
