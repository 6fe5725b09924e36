package store

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/kndndrj/iltable/core"
)

var (
	ErrNotFound          = errors.New("key not found")
	ErrClosed            = errors.New("store closed")
	ErrUnsupportedScheme = errors.New("unsupported store scheme")
)

// New opens a store described by an url:
//
//	memory://
//	pebble:///path/to/dir
//	redis://host:6379/0?prefix=iltable:
func New(rawURL string) (core.Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	switch u.Scheme {
	case "memory":
		return NewMemory(), nil
	case "pebble":
		path := u.Path
		if u.Host != "" {
			// pebble://relative/dir
			path = u.Host + u.Path
		}
		return NewPebble(path)
	case "redis", "rediss":
		return NewRedis(rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
