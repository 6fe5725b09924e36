package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/kndndrj/iltable/core"
)

var _ core.Store = (*Pebble)(nil)

// Pebble persists entries in a local pebble database.
type Pebble struct {
	db     *pebble.DB
	mu     sync.RWMutex
	closed bool
}

func NewPebble(path string) (*Pebble, error) {
	if path == "" {
		return nil, errors.New("pebble: empty path")
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}

	return &Pebble{db: db}, nil
}

func (p *Pebble) Set(_ context.Context, key, value string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	if err := p.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *Pebble) Get(_ context.Context, key string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return "", ErrClosed
	}

	value, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return "", fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	// value is only valid until closer is closed
	return string(value), nil
}

func (p *Pebble) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.db.Close()
}
