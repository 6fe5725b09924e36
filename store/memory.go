package store

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/kndndrj/iltable/core"
)

var _ core.Store = (*Memory)(nil)

// Memory is an in-process store. Entries never expire.
type Memory struct {
	cache *cache.Cache
}

func NewMemory() *Memory {
	return &Memory{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected value type %T for key %q", v, key)
	}
	return s, nil
}

func (m *Memory) Close() error {
	m.cache.Flush()
	return nil
}
