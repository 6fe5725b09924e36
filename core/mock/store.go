package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/kndndrj/iltable/core"
)

var _ core.Store = (*Store)(nil)

// Store is a mocked key/value store that records every write.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	err    error
}

func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

// FailWith makes all following writes fail with err.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	s.writes++
	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", errors.New("key not found: " + key)
	}
	return v, nil
}

// Writes returns the number of successful writes.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) Close() error { return nil }
