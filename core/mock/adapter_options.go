package mock

import (
	"context"
	"time"
)

type sourceConfig struct {
	sleep      time.Duration
	sideEffect func(context.Context) error
}

type SourceOption func(*sourceConfig)

// SourceWithSleep delays returning records.
func SourceWithSleep(s time.Duration) SourceOption {
	return func(c *sourceConfig) {
		c.sleep = s
	}
}

// SourceWithSideEffect runs fn before returning records.
// An error returned from fn fails the fetch.
func SourceWithSideEffect(fn func(context.Context) error) SourceOption {
	return func(c *sourceConfig) {
		c.sideEffect = fn
	}
}
