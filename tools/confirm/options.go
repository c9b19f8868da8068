/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package confirm

import (
	"errors"
	"time"
)

// DefaultTTL bounds how long after a fetch a token may be used to publish.
const DefaultTTL = time.Hour

// Option configures an HMAC gate.
type Option func(*hmacGate) error

// WithTTL sets how long issued tokens stay valid.
func WithTTL(ttl time.Duration) Option {
	return func(g *hmacGate) error {
		if ttl <= 0 {
			return errors.New("ttl must be positive")
		}
		g.ttl = ttl
		return nil
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *hmacGate) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		g.now = now
		return nil
	}
}
