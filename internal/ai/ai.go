// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai wraps the remote text service behind a small interface so that
// every caller can be tested with a mock and so that the failure taxonomy is
// uniform: a missing credential, an unreachable service, and a malformed
// reply are all distinguishable but none is fatal to the pipeline.
package ai

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// Sentinel errors for the failure taxonomy. Callers route on these with
// errors.Is; none of them ever escapes the classification or extraction
// surface as an error.
var (
	// ErrNoCredential means no API key is configured. The AI path is
	// skipped silently.
	ErrNoCredential = errors.New("ai: no credential configured")

	// ErrUnavailable means the service could not be reached (offline,
	// timeout, transport failure). Enhancement work is deferred to the
	// queue on this error.
	ErrUnavailable = errors.New("ai: service unavailable")

	// ErrMalformed means the service replied but the reply violated the
	// requested output contract. The raw reply is discarded.
	ErrMalformed = errors.New("ai: malformed response")
)

// Client is the remote text service boundary. Request sends one prompt and
// returns the raw text reply. Retry is not this boundary's responsibility.
type Client interface {
	Request(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Connectivity reports whether the remote service is reachable. The pipeline
// gates AI attempts and queue draining on it.
type Connectivity interface {
	Online() bool
}

// ConnectivityFunc adapts a function to the Connectivity interface.
type ConnectivityFunc func() bool

// Online implements Connectivity.
func (f ConnectivityFunc) Online() bool { return f() }

// probeAddr is the dial target for the default connectivity probe.
// Package-level var for test substitution.
var probeAddr = "api.anthropic.com:443"

// DialProbe returns a Connectivity that reports online when a TCP connection
// to the service endpoint succeeds within timeout.
func DialProbe(timeout time.Duration) Connectivity {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return ConnectivityFunc(func() bool {
		conn, err := net.DialTimeout("tcp", probeAddr, timeout)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	})
}

// Always returns a Connectivity with a fixed answer. Tests and the CLI
// --offline flag use it.
func Always(online bool) Connectivity {
	return ConnectivityFunc(func() bool { return online })
}

// StripFences removes a markdown code-fence wrapper from a model reply.
// Models wrap JSON in ```json fences often enough that every parse site
// strips them first.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
