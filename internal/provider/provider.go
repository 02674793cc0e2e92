// Package provider implements the ordered chain of text-generation
// backends. Each backend is an independent HTTP caller with its own
// timeout; the chain sequences them and takes the first non-empty
// completion. A backend that is not configured or that fails is
// skipped, never surfaced.
package provider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider is one text-generation backend.
type Provider interface {
	// Name identifies the backend in logs and outcomes.
	Name() string

	// Available reports whether the backend is configured well enough
	// to attempt a call. It must not touch the network.
	Available() bool

	// Generate sends the prompt and returns the completion text.
	// Implementations must never return ("", nil): an empty
	// completion is an error. The call is bounded by the provider's
	// own timeout and honors ctx cancellation.
	Generate(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by providers that can verify
// reachability beyond static configuration (e.g. a local daemon).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrUnavailable signals a backend that is not configured or not
// reachable. The chain treats it as a non-error skip.
var ErrUnavailable = errors.New("provider not available")

// ErrExhausted is returned by Chain.Generate when every provider in
// the chain has been tried without producing text.
var ErrExhausted = errors.New("all providers exhausted")

// Chain sequences providers in caller-supplied order.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChain builds a chain over the given providers. Order is
// significant: earlier providers are tried first.
func NewChain(providers []Provider, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{providers: providers, logger: logger.Named("chain")}
}

// Providers returns the chain members in order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Generate tries each provider in order and returns the first
// non-empty completion unmodified. Unavailable providers are skipped
// silently; transport and parse errors are logged and skipped. There
// are no per-provider retries and no cross-provider deadline; each
// caller owns its timeout. When the whole chain fails, the returned
// error wraps ErrExhausted.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, string, error) {
	for _, p := range c.providers {
		if !p.Available() {
			c.logger.Debug("provider not configured, skipping", zap.String("provider", p.Name()))
			continue
		}
		text, err := p.Generate(ctx, prompt)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				c.logger.Debug("provider unavailable, skipping", zap.String("provider", p.Name()))
			} else {
				c.logger.Warn("provider failed, trying next",
					zap.String("provider", p.Name()),
					zap.Error(err))
			}
			continue
		}
		if text == "" {
			c.logger.Warn("provider returned empty completion, trying next",
				zap.String("provider", p.Name()))
			continue
		}
		return text, p.Name(), nil
	}
	return "", "", fmt.Errorf("chain of %d providers: %w", len(c.providers), ErrExhausted)
}

// ProbeResult reports one provider's liveness.
type ProbeResult struct {
	Provider string
	Live     bool
	Err      error
}

// Probe checks every provider concurrently and reports which are
// live. Providers implementing HealthChecker are pinged; the rest are
// judged by Available alone. Probe never fails as a whole.
func (c *Chain) Probe(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, len(c.providers))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range c.providers {
		g.Go(func() error {
			r := ProbeResult{Provider: p.Name(), Live: p.Available()}
			if hc, ok := p.(HealthChecker); ok && r.Live {
				if err := hc.Ping(ctx); err != nil {
					r.Live = false
					r.Err = err
				}
			}
			results[i] = r
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines only record results
	return results
}
