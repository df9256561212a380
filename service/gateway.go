package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// Gateway wraps a provider with the calling policy: a per-attempt
// timeout and exponential-backoff retries on transient failures.
// Credential and safety failures are never retried. It satisfies
// AIService itself so callers stay provider-agnostic.
type Gateway struct {
	provider       AIService
	timeout        time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	logger         *zap.Logger
}

func NewGateway(provider AIService, timeout time.Duration, maxAttempts int, initialBackoff time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if initialBackoff <= 0 {
		initialBackoff = 500 * time.Millisecond
	}
	return &Gateway{
		provider:       provider,
		timeout:        timeout,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		logger:         logger,
	}
}

// Complete sends the prompt, retrying transient failures up to the
// attempt limit before surfacing ErrGatewayUnavailable.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	var result string
	attempt := 0

	operation := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		out, err := g.provider.Complete(callCtx, prompt)
		if err != nil {
			if isPermanentAIError(err) {
				return backoff.Permanent(err)
			}
			g.logger.Warn("ai request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		result = out
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.initialBackoff
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(g.maxAttempts-1)), ctx))
	if err != nil {
		if isPermanentAIError(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", types.ErrGatewayUnavailable, err)
	}
	return result, nil
}

// CompleteStream streams a single attempt; a broken stream is not
// resumable, so there is no retry here.
func (g *Gateway) CompleteStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.provider.CompleteStream(callCtx, prompt, handler); err != nil {
		if isPermanentAIError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", types.ErrGatewayUnavailable, err)
	}
	return nil
}

func isPermanentAIError(err error) bool {
	return errors.Is(err, types.ErrAuthenticationFailed) || errors.Is(err, types.ErrGenerationRejected)
}
