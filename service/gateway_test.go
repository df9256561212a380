package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/types"
)

// stubAIService fails a fixed number of times before succeeding.
type stubAIService struct {
	calls    int
	failures int
	err      error
	response string
}

func (s *stubAIService) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.calls <= s.failures {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubAIService) CompleteStream(ctx context.Context, prompt string, handler types.StreamHandler) error {
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	handler(s.response)
	return nil
}

func newTestGateway(provider AIService, maxAttempts int) *Gateway {
	return NewGateway(provider, time.Second, maxAttempts, time.Millisecond, zap.NewNop())
}

func TestGatewayRetriesTransientFailures(t *testing.T) {
	stub := &stubAIService{failures: 2, err: errors.New("upstream hiccup"), response: "answer"}
	g := newTestGateway(stub, 3)

	out, err := g.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 3, stub.calls)
}

func TestGatewayExhaustsAttempts(t *testing.T) {
	stub := &stubAIService{failures: 10, err: errors.New("still down")}
	g := newTestGateway(stub, 3)

	_, err := g.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, types.ErrGatewayUnavailable)
	assert.Equal(t, 3, stub.calls)
}

func TestGatewayDoesNotRetryAuthenticationFailure(t *testing.T) {
	stub := &stubAIService{failures: 10, err: types.ErrAuthenticationFailed}
	g := newTestGateway(stub, 3)

	_, err := g.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, types.ErrAuthenticationFailed)
	assert.NotErrorIs(t, err, types.ErrGatewayUnavailable)
	assert.Equal(t, 1, stub.calls)
}

func TestGatewayDoesNotRetryRejectedGeneration(t *testing.T) {
	stub := &stubAIService{failures: 10, err: types.ErrGenerationRejected}
	g := newTestGateway(stub, 3)

	_, err := g.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, types.ErrGenerationRejected)
	assert.Equal(t, 1, stub.calls)
}

func TestGatewaySingleAttemptSuccess(t *testing.T) {
	stub := &stubAIService{response: "ok"}
	g := newTestGateway(stub, 1)

	out, err := g.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, stub.calls)
}

func TestGatewayStreamDoesNotRetry(t *testing.T) {
	stub := &stubAIService{failures: 1, err: errors.New("stream broke")}
	g := newTestGateway(stub, 3)

	var got string
	err := g.CompleteStream(context.Background(), "prompt", func(delta string) { got += delta })
	assert.ErrorIs(t, err, types.ErrGatewayUnavailable)
	assert.Equal(t, 1, stub.calls)
	assert.Empty(t, got)
}

func TestGatewayStreamDelivers(t *testing.T) {
	stub := &stubAIService{response: "partial"}
	g := newTestGateway(stub, 3)

	var got string
	err := g.CompleteStream(context.Background(), "prompt", func(delta string) { got += delta })
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}
