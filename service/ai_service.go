package service

import (
	"context"

	"github.com/tranvuminh/papermind-be/types"
)

// AIService is the boundary to a generative model. Implementations
// return the model output verbatim; they do not post-process it.
// Provider-specific failures are translated to the shared error kinds:
// ErrAuthenticationFailed for credential problems and
// ErrGenerationRejected when the provider refuses the input.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStream(ctx context.Context, prompt string, handler types.StreamHandler) error
}
