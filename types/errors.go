package types

import "errors"

// Pipeline and gateway failure kinds. Services wrap these with %w and a
// human-readable detail; handlers map them to HTTP statuses.
var (
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrExtractionFailed     = errors.New("extraction failed")
	ErrFileTooLarge         = errors.New("file too large")
	ErrNoDocument           = errors.New("no document loaded")
	ErrGatewayUnavailable   = errors.New("gateway unavailable")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrGenerationRejected   = errors.New("generation rejected")
	ErrFormattingFailed     = errors.New("formatting failed")
)
