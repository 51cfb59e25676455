// Package llm wraps the external text-completion collaborator. The service
// treats it as a black box returning a single text answer or failing; there
// is no retry, streaming, or token-budget management here.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrUnconfigured is returned when no completion credential is available.
	ErrUnconfigured = errors.New("text completion service is not configured")
	// ErrCollaborator is returned when the external call errors or returns
	// malformed structured output.
	ErrCollaborator = errors.New("text completion service failed")
)

// Completer produces one completion for a system/user prompt pair. Callers
// bound the call through ctx; the collaborator is the only operation with
// externally-determined latency.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
