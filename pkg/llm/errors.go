package llm

import (
	"errors"
	"fmt"

	"github.com/cpunion/claim-debate/pkg/types"
)

var (
	// ErrMissingCredential indicates no API key was configured for the provider.
	ErrMissingCredential = errors.New("missing API credential")
	// ErrUnknownProvider indicates the provider name is not supported.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrEmptyResponse indicates the service returned no text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrMissingUsage indicates the service response carried no token usage.
	ErrMissingUsage = errors.New("response missing usage metadata")
	// ErrBadConversation indicates the turns did not end with a user turn.
	ErrBadConversation = errors.New("conversation must end with a user turn")
)

// InvocationError reports a failed call to the generation service, or a
// backend that could not be configured. It is always fatal to a debate.
type InvocationError struct {
	Op    string // "configure" or "invoke"
	Role  types.Role
	Model string
	Err   error
}

func (e *InvocationError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("llm: %s %s (%s): %v", e.Op, e.Role, e.Model, e.Err)
	}
	return fmt.Sprintf("llm: %s (%s): %v", e.Op, e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
