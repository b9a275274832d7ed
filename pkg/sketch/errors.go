package sketch

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for reference resolution. Wrapped by ResolveError so
// callers can branch with errors.Is while still seeing the failing path.
var (
	ErrUnknownID       = errors.New("unknown id")
	ErrInvalidProperty = errors.New("invalid property")
	ErrMalformedPath   = errors.New("malformed path")
	ErrCycle           = errors.New("reference cycle")
)

// ResolveError describes a single resolution failure. Resolution errors are
// recoverable at the per-step granularity: one bad reference never prevents
// the rest of the scene from resolving.
type ResolveError struct {
	Path   Path   // the path that failed to resolve
	Kind   error  // one of the sentinel kinds above
	Detail string // human-readable context
}

func (e *ResolveError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", e.Path.Describe(), e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Path.Describe(), e.Kind)
}

func (e *ResolveError) Unwrap() error { return e.Kind }
