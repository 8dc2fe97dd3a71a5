package wheel

import (
	"errors"
	"fmt"
)

// ValidationError reports a request that can never succeed regardless of
// resources: pool smaller than the ticket size, guarantee parameters out of
// range, malformed pool. Raised before any enumeration is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ResourceLimitError reports a request whose estimated combination count
// exceeds the configured ceiling. The estimate is included so the caller can
// suggest a smaller pool or a simpler guarantee.
type ResourceLimitError struct {
	What      string // which structure would explode (e.g. "candidate tickets")
	Estimated int64
	Limit     int64
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("%s would require %d combinations, exceeding the limit of %d; reduce the pool or relax the guarantee",
		e.What, e.Estimated, e.Limit)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsResourceLimit reports whether err is a ResourceLimitError.
func IsResourceLimit(err error) bool {
	var re *ResourceLimitError
	return errors.As(err, &re)
}
