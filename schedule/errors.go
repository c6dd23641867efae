/*
errors.go - Error types for the scheduling domain

PURPOSE:
  Validation rejections and load failures in one place. A Rejection is
  user-correctable and carries the exact reason strings shown to the
  submitter; everything else is an environment failure that callers log
  and degrade from.

SEE ALSO:
  - eligibility.go: produces Rejection values
  - ../api/handlers.go: maps Rejection to HTTP 422
*/
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrMalformedCollection is returned when a persisted collection fails
// to decode. Callers degrade to an empty collection.
var ErrMalformedCollection = errors.New("malformed persisted collection")

// =============================================================================
// REJECTION - Terminal validation failure for one submission attempt
// =============================================================================

// Rejection lists the failed policy checks for a submission. It is
// terminal: the submitter corrects the form and tries again. No record is
// produced alongside a Rejection.
type Rejection struct {
	Reasons []string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("not approved: %s", strings.Join(r.Reasons, "; "))
}

func reject(reasons ...string) *Rejection {
	return &Rejection{Reasons: reasons}
}

// IsRejection reports whether err is a validation rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}
