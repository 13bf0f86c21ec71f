package usecase

import (
	"context"
	"errors"
)

// ErrStoreTimeout is surfaced when the persistent store does not answer
// within the configured deadline. Distinct from not-found and conflict
// so callers can tell "absent" from "unknown".
var ErrStoreTimeout = errors.New("store request timed out")

// storeErr maps a deadline expiry to ErrStoreTimeout and passes every
// other error through unchanged.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreTimeout
	}
	return err
}
