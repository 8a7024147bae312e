package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// WriteError reports a payout insert whose outcome is unknown to the caller.
// PayoutID identifies the row so the caller can check whether it landed before retrying.
type WriteError struct {
	PayoutID uuid.UUID
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("record payout %s: %v", e.PayoutID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
