package lead

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrInvalidStatus = errors.New("invalid lead status")
)

// PersistenceError means the lead insert failed; the caller may retry
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist lead: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError means the lead was stored but the notification failed
type NotificationError struct {
	LeadID uuid.UUID
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify lead %s: %v", e.LeadID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
