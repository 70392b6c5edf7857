package domain

import "fmt"

// StorageError wraps a failure of the user store
type StorageError struct {
	Op     string
	UserID int64
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s user %d: %v", e.Op, e.UserID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DeliveryError wraps a failed transport call
type DeliveryError struct {
	Op     string
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery: %s to %d: %v", e.Op, e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ValidationError is a malformed admin command; Usage is shown to the operator
type ValidationError struct {
	Usage string
}

func (e *ValidationError) Error() string {
	return "invalid command arguments: " + e.Usage
}

// FaultError is an unexpected failure recovered while handling an update
type FaultError struct {
	Err   error
	Stack []byte
}

func (e *FaultError) Error() string {
	return e.Err.Error()
}

func (e *FaultError) Unwrap() error { return e.Err }
