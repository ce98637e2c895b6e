package store

import (
	"errors"
	"fmt"
)

var (
	ErrCardNotFound   = errors.New("card not found")
	ErrUserNotFound   = errors.New("user does not exist")
	ErrCardExists     = errors.New("card already exists")
	ErrCorruptRecord  = errors.New("error parsing card data")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Error reports a failed store operation on one card or collection.
// Its message is the status line shown to the user.
type Error struct {
	User  string
	ID    int
	Kind  error // one of the Err* sentinels
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrCardNotFound:
		return fmt.Sprintf("Card not found at %s collection!", e.User)
	case ErrUserNotFound:
		return "User does not exist!"
	case ErrCardExists:
		return fmt.Sprintf("Card already exists at %s collection!", e.User)
	case ErrCorruptRecord:
		return "Error parsing card data"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
