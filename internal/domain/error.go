package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// FetchErrorKind tags how a remote call failed.
type FetchErrorKind int

const (
	// KindStatus is an unexpected HTTP status from the shop API.
	KindStatus FetchErrorKind = iota + 1
	// KindNotFound is a 404 on an endpoint where it means "nothing matched".
	KindNotFound
	// KindUnexpected covers network faults, bad URLs and undecodable bodies.
	KindUnexpected
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindNotFound:
		return "not_found"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// FetchError is the failure result of a shop API call.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	case KindNotFound:
		return "not found"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unexpected failure"
	}
}

func (e *FetchError) Unwrap() error {
	if e.Kind == KindNotFound {
		return ErrNotFound
	}
	return e.Err
}

// AsFetchError classifies any error as a FetchError. Errors that are not
// already tagged become KindUnexpected.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: KindUnexpected, Err: err}
}
