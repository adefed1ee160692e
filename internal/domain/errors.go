package domain

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable marks failures of the durable key-value store.
// Callers treat it as non-fatal and keep working from memory.
var ErrStorageUnavailable = errors.New("storage unavailable")

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// ProviderErrorKind classifies failures of the route text provider.
type ProviderErrorKind string

const (
	ProviderInvalidInput ProviderErrorKind = "invalid_input"
	ProviderUnavailable  ProviderErrorKind = "provider_unavailable"
	ProviderAuth         ProviderErrorKind = "provider_auth_error"
)

// ProviderError is returned by every route text provider.
type ProviderError struct {
	Kind ProviderErrorKind
	Msg  string
	Err  error
}

func (e ProviderError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e ProviderError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// ProviderKind reports the provider failure kind carried by err, if any.
func ProviderKind(err error) (ProviderErrorKind, bool) {
	var target ProviderError
	if errors.As(err, &target) {
		return target.Kind, true
	}
	return "", false
}

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
