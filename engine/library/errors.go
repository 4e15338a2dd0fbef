package library

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrInvalidOptions ErrorKind = iota + 1
	ErrNotFound
	ErrTooComplex
	ErrTrustLimitExceeded
	ErrInvalidTransfer
	ErrUnauthorizedSender
	ErrTooManyParticipants
	ErrSettlementFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidOptions:
		return "INVALID_OPTIONS"
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrTooComplex:
		return "TOO_COMPLEX"
	case ErrTrustLimitExceeded:
		return "TRUST_LIMIT_EXCEEDED"
	case ErrInvalidTransfer:
		return "INVALID_TRANSFER"
	case ErrUnauthorizedSender:
		return "UNAUTHORIZED_SENDER"
	case ErrTooManyParticipants:
		return "TOO_MANY_PARTICIPANTS"
	case ErrSettlementFailed:
		return "SETTLEMENT_FAILED"
	}
	return "UNKNOWN"
}

// TransferError is the single failure exit for the transfer engine. Every
// failure mode gets a Kind, and whatever structured context the caller needs
// to decide between retrying with a fresh snapshot, reducing the requested
// value, or aborting.
type TransferError struct {
	Kind    ErrorKind
	Detail  string
	Context map[string]string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
}

func NewTransferError(kind ErrorKind, format string, a ...interface{}) *TransferError {
	return &TransferError{
		Kind:    kind,
		Detail:  fmt.Sprintf(format, a...),
		Context: make(map[string]string),
	}
}

// With attaches a context key/value pair and returns the same error so calls
// can be chained at the failure site.
func (e *TransferError) With(key, value string) *TransferError {
	e.Context[key] = value
	return e
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not a
// TransferError.
func KindOf(err error) ErrorKind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
