package domain

import (
	"errors"
	"fmt"
)

type FaultKind string

const (
	KindInvalidInput    FaultKind = "invalid_input"
	KindUnauthenticated FaultKind = "unauthenticated"
	KindForbidden       FaultKind = "forbidden"
	KindNotFound        FaultKind = "not_found"
	KindConflict        FaultKind = "conflict"
	KindInternal        FaultKind = "internal"
)

// Fault — типизированная ошибка леджера. Транспорт мапит Kind на HTTP-статус,
// бизнес-логика наружу ничего другого не отдает.
type Fault struct {
	Kind    FaultKind
	Message string
	cause   error
}

func (f *Fault) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.cause
}

func Invalid(msg string) *Fault {
	return &Fault{Kind: KindInvalidInput, Message: msg}
}

func Unauthenticated(msg string) *Fault {
	return &Fault{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Fault {
	return &Fault{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Fault {
	return &Fault{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Fault {
	return &Fault{Kind: KindConflict, Message: msg}
}

// Internal оборачивает ошибку стора. Текст причины клиенту не уходит.
func Internal(err error) *Fault {
	return &Fault{Kind: KindInternal, Message: "internal error", cause: err}
}

// KindOf возвращает Kind ошибки, KindInternal для всего незнакомого.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

func IsKind(err error, kind FaultKind) bool {
	return KindOf(err) == kind
}
