package apperr

import (
	"errors"
	"fmt"
)

// Kind - где именно произошёл сбой
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAPI
	KindSchema
	KindData
	KindNotify
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAPI:
		return "api"
	case KindSchema:
		return "schema"
	case KindData:
		return "data"
	case KindNotify:
		return "notify"
	default:
		return "unknown"
	}
}

// Error - единственный тип ошибки, который пакеты возвращают наружу
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Configuration(op string, err error) *Error { return New(KindConfiguration, op, err) }
func API(op string, err error) *Error           { return New(KindAPI, op, err) }
func Schema(op string, err error) *Error        { return New(KindSchema, op, err) }
func Data(op string, err error) *Error          { return New(KindData, op, err) }
func Notify(op string, err error) *Error        { return New(KindNotify, op, err) }

// KindOf возвращает вид первой *Error в цепочке err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is проверяет, что err имеет заданный вид.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
