package resolver

import (
	"errors"
	"fmt"
)

// Kind classifies why a resolution failed.
type Kind string

// Failure kinds.
const (
	KindTransport Kind = "transport"
	KindHTTP      Kind = "http"
	KindParse     Kind = "parse"
	KindNoData    Kind = "no_data"
)

// Sentinel kinds for resolver errors, matched by errors.Is on a *Failure.
var (
	ErrTransport = errors.New("transport error")
	ErrHTTP      = errors.New("http error")
	ErrParse     = errors.New("parse error")
	ErrNoData    = errors.New("no data")
)

// Failure is the single error type returned by Resolve.
type Failure struct {
	Kind Kind
	CIK  string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("resolve %s: %s: %v", f.CIK, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the sentinel for the failure's kind.
func (f *Failure) Is(target error) bool {
	switch f.Kind {
	case KindTransport:
		return target == ErrTransport
	case KindHTTP:
		return target == ErrHTTP
	case KindParse:
		return target == ErrParse
	case KindNoData:
		return target == ErrNoData
	}
	return false
}

// KindOf returns the failure kind of err, or "" when err is not a *Failure.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
