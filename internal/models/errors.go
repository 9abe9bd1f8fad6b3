package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInstallationFound indicates discovery produced no usable installation.
	ErrNoInstallationFound = errors.New("no Visual Studio installation found")

	// ErrVersionNotFound indicates the requested version year is not installed.
	ErrVersionNotFound = errors.New("requested Visual Studio version not found")

	// ErrToolsetMissing indicates the VC++ toolset marker or bin directory is absent.
	ErrToolsetMissing = errors.New("VC++ toolset missing")

	// ErrSdkMissing indicates no Windows SDK or UCRT version could be found.
	ErrSdkMissing = errors.New("Windows SDK missing")

	// ErrCompilerUnreachable indicates the compiler is not on the composed PATH.
	ErrCompilerUnreachable = errors.New("compiler unreachable")

	// ErrUnsupportedArchitecture indicates an unknown host/target combination.
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")
)

// Error wraps a stage failure with its kind and context.
type Error struct {
	Op   string // Stage or operation that failed
	Kind error  // One of the Err* kinds above
	Path string // Offending path, if any
	Err  error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind carried by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNoInstallationFound,
		ErrVersionNotFound,
		ErrToolsetMissing,
		ErrSdkMissing,
		ErrCompilerUnreachable,
		ErrUnsupportedArchitecture,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
