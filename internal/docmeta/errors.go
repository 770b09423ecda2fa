package docmeta

import (
	"errors"
	"fmt"
)

var (
	// ErrIO classifies failures to read or decode a source file.
	ErrIO = errors.New("io failure")

	// ErrSyntax classifies source text that the grammar could not parse cleanly.
	ErrSyntax = errors.New("syntax failure")
)

// Kind is the category of an extraction failure.
type Kind int

const (
	KindIO Kind = iota + 1
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// ExtractError is returned by the extraction pipeline. It carries the path of
// the offending file and preserves the underlying cause.
type ExtractError struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s failure for %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ExtractError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrSyntax:
		return e.Kind == KindSyntax
	}
	return false
}

// NewIOError wraps err as an IO failure for path.
func NewIOError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &ExtractError{Kind: KindIO, Path: path, Err: err}
}

// NewSyntaxError wraps err as a syntax failure for path.
func NewSyntaxError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &ExtractError{Kind: KindSyntax, Path: path, Err: err}
}

// KindOf returns the failure kind of err, or 0 if err is not an *ExtractError.
func KindOf(err error) Kind {
	var e *ExtractError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
