package template

import (
	"errors"
	"fmt"
)

// Kind classifies every error produced while populating and rendering a
// Context. The set is closed; callers can switch over it exhaustively.
type Kind int

const (
	// KindPattern is a file system failure while expanding a glob.
	KindPattern Kind = iota + 1
	// KindNotFound is a resolved path that does not exist.
	KindNotFound
	// KindIO is a resolved path that exists but could not be read.
	KindIO
	// KindDecode is a file whose bytes are not valid UTF-8.
	KindDecode
	// KindInvalidPath is a path without a final file name component.
	KindInvalidPath
	// KindRender is a failure reported by the template renderer.
	KindRender
)

// Sentinel errors, one per Kind, usable with errors.Is
var (
	ErrPattern     = errors.New("pattern expansion failed")
	ErrNotFound    = errors.New("file not found")
	ErrIO          = errors.New("file could not be read")
	ErrDecode      = errors.New("file is not valid UTF-8 text")
	ErrInvalidPath = errors.New("path has no file name")
	ErrRender      = errors.New("template rendering failed")
)

func (k Kind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindNotFound:
		return "not found"
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindInvalidPath:
		return "invalid path"
	case KindRender:
		return "render"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindPattern:
		return ErrPattern
	case KindNotFound:
		return ErrNotFound
	case KindIO:
		return ErrIO
	case KindDecode:
		return ErrDecode
	case KindInvalidPath:
		return ErrInvalidPath
	case KindRender:
		return ErrRender
	default:
		return nil
	}
}

// Error records a failure, the path (or pattern, or template) it concerns and
// the underlying cause.
type Error struct {
	Err  error
	Path string
	Kind Kind
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind.sentinel())
	}

	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// NewError creates a new Error
func NewError(kind Kind, path string, err error) *Error {
	return &Error{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0 if there
// is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
