package bmp

import (
	"errors"
	"fmt"
)

// Kind classifies why a load or save failed.
type Kind int

const (
	CannotOpen    Kind = iota + 1 // path unreadable or unwritable
	NotBMP                        // signature is not "BM"
	InvalidSize                   // zero width or height
	TruncatedData                 // fewer bytes than the headers declare
	WriteFailed                   // write or flush failed mid-stream
	Unsupported                   // not 24-bit uncompressed, or pixels overlap the headers
)

func (k Kind) String() string {
	switch k {
	case CannotOpen:
		return "cannot open"
	case NotBMP:
		return "not a bmp"
	case InvalidSize:
		return "invalid size"
	case TruncatedData:
		return "truncated data"
	case WriteFailed:
		return "write failed"
	case Unsupported:
		return "unsupported format"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrCannotOpen    = errors.New("bmp: cannot open file")
	ErrNotBMP        = errors.New("bmp: not a bitmap file")
	ErrInvalidSize   = errors.New("bmp: invalid image size")
	ErrTruncatedData = errors.New("bmp: truncated pixel data")
	ErrWriteFailed   = errors.New("bmp: write failed")
	ErrUnsupported   = errors.New("bmp: unsupported format")
)

var sentinels = map[Kind]error{
	CannotOpen:    ErrCannotOpen,
	NotBMP:        ErrNotBMP,
	InvalidSize:   ErrInvalidSize,
	TruncatedData: ErrTruncatedData,
	WriteFailed:   ErrWriteFailed,
	Unsupported:   ErrUnsupported,
}

// Error is returned by every failing load or save. It matches the
// sentinel of its Kind with errors.Is.
type Error struct {
	Op   string // "load" or "save"
	Kind Kind
	Path string // empty when decoding from a stream
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := "bmp: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func loadError(kind Kind, path string, err error) *Error {
	return &Error{Op: "load", Kind: kind, Path: path, Err: err}
}

func saveError(kind Kind, path string, err error) *Error {
	return &Error{Op: "save", Kind: kind, Path: path, Err: err}
}
