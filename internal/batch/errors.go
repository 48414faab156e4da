package batch

import (
	"errors"
	"fmt"
)

// ErrUndecodable is wrapped by a ReadError when the source bytes are not
// text in a supported encoding.
var ErrUndecodable = errors.New("input is not valid UTF-8 or UTF-16 text")

// ReadError reports a source that could not be read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// PackageError reports a document whose package could not be written.
type PackageError struct {
	Path string
	Err  error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
