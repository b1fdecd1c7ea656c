package document

import (
	"errors"
	"fmt"
	"io/fs"
)

// ReadError reports an input file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// NotFound reports whether the input file does not exist.
func (e *ReadError) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// ParseError reports input that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing document: %v", e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports valid JSON that lacks a field the merge relies on.
// Index is the position in detectedChannels, or -1 for the document itself.
type StructureError struct {
	Field  string
	Index  int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid document: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid document: %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
