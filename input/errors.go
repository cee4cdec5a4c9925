package input

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is returned when a corpus, embedding or pair file is missing or unreadable
	ErrInputNotFound = errors.New("input not found")

	// ErrMalformedRecord is returned when a line does not have the expected fields
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptyCorpus is returned when an input holds no records at all
	ErrEmptyCorpus = errors.New("empty corpus")
)

/*
RecordError locates a failure at a line of an input file.

Line is 1-based; zero means the whole file.
*/
type RecordError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *RecordError) Error() string {
	switch {
	case e.Line > 0 && e.Msg != "":
		return fmt.Sprintf("%s:%d: %v: %s", e.Path, e.Line, e.Err, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Msg)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

/*
Malformed returns a MalformedRecord error for line of path
*/
func Malformed(path string, line int, format string, args ...any) error {
	return &RecordError{Path: path, Line: line, Msg: fmt.Sprintf(format, args...), Err: ErrMalformedRecord}
}

/*
Empty returns an EmptyCorpus error for path
*/
func Empty(path string) error {
	return &RecordError{Path: path, Err: ErrEmptyCorpus}
}
