package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// 4 MB, corpus lines and embedding rows can be long
const scannerBufSize = 4 * 1024 * 1024

/*
Open opens path for reading.

Any failure to open is reported as ErrInputNotFound with the path and cause.
*/
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	return f, nil
}

/*
EachLine calls fn for every line of r with its 1-based line number.

The line has its trailing newline removed. Iteration stops at the first error
returned by fn. A read failure, such as a line longer than the scanner
buffer, is a MalformedRecord error at the line being read; path names r in it.
*/
func EachLine(r io.Reader, path string, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, scannerBufSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := fn(lineNo, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return &RecordError{Path: path, Line: lineNo + 1, Msg: err.Error(), Err: ErrMalformedRecord}
	}
	return nil
}

/*
EachFileLine opens path and calls fn for every line.
*/
func EachFileLine(path string, fn func(lineNo int, line string) error) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EachLine(f, path, fn)
}
