package gen

import (
	"bytes"
	"fmt"
)

// Source accumulates one generated Go file's text, line by line.
//
// Grounded on protogen.GeneratedFile's P(...) accumulator (teacher):
// this package skips GeneratedFile's import-management machinery (PBJ's
// generated files import a small, fixed set of runtime packages rather
// than an arbitrary protobuf type graph) but keeps its "print a line from
// a variadic argument list, join the results with fmt.Fprint" shape.
type Source struct {
	buf bytes.Buffer
}

// P prints one line, concatenating each argument with fmt.Fprint and
// terminating with a newline.
func (s *Source) P(v ...interface{}) {
	for _, x := range v {
		fmt.Fprint(&s.buf, x)
	}
	fmt.Fprintln(&s.buf)
}

// Bytes returns the accumulated source text.
func (s *Source) Bytes() []byte { return s.buf.Bytes() }
