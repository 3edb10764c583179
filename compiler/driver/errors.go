package driver

import "errors"

// IOFailure wraps a failure reading a source file, walking a source
// directory, or writing a generated file — as opposed to a compile-time
// error in the .proto source itself. cmd/pbjc discriminates the two to
// choose between spec §6's exit codes 1 (compilation error) and 2 (I/O
// error), following compiler/errs's marker-interface discrimination
// pattern rather than a sentinel value.
type IOFailure struct{ Err error }

func (e *IOFailure) Error() string { return "pbj: io failure: " + e.Err.Error() }

func (e *IOFailure) Unwrap() error { return e.Err }

// IOFailureKind reports that this error is an I/O failure, not a compile
// error.
func (e *IOFailure) IOFailureKind() bool { return true }

// IsIOFailure reports whether err, or anything in its wrap chain (e.g. the
// driver's per-message "%w" context wrapper), is an IOFailure.
func IsIOFailure(err error) bool {
	type k interface{ IOFailureKind() bool }
	for err != nil {
		if e, ok := err.(k); ok && e.IOFailureKind() {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
