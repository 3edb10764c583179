package pbjwire

import (
	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// Optional models an `optional` scalar field, encoded on the wire as one
// of the Well-Known wrapper messages (Int32Value, StringValue, ...): a
// length-delimited sub-message carrying exactly one sub-field at field
// number 1 of the primitive's own wire type (spec §4.1 "Optional wrapper
// messages"). Present is false for an absent field; a zero-length wrapper
// body (present-but-default) decodes to Present=true, Value=zero value.
type Optional[T any] struct {
	Present bool
	Value   T
}

// Some constructs a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Present: true, Value: v} }

// None is the absent Optional, eligible for elision on write.
func None[T any]() Optional[T] { return Optional[T]{} }

// WriteOptional emits an optional wrapper field. If absent, nothing is
// written (spec §4.1: "on write, if absent, elide").
func WriteOptional[T any](out pbjio.WritableSequentialData, fieldNumber int, opt Optional[T], wireType WireType, writeInner func(pbjio.WritableSequentialData, T) error, sizeInner func(T) int) error {
	if !opt.Present {
		return nil
	}
	innerSize := sizeInner(opt.Value)
	bodySize := 0
	if innerSize > 0 {
		bodySize = SizeOfTag(1, wireType) + innerSize
	}
	if err := WriteTag(out, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := WriteVarint(out, uint64(bodySize)); err != nil {
		return err
	}
	if bodySize == 0 {
		return nil // present-but-default: zero-length wrapper body
	}
	if err := WriteTag(out, 1, wireType); err != nil {
		return err
	}
	return writeInner(out, opt.Value)
}

// SizeOfOptional mirrors WriteOptional.
func SizeOfOptional[T any](fieldNumber int, opt Optional[T], wireType WireType, sizeInner func(T) int) int {
	if !opt.Present {
		return 0
	}
	innerSize := sizeInner(opt.Value)
	bodySize := 0
	if innerSize > 0 {
		bodySize = SizeOfTag(1, wireType) + innerSize
	}
	return SizeOfTag(fieldNumber, WireBytes) + SizeOfVarint64(uint64(bodySize)) + bodySize
}

// ReadOptional reads an optional-wrapper body already extracted by
// ReadMessageBody/ReadBytesRaw into a fresh BufferedData sub-reader: a
// zero-length body means present-but-default; otherwise it asserts the
// inner tag's field number is 1 and its wire type matches, then reads the
// value (spec §4.6 parser emitter step 3, "Optional wrapper case").
func ReadOptional[T any](sub pbjio.ReadableSequentialData, wireType WireType, readInner func(pbjio.ReadableSequentialData) (T, error)) (Optional[T], error) {
	if !sub.HasRemaining() {
		var zero T
		return Optional[T]{Present: true, Value: zero}, nil
	}
	fieldNumber, gotWireType, err := ReadTag(sub)
	if err != nil {
		return Optional[T]{}, err
	}
	if fieldNumber != 1 {
		return Optional[T]{}, pbjerrors.NewMalformed("optional wrapper inner field number %d, want 1", fieldNumber)
	}
	if gotWireType != wireType {
		return Optional[T]{}, pbjerrors.NewMalformed("optional wrapper inner wire type %d, want %d", gotWireType, wireType)
	}
	v, err := readInner(sub)
	if err != nil {
		return Optional[T]{}, err
	}
	return Optional[T]{Present: true, Value: v}, nil
}
