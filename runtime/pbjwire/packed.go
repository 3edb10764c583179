package pbjwire

import "github.com/pbj-lang/pbj/runtime/pbjio"

// ValueCodec collects the triple of read/write/size functions for one
// scalar wire representation, parameterized over the in-memory Go type T.
// Generated repeated-field code instantiates this once per field so the
// packed encode/decode loops below stay generic instead of being
// hand-duplicated per FieldType (spec §4.1 "Repeated encoding").
type ValueCodec[T any] struct {
	Read  func(pbjio.ReadableSequentialData) (T, error)
	Write func(pbjio.WritableSequentialData, T) error
	Size  func(T) int
}

// WritePacked emits a repeated primitive field as a single length-delimited
// payload: tag, summed packed length, then the values concatenated with no
// per-element tag (spec §4.1, §4.6 writer emitter).
func WritePacked[T any](out pbjio.WritableSequentialData, fieldNumber int, values []T, codec ValueCodec[T]) error {
	if len(values) == 0 {
		return nil
	}
	if err := WriteTag(out, fieldNumber, WireBytes); err != nil {
		return err
	}
	payloadLen := 0
	for _, v := range values {
		payloadLen += codec.Size(v)
	}
	if err := WriteVarint(out, uint64(payloadLen)); err != nil {
		return err
	}
	for _, v := range values {
		if err := codec.Write(out, v); err != nil {
			return err
		}
	}
	return nil
}

// SizeOfPacked mirrors WritePacked.
func SizeOfPacked[T any](fieldNumber int, values []T, codec ValueCodec[T]) int {
	if len(values) == 0 {
		return 0
	}
	payloadLen := 0
	for _, v := range values {
		payloadLen += codec.Size(v)
	}
	return SizeOfTag(fieldNumber, WireBytes) + SizeOfVarint64(uint64(payloadLen)) + payloadLen
}

// ReadPacked reads the payload of a packed length-delimited repeated field,
// appending each decoded element to dst. The caller is expected to have
// already read the field's tag and capped in's limit to the field's
// declared length (spec §4.6 parser emitter step 3, "Repeated primitive
// case").
func ReadPacked[T any](in pbjio.ReadableSequentialData, dst []T, codec ValueCodec[T]) ([]T, error) {
	for in.HasRemaining() {
		v, err := codec.Read(in)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// WriteUnpacked emits one tag+value pair per element, for STRING, BYTES,
// and MESSAGE repeated fields, which are never packed (spec §4.1).
func WriteUnpacked[T any](out pbjio.WritableSequentialData, fieldNumber int, wireType WireType, values []T, write func(pbjio.WritableSequentialData, T) error) error {
	for _, v := range values {
		if err := WriteTag(out, fieldNumber, wireType); err != nil {
			return err
		}
		if err := write(out, v); err != nil {
			return err
		}
	}
	return nil
}
