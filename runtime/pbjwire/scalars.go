package pbjwire

import "github.com/pbj-lang/pbj/runtime/pbjio"

// This file provides the per-FieldType read/write/size trio that
// generated parser, writer, and size-measurement code calls directly,
// dispatching to the varint/zigzag/fixed primitives above. Keeping the
// dispatch here (rather than inline in every generated file) is what lets
// the emitter keep write and measure in lock-step (spec §9 "size-write
// lock-step").

func ReadBool(in pbjio.ReadableSequentialData) (bool, error) {
	v, err := ReadVarint(in)
	return v != 0, err
}

func WriteBool(out pbjio.WritableSequentialData, v bool) error {
	if v {
		return WriteVarint(out, 1)
	}
	return WriteVarint(out, 0)
}

func SizeOfBool(v bool) int {
	if v {
		return 1
	}
	return 1
}

func ReadInt32(in pbjio.ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(in)
	return int32(v), err
}

func WriteInt32(out pbjio.WritableSequentialData, v int32) error {
	// Negative int32 values sign-extend to 64 bits on the wire, matching
	// the reference encoder's handling of INT32 (always a 10-byte varint
	// for negative values), per spec §8 scenario 3.
	return WriteVarint(out, uint64(int64(v)))
}

func SizeOfInt32(v int32) int { return SizeOfVarint64(uint64(int64(v))) }

func ReadInt64(in pbjio.ReadableSequentialData) (int64, error) {
	v, err := ReadVarint(in)
	return int64(v), err
}

func WriteInt64(out pbjio.WritableSequentialData, v int64) error {
	return WriteVarint(out, uint64(v))
}

func SizeOfInt64(v int64) int { return SizeOfVarint64(uint64(v)) }

func ReadUint32(in pbjio.ReadableSequentialData) (uint32, error) {
	v, err := ReadVarint(in)
	return uint32(v), err
}

func WriteUint32(out pbjio.WritableSequentialData, v uint32) error {
	return WriteVarint(out, uint64(v))
}

func SizeOfUint32(v uint32) int { return SizeOfVarint64(uint64(v)) }

func ReadUint64(in pbjio.ReadableSequentialData) (uint64, error) {
	return ReadVarint(in)
}

func WriteUint64(out pbjio.WritableSequentialData, v uint64) error {
	return WriteVarint(out, v)
}

func SizeOfUint64(v uint64) int { return SizeOfVarint64(v) }

func ReadSfixed32(in pbjio.ReadableSequentialData) (int32, error) {
	v, err := ReadFixed32(in)
	return int32(v), err
}

func WriteSfixed32(out pbjio.WritableSequentialData, v int32) error {
	return WriteFixed32(out, uint32(v))
}

func ReadSfixed64(in pbjio.ReadableSequentialData) (int64, error) {
	v, err := ReadFixed64(in)
	return int64(v), err
}

func WriteSfixed64(out pbjio.WritableSequentialData, v int64) error {
	return WriteFixed64(out, uint64(v))
}

func ReadEnum(in pbjio.ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(in)
	return int32(v), err
}

func WriteEnum(out pbjio.WritableSequentialData, v int32) error {
	return WriteVarint(out, uint64(int64(v)))
}

func SizeOfEnum(v int32) int { return SizeOfVarint64(uint64(int64(v))) }
