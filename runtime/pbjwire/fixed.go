package pbjwire

import (
	"encoding/binary"
	"math"

	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// ReadFixed32 reads 4 little-endian bytes (FIXED32, SFIXED32, FLOAT).
func ReadFixed32(in pbjio.ReadableSequentialData) (uint32, error) {
	var b [4]byte
	if err := in.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadFixed64 reads 8 little-endian bytes (FIXED64, SFIXED64, DOUBLE).
func ReadFixed64(in pbjio.ReadableSequentialData) (uint64, error) {
	var b [8]byte
	if err := in.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func WriteFixed32(out pbjio.WritableSequentialData, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return out.WriteBytes(b[:])
}

func WriteFixed64(out pbjio.WritableSequentialData, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return out.WriteBytes(b[:])
}

const SizeOfFixed32 = 4
const SizeOfFixed64 = 8

// ReadFloat and ReadDouble reinterpret the fixed-width bit patterns as IEEE
// 754 floating point, matching the reference protobuf FLOAT/DOUBLE wire
// representation.
func ReadFloat(in pbjio.ReadableSequentialData) (float32, error) {
	bits, err := ReadFixed32(in)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func ReadDouble(in pbjio.ReadableSequentialData) (float64, error) {
	bits, err := ReadFixed64(in)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func WriteFloat(out pbjio.WritableSequentialData, v float32) error {
	return WriteFixed32(out, math.Float32bits(v))
}

func WriteDouble(out pbjio.WritableSequentialData, v float64) error {
	return WriteFixed64(out, math.Float64bits(v))
}
