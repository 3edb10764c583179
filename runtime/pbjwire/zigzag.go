package pbjwire

import "github.com/pbj-lang/pbj/runtime/pbjio"

// ZigZagEncode64 maps a signed integer to an unsigned one so small-magnitude
// values (positive or negative) encode as short varints (spec glossary).
func ZigZagEncode64(n int64) uint64 { return uint64((n << 1) ^ (n >> 63)) }

// ZigZagDecode64 inverts ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }

func ZigZagEncode32(n int32) uint32 { return uint32((n << 1) ^ (n >> 31)) }
func ZigZagDecode32(v uint32) int32 { return int32(v>>1) ^ -int32(v&1) }

// ReadZigZag64 reads a varint and un-zigzags it to a signed 64-bit value
// (SINT64 fields, spec §4.1).
func ReadZigZag64(in pbjio.ReadableSequentialData) (int64, error) {
	v, err := ReadVarint(in)
	if err != nil {
		return 0, err
	}
	return ZigZagDecode64(v), nil
}

// ReadZigZag32 is the SINT32 variant.
func ReadZigZag32(in pbjio.ReadableSequentialData) (int32, error) {
	v, err := ReadVarint(in)
	if err != nil {
		return 0, err
	}
	return ZigZagDecode32(uint32(v)), nil
}

func WriteZigZag64(out pbjio.WritableSequentialData, n int64) error {
	return WriteVarint(out, ZigZagEncode64(n))
}

func WriteZigZag32(out pbjio.WritableSequentialData, n int32) error {
	return WriteVarint(out, uint64(ZigZagEncode32(n)))
}

func SizeOfZigZag64(n int64) int { return SizeOfVarint64(ZigZagEncode64(n)) }
func SizeOfZigZag32(n int32) int { return SizeOfVarint64(uint64(ZigZagEncode32(n))) }
