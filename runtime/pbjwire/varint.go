package pbjwire

import (
	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// maxVarintBytes is the longest a base-128 varint encoding of a 64-bit
// value can be (spec §4.1 readVarint: "consume up to 10 bytes").
const maxVarintBytes = 10

// ReadVarint reads a base-128, little-endian, continuation-bit-terminated
// varint. It fails with Malformed if a continuation bit is still set on
// the 10th byte, per spec §4.1.
//
// Grounded on protobuf3.Buffer.DecodeVarint (teacher), generalized from a
// concrete *Buffer receiver to pbjio.ReadableSequentialData.
func ReadVarint(in pbjio.ReadableSequentialData) (uint64, error) {
	var x uint64
	for shift := uint(0); shift < 64; shift += 7 {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b&0x7f > 1 {
			// The 10th byte may only carry bit 63.
			return 0, pbjerrors.NewMalformed("varint overflows 64 bits")
		}
		x |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return x, nil
		}
	}
	// 10th byte still had its continuation bit set: malformed.
	return 0, pbjerrors.NewMalformed("varint overflows 64 bits")
}

// WriteVarint writes v as a base-128, little-endian varint.
func WriteVarint(out pbjio.WritableSequentialData, v uint64) error {
	var buf [maxVarintBytes]byte
	n := 0
	for v >= 0x80 {
		buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	buf[n] = byte(v)
	n++
	return out.WriteBytes(buf[:n])
}

// SizeOfVarint64 returns the exact byte count WriteVarint(out, v) would
// produce, mirroring the encoder per the size-then-write invariant
// (spec §4.1).
func SizeOfVarint64(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// SizeOfVarint32 is SizeOfVarint64 restricted to the low 32 bits, provided
// as a distinct name to mirror the spec's sizeOfVarInt32/64 pair; the
// computation is identical once the value is widened to uint64.
func SizeOfVarint32(v uint32) int { return SizeOfVarint64(uint64(v)) }
