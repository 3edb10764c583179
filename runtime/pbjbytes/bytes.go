// Package pbjbytes implements the immutable, content-addressed Bytes value
// used for every `bytes` field in generated models (spec §3, §4.3).
package pbjbytes

import (
	"bytes"
	"hash/fnv"

	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// Bytes is an immutable, length-known window over an underlying byte
// storage. Two Bytes values are equal, and hash equally, iff their
// contents are equal; identity of the backing array is not observable.
// Grounded on protobuf3/encode.go's raw-bytes slicing (EncodeRawBytes),
// generalized into a standalone value type per spec §3's Bytes-value
// description.
type Bytes struct {
	data []byte
}

// Empty is the canonical zero-length Bytes value, the default for every
// `bytes` field (spec §3).
var Empty = Bytes{data: nil}

// Wrap returns a Bytes view over b without copying. Per the invariant in
// spec §3 ("the exposed view may not mutate after construction"), callers
// must not mutate b after calling Wrap; use Copy if that cannot be
// guaranteed.
func Wrap(b []byte) Bytes {
	if len(b) == 0 {
		return Empty
	}
	return Bytes{data: b}
}

// Copy returns a Bytes value owning a private copy of b.
func Copy(b []byte) Bytes {
	if len(b) == 0 {
		return Empty
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{data: cp}
}

// Length returns the number of bytes in the value.
func (b Bytes) Length() int { return len(b.data) }

// IsEmpty reports whether the value has zero length (the canonical
// default, eligible for default-value elision per spec §4.1).
func (b Bytes) IsEmpty() bool { return len(b.data) == 0 }

// GetByteAt returns the byte at the given offset.
func (b Bytes) GetByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(b.data) {
		return 0, false
	}
	return b.data[offset], true
}

// GetVarLongAt decodes the base-128, little-endian varint starting at
// offset without disturbing the value (spec §4.3 "getVarLongAt(offset)"),
// the same random-access shape as GetByteAt/pbjio.BufferedData.ReadByteAt.
// It mirrors pbjwire.ReadVarint's decode loop and overflow check over a
// fixed byte window instead of a pbjio.ReadableSequentialData.
func (b Bytes) GetVarLongAt(offset int) (uint64, bool) {
	if offset < 0 || offset >= len(b.data) {
		return 0, false
	}
	var x uint64
	i := offset
	for shift := uint(0); shift < 64; shift += 7 {
		if i >= len(b.data) {
			return 0, false
		}
		c := b.data[i]
		i++
		if shift == 63 && c&0x7f > 1 {
			return 0, false
		}
		x |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return x, true
		}
	}
	return 0, false
}

// AsSlice exposes the backing bytes read-only. Callers must treat the
// result as immutable; it is not copied for performance.
func (b Bytes) AsSlice() []byte { return b.data }

// Equal compares two Bytes values by content.
func (b Bytes) Equal(o Bytes) bool { return bytes.Equal(b.data, o.data) }

// Hash returns a content hash suitable for use as a map key component or
// equality pre-check; it is not cryptographic (the spec scopes
// cryptographic/non-cryptographic hash experiments out of the core;
// this is plain value hashing, not a hash-function experiment).
func (b Bytes) Hash() uint64 {
	h := fnv.New64a()
	h.Write(b.data)
	return h.Sum64()
}

// WriteTo streams the content to sink without an intermediate allocation
// beyond the write call itself, satisfying spec §4.3's "avoid any
// intermediate allocation that grows with the byte length."
func (b Bytes) WriteTo(sink pbjio.WritableSequentialData) error {
	if len(b.data) == 0 {
		return nil
	}
	return sink.WriteBytes(b.data)
}

// String renders the bytes as a Go string without validating UTF-8; for
// `string` fields, runtime/pbjwire.ReadString performs the UTF-8 validation
// the spec requires (§4.1, §8 invariant 6) before this is ever reached.
func (b Bytes) String() string { return string(b.data) }
