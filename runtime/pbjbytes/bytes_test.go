package pbjbytes

import (
	"testing"

	"github.com/pbj-lang/pbj/runtime/pbjio"
)

func TestBytesEqualityAndHash(t *testing.T) {
	a := Copy([]byte("hello"))
	b := Copy([]byte("hello"))
	c := Copy([]byte("world"))
	if !a.Equal(b) {
		t.Fatalf("expected equal contents to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected different contents to compare unequal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal contents to hash equal")
	}
}

func TestBytesEmptyDefault(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatalf("Empty should be empty")
	}
	if Wrap(nil).Length() != 0 {
		t.Fatalf("Wrap(nil) should be empty")
	}
}

func TestBytesWriteTo(t *testing.T) {
	b := Copy([]byte("payload"))
	w := pbjio.NewBufferedDataForWrite(16)
	if err := b.WriteTo(w); err != nil {
		t.Fatal(err)
	}
	if string(w.Bytes()) != "payload" {
		t.Fatalf("got %q", w.Bytes())
	}
}

func TestBytesGetByteAt(t *testing.T) {
	b := Copy([]byte{10, 20, 30})
	v, ok := b.GetByteAt(1)
	if !ok || v != 20 {
		t.Fatalf("got (%d, %v)", v, ok)
	}
	if _, ok := b.GetByteAt(5); ok {
		t.Fatalf("expected out-of-range to fail")
	}
}

func TestBytesGetVarLongAt(t *testing.T) {
	// 0x01 (tag byte to skip) then 300 encoded as a two-byte varint
	// (0xac, 0x02), per protobuf's base-128 little-endian encoding.
	b := Copy([]byte{0x01, 0xac, 0x02})
	v, ok := b.GetVarLongAt(1)
	if !ok || v != 300 {
		t.Fatalf("got (%d, %v), want (300, true)", v, ok)
	}
	// Reading from offset 0 decodes a different varint (0x01 alone).
	v0, ok := b.GetVarLongAt(0)
	if !ok || v0 != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", v0, ok)
	}
}

func TestBytesGetVarLongAtOutOfRange(t *testing.T) {
	b := Copy([]byte{0x01})
	if _, ok := b.GetVarLongAt(5); ok {
		t.Fatalf("expected out-of-range offset to fail")
	}
	if _, ok := b.GetVarLongAt(-1); ok {
		t.Fatalf("expected negative offset to fail")
	}
}

func TestBytesGetVarLongAtTruncatedFails(t *testing.T) {
	// Continuation bit set with no following byte: truncated varint.
	b := Copy([]byte{0xac})
	if _, ok := b.GetVarLongAt(0); ok {
		t.Fatalf("expected truncated varint to fail")
	}
}
