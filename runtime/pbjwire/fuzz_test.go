package pbjwire

import (
	"testing"

	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// FuzzReadVarint exercises spec §8 invariant 5 (tag domain) and invariant 7
// (fuzz stability): fed any byte sequence, the decoder must either produce
// a value or fail with Malformed or an IO (read past limit) error — never
// panic or hang. A
// light native fuzz test stands in for the full fuzz-testing harness the
// spec scopes out of the core (§1, §9).
func FuzzReadVarint(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	f.Add([]byte{0x80, 0x80, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		r := pbjio.NewBufferedData(data)
		_, err := ReadVarint(r)
		if err != nil && !pbjerrors.IsMalformed(err) && !pbjerrors.IsIOError(err) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	})
}

// FuzzReadTag exercises the tag-domain invariant directly.
func FuzzReadTag(f *testing.F) {
	f.Add([]byte{0x08})
	f.Add([]byte{0x00})
	f.Add([]byte{0x0e})
	f.Fuzz(func(t *testing.T, data []byte) {
		r := pbjio.NewBufferedData(data)
		fieldNumber, wireType, err := ReadTag(r)
		if err == nil {
			if fieldNumber == 0 {
				t.Fatalf("produced field number 0 without error")
			}
			if wireType > 5 {
				t.Fatalf("produced wire type %d without error", wireType)
			}
		} else if !pbjerrors.IsMalformed(err) && !pbjerrors.IsIOError(err) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	})
}
