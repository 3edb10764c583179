package pbjwire

import (
	"bytes"
	"testing"

	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

func roundTripVarint(t *testing.T, v uint64, wantLen int) {
	t.Helper()
	w := pbjio.NewBufferedDataForWrite(32)
	if err := WriteVarint(w, v); err != nil {
		t.Fatalf("WriteVarint(%d): %v", v, err)
	}
	if got := len(w.Bytes()); got != wantLen {
		t.Fatalf("WriteVarint(%d) wrote %d bytes, want %d", v, got, wantLen)
	}
	if got := SizeOfVarint64(v); got != wantLen {
		t.Fatalf("SizeOfVarint64(%d) = %d, want %d", v, got, wantLen)
	}
	r := pbjio.NewBufferedData(w.Bytes())
	got, err := ReadVarint(r)
	if err != nil {
		t.Fatalf("ReadVarint: %v", err)
	}
	if got != v {
		t.Fatalf("round trip: got %d, want %d", got, v)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []struct {
		v       uint64
		wantLen int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{300, 2},
		{1 << 63, 10},
	}
	for _, c := range cases {
		roundTripVarint(t, c.v, c.wantLen)
	}
}

func TestVarintOverflowTenthByte(t *testing.T) {
	// Ten bytes, each with the continuation bit set: malformed.
	buf := bytes.Repeat([]byte{0xff}, 10)
	r := pbjio.NewBufferedData(buf)
	_, err := ReadVarint(r)
	if !pbjerrors.IsMalformed(err) {
		t.Fatalf("want Malformed, got %v", err)
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, n := range []int64{0, -1, 1, -2147483648, 2147483647, -1 << 62} {
		w := pbjio.NewBufferedDataForWrite(16)
		if err := WriteZigZag64(w, n); err != nil {
			t.Fatalf("WriteZigZag64: %v", err)
		}
		r := pbjio.NewBufferedData(w.Bytes())
		got, err := ReadZigZag64(r)
		if err != nil {
			t.Fatalf("ReadZigZag64: %v", err)
		}
		if got != n {
			t.Fatalf("zigzag round trip: got %d, want %d", got, n)
		}
	}
}

func TestInt32NegativeEncodesAsTenByteVarint(t *testing.T) {
	// Spec §8 scenario 3: Omnibus{int32=-5} writes tag 0x08 then the
	// 10-byte varint encoding of the sign-extended two's complement of -5.
	w := pbjio.NewBufferedDataForWrite(16)
	if err := WriteTag(w, 1, WireVarint); err != nil {
		t.Fatal(err)
	}
	if err := WriteInt32(w, -5); err != nil {
		t.Fatal(err)
	}
	got := w.Bytes()
	if got[0] != 0x08 {
		t.Fatalf("tag byte = %#x, want 0x08", got[0])
	}
	if len(got) != 1+10 {
		t.Fatalf("total length = %d, want 11", len(got))
	}
}

func TestPackedRepeatedInt32(t *testing.T) {
	// Spec §8 scenario 4.
	codec := ValueCodec[int32]{Read: ReadInt32, Write: WriteInt32, Size: SizeOfInt32}
	values := []int32{1, 2, 3}
	w := pbjio.NewBufferedDataForWrite(32)
	if err := WritePacked(w, 1, values, codec); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0a, 0x03, 0x01, 0x02, 0x03}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("packed encoding = % x, want % x", w.Bytes(), want)
	}

	r := pbjio.NewBufferedData(w.Bytes())
	fieldNumber, wireType, err := ReadTag(r)
	if err != nil || fieldNumber != 1 || wireType != WireBytes {
		t.Fatalf("ReadTag = (%d,%d,%v)", fieldNumber, wireType, err)
	}
	body, err := ReadBytesRaw(r)
	if err != nil {
		t.Fatal(err)
	}
	sub := pbjio.NewBufferedData(body)
	got, err := ReadPacked(sub, nil, codec)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestPackedUnpackedReadCompatibility(t *testing.T) {
	// Spec §8 invariant 4: parsing packed or unpacked encodings of the
	// same list must both yield the list.
	codec := ValueCodec[int32]{Read: ReadInt32, Write: WriteInt32, Size: SizeOfInt32}

	unpacked := pbjio.NewBufferedDataForWrite(32)
	for _, v := range []int32{1, 2, 3} {
		if err := WriteTag(unpacked, 1, WireVarint); err != nil {
			t.Fatal(err)
		}
		if err := WriteInt32(unpacked, v); err != nil {
			t.Fatal(err)
		}
	}

	r := pbjio.NewBufferedData(unpacked.Bytes())
	var got []int32
	for r.HasRemaining() {
		_, wireType, err := ReadTag(r)
		if err != nil {
			t.Fatal(err)
		}
		if wireType != WireVarint {
			t.Fatalf("unexpected wire type %d", wireType)
		}
		v, err := codec.Read(r)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestOptionalWrapperPresentButEmptyVsAbsent(t *testing.T) {
	// Spec §8 scenario 6.
	present := pbjio.NewBufferedDataForWrite(16)
	if err := WriteOptional(present, 5, Some(""), WireBytes, WriteString, SizeOfString); err != nil {
		t.Fatal(err)
	}
	if len(present.Bytes()) == 0 {
		t.Fatalf("present-but-empty optional wrote nothing")
	}

	absent := pbjio.NewBufferedDataForWrite(16)
	if err := WriteOptional(absent, 5, None[string](), WireBytes, WriteString, SizeOfString); err != nil {
		t.Fatal(err)
	}
	if len(absent.Bytes()) != 0 {
		t.Fatalf("absent optional wrote %d bytes, want 0", len(absent.Bytes()))
	}

	r := pbjio.NewBufferedData(present.Bytes())
	fieldNumber, wireType, err := ReadTag(r)
	if err != nil || fieldNumber != 5 || wireType != WireBytes {
		t.Fatalf("ReadTag = (%d,%d,%v)", fieldNumber, wireType, err)
	}
	body, err := ReadMessageBody(r)
	if err != nil {
		t.Fatal(err)
	}
	sub := pbjio.NewBufferedData(body)
	opt, err := ReadOptional(sub, WireBytes, ReadString)
	if err != nil {
		t.Fatal(err)
	}
	if !opt.Present || opt.Value != "" {
		t.Fatalf("got %+v, want present empty string", opt)
	}
}

func TestReadTagRejectsFieldZeroAndBadWireType(t *testing.T) {
	r := pbjio.NewBufferedData([]byte{0x00}) // field 0, wire type 0
	if _, _, err := ReadTag(r); !pbjerrors.IsMalformed(err) {
		t.Fatalf("want Malformed for field 0, got %v", err)
	}
	r2 := pbjio.NewBufferedData([]byte{0x0e}) // field 1, wire type 6
	if _, _, err := ReadTag(r2); !pbjerrors.IsMalformed(err) {
		t.Fatalf("want Malformed for wire type 6, got %v", err)
	}
}

func TestSkipFieldRejectsLegacyGroups(t *testing.T) {
	r := pbjio.NewBufferedData([]byte{})
	if err := SkipField(r, WireStartGroupLegacy); !pbjerrors.IsMalformed(err) {
		t.Fatalf("want Malformed, got %v", err)
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	w := pbjio.NewBufferedDataForWrite(16)
	if err := WriteVarint(w, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBytes([]byte{0xff}); err != nil {
		t.Fatal(err)
	}
	r := pbjio.NewBufferedData(w.Bytes())
	if _, err := ReadString(r); !pbjerrors.IsMalformed(err) {
		t.Fatalf("want Malformed for invalid UTF-8, got %v", err)
	}
}

func TestSizeEqualsWriteForMessage(t *testing.T) {
	// Spec §8 invariant 2, exercised directly on the sub-message helpers.
	bodyWriter := func(out pbjio.WritableSequentialData) error {
		return WriteString(out, "hello")
	}
	measured := SizeOfString("hello")
	w := pbjio.NewBufferedDataForWrite(32)
	before := w.Position()
	if err := WriteMessage(w, 3, measured, bodyWriter); err != nil {
		t.Fatal(err)
	}
	full := SizeOfMessage(3, measured)
	if int64(full) != w.Position()-before {
		t.Fatalf("measure=%d, written=%d", full, w.Position()-before)
	}
}

func TestFreshWriteBufferIsEmpty(t *testing.T) {
	// Spec §8 scenario 1 starts from this: a write buffer holds no bytes
	// until something is written to it.
	w := pbjio.NewBufferedDataForWrite(4)
	if len(w.Bytes()) != 0 {
		t.Fatalf("empty write produced %d bytes", len(w.Bytes()))
	}
}
