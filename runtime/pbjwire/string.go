package pbjwire

import (
	"unicode/utf8"

	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// ReadString reads a length-delimited UTF-8 string. UTF-8 validity is
// checked eagerly (spec §9 open question, resolved: eager), so no
// generated model ever observes an invalid string (spec §8 invariant 6).
func ReadString(in pbjio.ReadableSequentialData) (string, error) {
	b, err := ReadBytesRaw(in)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", pbjerrors.NewMalformed("invalid UTF-8 in string field")
	}
	return string(b), nil
}

// WriteString validates UTF-8 eagerly (same policy as ReadString) and
// writes the length-delimited payload. An already-invalid string can only
// originate from non-generated code constructing a model by hand; failing
// loudly here keeps the "write" side honest with the "read" side.
func WriteString(out pbjio.WritableSequentialData, s string) error {
	if !utf8.ValidString(s) {
		return pbjerrors.NewMalformed("invalid UTF-8 in string field")
	}
	if err := WriteVarint(out, uint64(len(s))); err != nil {
		return err
	}
	return out.WriteBytes([]byte(s))
}

// SizeOfString mirrors WriteString.
func SizeOfString(s string) int {
	return SizeOfVarint64(uint64(len(s))) + len(s)
}

// ReadBytesRaw reads a length-delimited byte payload with no UTF-8
// validation (BYTES fields, and the inner payload of sub-messages /
// optional wrappers before their own parser runs).
//
// The length prefix is bounded against the remaining readable bytes
// before any allocation, per spec §7 ("every length prefix is bounded
// against the remaining readable bytes before allocation").
func ReadBytesRaw(in pbjio.ReadableSequentialData) ([]byte, error) {
	n, err := ReadVarint(in)
	if err != nil {
		return nil, err
	}
	remaining := in.Limit() - in.Position()
	if int64(n) > remaining {
		return nil, pbjerrors.NewMalformed("length-delimited field length %d exceeds remaining %d bytes", n, remaining)
	}
	buf := make([]byte, n)
	if err := in.ReadBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBytesRaw writes a length-delimited byte payload with no validation.
func WriteBytesRaw(out pbjio.WritableSequentialData, b []byte) error {
	if err := WriteVarint(out, uint64(len(b))); err != nil {
		return err
	}
	return out.WriteBytes(b)
}

// SizeOfBytes mirrors WriteBytesRaw.
func SizeOfBytes(b []byte) int {
	return SizeOfVarint64(uint64(len(b))) + len(b)
}
