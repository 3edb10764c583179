package pbjwire

import (
	"github.com/pbj-lang/pbj/runtime/pbjerrors"
	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// SkipField consumes exactly the bytes of a field of the given wire type,
// for use when a generated parser encounters a field number unknown to the
// schema (spec §4.1, §4.6 step 4, §8 scenario 7). Wire types 3 and 4
// (legacy groups) are rejected, matching ReadTag's own rejection so the
// two stay in lock-step.
func SkipField(in pbjio.ReadableSequentialData, wireType WireType) error {
	switch wireType {
	case WireVarint:
		_, err := ReadVarint(in)
		return err
	case WireFixed64:
		return in.Skip(8)
	case WireBytes:
		n, err := ReadVarint(in)
		if err != nil {
			return err
		}
		remaining := in.Limit() - in.Position()
		if int64(n) > remaining {
			return pbjerrors.NewMalformed("skipped length-delimited field length %d exceeds remaining %d bytes", n, remaining)
		}
		return in.Skip(int64(n))
	case WireFixed32:
		return in.Skip(4)
	default:
		return pbjerrors.NewMalformed("cannot skip legacy group wire type %d", wireType)
	}
}
