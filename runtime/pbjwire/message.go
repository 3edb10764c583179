package pbjwire

import "github.com/pbj-lang/pbj/runtime/pbjio"

// WriteMessage emits a sub-message field: tag, then the varint length
// (the pre-measured size from the sub-message's own measure function),
// then the body written by writeBody. The caller must ensure
// writeBody writes exactly measuredSize bytes (spec §4.6 writer emitter,
// "Sub-message" row) — this is the size-write lock-step invariant in
// practice, enforced by generated code calling the matching measure/write
// pair for the same sub-message type.
func WriteMessage(out pbjio.WritableSequentialData, fieldNumber int, measuredSize int, writeBody func(pbjio.WritableSequentialData) error) error {
	if err := WriteTag(out, fieldNumber, WireBytes); err != nil {
		return err
	}
	if err := WriteVarint(out, uint64(measuredSize)); err != nil {
		return err
	}
	return writeBody(out)
}

// SizeOfMessage mirrors WriteMessage.
func SizeOfMessage(fieldNumber int, measuredSize int) int {
	return SizeOfTag(fieldNumber, WireBytes) + SizeOfVarint64(uint64(measuredSize)) + measuredSize
}

// ReadMessageBody reads the length-delimited byte payload of a sub-message
// field so the caller can hand it to the sub-message's own parser via a
// fresh pbjio.NewBufferedData, implementing "cap the limit, recurse,
// restore the limit" (spec §4.6 parser emitter step 3, "Message case") as
// a bounded materialize-then-recurse instead of in-place limit mutation,
// which works identically for buffered and streaming sources.
func ReadMessageBody(in pbjio.ReadableSequentialData) ([]byte, error) {
	return ReadBytesRaw(in)
}
