package pbjio

import "hash"

// MessageDigestSink is a WritableSequentialData that feeds every written
// byte straight into a hash.Hash without materializing them, so that
// Bytes.WriteTo (runtime/pbjbytes) and the writer emitter's measure/write
// pair can produce a content hash with no intermediate allocation. It
// reports unbounded capacity and limit and only tracks position, which is
// all the size-equals-write invariant (spec §4.1) needs from a sink.
type MessageDigestSink struct {
	h   hash.Hash
	pos int64
}

func NewMessageDigestSink(h hash.Hash) *MessageDigestSink {
	return &MessageDigestSink{h: h}
}

func (d *MessageDigestSink) Position() int64    { return d.pos }
func (d *MessageDigestSink) Limit() int64       { return 1<<63 - 1 }
func (d *MessageDigestSink) Capacity() int64    { return 1<<63 - 1 }
func (d *MessageDigestSink) HasRemaining() bool { return true }

func (d *MessageDigestSink) Skip(n int64) error {
	// Hashing a run of zero bytes still advances the digest deterministically.
	zeros := make([]byte, n)
	return d.WriteBytes(zeros)
}

func (d *MessageDigestSink) WriteByte(b byte) error {
	d.h.Write([]byte{b})
	d.pos++
	return nil
}

func (d *MessageDigestSink) WriteBytes(src []byte) error {
	d.h.Write(src)
	d.pos += int64(len(src))
	return nil
}

// Sum returns the accumulated digest, appending to b per hash.Hash.Sum.
func (d *MessageDigestSink) Sum(b []byte) []byte { return d.h.Sum(b) }
