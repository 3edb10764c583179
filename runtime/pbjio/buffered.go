package pbjio

import "github.com/pbj-lang/pbj/runtime/pbjerrors"

// DefaultMaxCapacity is the cap applied to a BufferedData created without
// an explicit capacity (spec §9 open question: exposed as a parameter
// rather than hard-coded, default chosen to match the original 10 MiB
// convenience cap).
const DefaultMaxCapacity = 10 << 20 // 10 MiB

// BufferedData is a fixed-capacity, in-memory buffer supporting sequential
// read, sequential write, and random access. It is the concrete type every
// generated parser and writer is handed for in-memory (non-streaming) use,
// grounded on protobuf3.Buffer's combined read/write buffer but split out
// as its own type to satisfy ReadableSequentialData, WritableSequentialData
// and RandomAccessData simultaneously, per spec §4.2.
//
// A BufferedData is not safe for concurrent use: one logical stream is
// owned by one logical parse-or-write operation from start to completion.
type BufferedData struct {
	buf      []byte
	pos      int64
	limit    int64
	capacity int64
}

// NewBufferedData wraps an existing byte slice for reading. Position
// starts at 0, Limit and Capacity are len(b).
func NewBufferedData(b []byte) *BufferedData {
	return &BufferedData{buf: b, limit: int64(len(b)), capacity: int64(len(b))}
}

// NewBufferedDataForWrite allocates a fresh buffer of the given capacity
// for writing. maxCapacity <= 0 selects DefaultMaxCapacity.
func NewBufferedDataForWrite(maxCapacity int) *BufferedData {
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxCapacity
	}
	return &BufferedData{buf: make([]byte, 0, maxCapacity), capacity: int64(maxCapacity)}
}

func (b *BufferedData) Position() int64    { return b.pos }
func (b *BufferedData) Limit() int64       { return b.limit }
func (b *BufferedData) Capacity() int64    { return b.capacity }
func (b *BufferedData) HasRemaining() bool { return b.pos < b.limit }
func (b *BufferedData) Length() int64      { return b.limit }

// Bytes returns the live backing slice truncated to what has been
// written/is readable. Callers must not mutate the returned slice.
func (b *BufferedData) Bytes() []byte { return b.buf[:b.limit] }

// SetLimit narrows or restores the readable/writable horizon. Generated
// parsers do not call it: they read a length-delimited field's payload
// into a fresh BufferedData (see pbjwire.ReadMessageBody) instead.
func (b *BufferedData) SetLimit(limit int64) { b.limit = limit }

func (b *BufferedData) Skip(n int64) error {
	if n < 0 || b.pos+n > b.limit {
		return pbjerrors.NewIO("skip past limit", nil)
	}
	b.pos += n
	return nil
}

func (b *BufferedData) ReadByte() (byte, error) {
	if b.pos >= b.limit {
		return 0, pbjerrors.NewIO("read past limit", nil)
	}
	v := b.buf[b.pos]
	b.pos++
	return v, nil
}

func (b *BufferedData) ReadBytes(dst []byte) error {
	if b.pos+int64(len(dst)) > b.limit {
		return pbjerrors.NewIO("read past limit", nil)
	}
	n := copy(dst, b.buf[b.pos:])
	b.pos += int64(n)
	return nil
}

func (b *BufferedData) ReadByteAt(offset int64) (byte, error) {
	if offset < 0 || offset >= b.limit {
		return 0, pbjerrors.NewIO("random read past limit", nil)
	}
	return b.buf[offset], nil
}

func (b *BufferedData) WriteByte(v byte) error {
	if b.pos >= b.capacity {
		return pbjerrors.NewIO("write past capacity", nil)
	}
	b.buf = append(b.buf[:b.pos], v)
	b.pos++
	if b.pos > b.limit {
		b.limit = b.pos
	}
	return nil
}

func (b *BufferedData) WriteBytes(src []byte) error {
	if b.pos+int64(len(src)) > b.capacity {
		return pbjerrors.NewIO("write past capacity", nil)
	}
	b.buf = append(b.buf[:b.pos], src...)
	b.pos += int64(len(src))
	if b.pos > b.limit {
		b.limit = b.pos
	}
	return nil
}

// Reset rewinds position and limit for reuse, matching
// protobuf3.Buffer.Reset's "ready for marshaling a new protocol buffer."
func (b *BufferedData) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
	b.limit = 0
}
