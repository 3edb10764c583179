package pbjio

import (
	"context"
	"io"

	"github.com/pbj-lang/pbj/runtime/pbjerrors"
)

// ReadableStreamingData wraps an io.Reader as a ReadableSequentialData
// with no random-access capability, grounded on the io.Reader-wrapping
// idiom the teacher uses throughout its compiler driver rather than a
// bespoke transport type. EOF is reported as pbjerrors.ErrEndOfStream, not
// a sentinel return value, per spec §4.2.
type ReadableStreamingData struct {
	r     io.Reader
	ctx   context.Context
	pos   int64
	limit int64 // 0 means unbounded
}

// NewReadableStreamingData wraps r. limit <= 0 means unbounded (Limit()
// reports math.MaxInt64-equivalent behavior via HasRemaining always true
// until the underlying reader returns io.EOF).
func NewReadableStreamingData(ctx context.Context, r io.Reader, limit int64) *ReadableStreamingData {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ReadableStreamingData{r: r, ctx: ctx, limit: limit}
}

func (s *ReadableStreamingData) Position() int64 { return s.pos }

func (s *ReadableStreamingData) Limit() int64 {
	if s.limit <= 0 {
		return 1<<63 - 1
	}
	return s.limit
}

func (s *ReadableStreamingData) Capacity() int64 { return s.Limit() }

func (s *ReadableStreamingData) HasRemaining() bool {
	return s.limit <= 0 || s.pos < s.limit
}

func (s *ReadableStreamingData) Skip(n int64) error {
	_, err := io.CopyN(io.Discard, s.r, n)
	if err != nil {
		return translateReadErr(err)
	}
	s.pos += n
	return nil
}

func (s *ReadableStreamingData) ReadByte() (byte, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, pbjerrors.NewIO("context cancelled", err)
	}
	var b [1]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, translateReadErr(err)
	}
	s.pos++
	return b[0], nil
}

func (s *ReadableStreamingData) ReadBytes(dst []byte) error {
	if err := s.ctx.Err(); err != nil {
		return pbjerrors.NewIO("context cancelled", err)
	}
	if _, err := io.ReadFull(s.r, dst); err != nil {
		return translateReadErr(err)
	}
	s.pos += int64(len(dst))
	return nil
}

func translateReadErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return pbjerrors.ErrEndOfStream
	}
	return pbjerrors.NewIO("stream read failed", err)
}

// WritableStreamingData wraps an io.Writer as a WritableSequentialData
// with no random-access capability.
type WritableStreamingData struct {
	w   io.Writer
	ctx context.Context
	pos int64
}

func NewWritableStreamingData(ctx context.Context, w io.Writer) *WritableStreamingData {
	if ctx == nil {
		ctx = context.Background()
	}
	return &WritableStreamingData{w: w, ctx: ctx}
}

func (s *WritableStreamingData) Position() int64    { return s.pos }
func (s *WritableStreamingData) Limit() int64       { return 1<<63 - 1 }
func (s *WritableStreamingData) Capacity() int64    { return 1<<63 - 1 }
func (s *WritableStreamingData) HasRemaining() bool { return true }

func (s *WritableStreamingData) Skip(n int64) error {
	zeros := make([]byte, n)
	return s.WriteBytes(zeros)
}

func (s *WritableStreamingData) WriteByte(b byte) error {
	if err := s.ctx.Err(); err != nil {
		return pbjerrors.NewIO("context cancelled", err)
	}
	if _, err := s.w.Write([]byte{b}); err != nil {
		return pbjerrors.NewIO("stream write failed", err)
	}
	s.pos++
	return nil
}

func (s *WritableStreamingData) WriteBytes(src []byte) error {
	if err := s.ctx.Err(); err != nil {
		return pbjerrors.NewIO("context cancelled", err)
	}
	if _, err := s.w.Write(src); err != nil {
		return pbjerrors.NewIO("stream write failed", err)
	}
	s.pos += int64(len(src))
	return nil
}
