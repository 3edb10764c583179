package pbjio

import (
	"bytes"
	"context"
	"testing"

	"github.com/pbj-lang/pbj/runtime/pbjerrors"
)

func TestReadableStreamingDataEOF(t *testing.T) {
	s := NewReadableStreamingData(context.Background(), bytes.NewReader([]byte{1, 2}), 2)
	buf := make([]byte, 3)
	err := s.ReadBytes(buf)
	if !pbjerrors.IsEndOfStream(err) {
		t.Fatalf("want EndOfStream, got %v", err)
	}
}

func TestWritableStreamingDataRoundTrip(t *testing.T) {
	var b bytes.Buffer
	w := NewWritableStreamingData(context.Background(), &b)
	if err := w.WriteBytes([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if b.String() != "abc" {
		t.Fatalf("got %q", b.String())
	}
	if w.Position() != 3 {
		t.Fatalf("position = %d", w.Position())
	}
}

func TestReadableStreamingDataContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewReadableStreamingData(ctx, bytes.NewReader([]byte{1}), 1)
	if _, err := s.ReadByte(); !pbjerrors.IsIOError(err) {
		t.Fatalf("want IOError for cancelled context, got %v", err)
	}
}
