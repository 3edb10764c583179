package pbjio

import "testing"

func TestBufferedDataReadWrite(t *testing.T) {
	w := NewBufferedDataForWrite(16)
	if err := w.WriteBytes([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if got := string(w.Bytes()); got != "hello" {
		t.Fatalf("got %q", got)
	}

	r := NewBufferedData(w.Bytes())
	buf := make([]byte, 5)
	if err := r.ReadBytes(buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "hello" {
		t.Fatalf("got %q", buf)
	}
	if r.HasRemaining() {
		t.Fatalf("expected exhausted reader")
	}
}

func TestBufferedDataOverflow(t *testing.T) {
	w := NewBufferedDataForWrite(2)
	if err := w.WriteBytes([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestBufferedDataUnderRead(t *testing.T) {
	r := NewBufferedData([]byte{1, 2})
	buf := make([]byte, 3)
	if err := r.ReadBytes(buf); err == nil {
		t.Fatalf("expected under-read error")
	}
}

func TestBufferedDataRandomAccess(t *testing.T) {
	r := NewBufferedData([]byte{10, 20, 30})
	v, err := r.ReadByteAt(1)
	if err != nil || v != 20 {
		t.Fatalf("got (%d, %v)", v, err)
	}
	if r.Position() != 0 {
		t.Fatalf("random access must not move position")
	}
}

func TestBufferedDataSkip(t *testing.T) {
	r := NewBufferedData([]byte{1, 2, 3, 4})
	if err := r.Skip(2); err != nil {
		t.Fatal(err)
	}
	if r.Position() != 2 {
		t.Fatalf("position = %d, want 2", r.Position())
	}
	if err := r.Skip(10); err == nil {
		t.Fatalf("expected skip-past-limit error")
	}
}
