package pbjwire

import (
	"testing"

	"github.com/pbj-lang/pbj/runtime/pbjio"
)

// Grounded on protobuf3/benchmark_test.go's BenchmarkEncodeSmallVarint: a
// JMH-equivalent benchmark is out of scope (spec §1), but a Go testing.B
// benchmark is ambient test tooling the teacher itself carries.
func BenchmarkWriteVarintSmall(b *testing.B) {
	buf := pbjio.NewBufferedDataForWrite(2 * 128)
	for i := 0; i < b.N; i++ {
		_ = WriteVarint(buf, uint64(i&16383))
		if i&127 == 127 {
			buf.Reset()
		}
	}
}

func BenchmarkReadVarintSmall(b *testing.B) {
	buf := pbjio.NewBufferedDataForWrite(2 * 128)
	_ = WriteVarint(buf, 300)
	data := buf.Bytes()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := pbjio.NewBufferedData(data)
		_, _ = ReadVarint(r)
	}
}
