package trace

import (
	"bytes"
	"math"
)

// The tests below need to construct wire bytes by hand; these helpers
// are the encode side of the varuint/string formats decoded in
// varuint.go and value.go. Encoding traces is out of scope for the
// library itself, but test fixtures still need to be built somehow.

func encodeVaruint(buf *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

func encodeString(buf *bytes.Buffer, s string) {
	encodeVaruint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func encodeFloat32(buf *bytes.Buffer, f float32) {
	bits := math.Float32bits(f)
	buf.WriteByte(byte(bits))
	buf.WriteByte(byte(bits >> 8))
	buf.WriteByte(byte(bits >> 16))
	buf.WriteByte(byte(bits >> 24))
}

func encodeFloat64(buf *bytes.Buffer, f float64) {
	bits := math.Float64bits(f)
	for i := 0; i < 8; i++ {
		buf.WriteByte(byte(bits >> (8 * uint(i))))
	}
}

// fakeSource is a trace.ByteSource backed by an in-memory byte slice,
// used throughout the test suite in place of pkg/trace/bytesource's real
// file-backed adapters.
type fakeSource struct {
	data   []byte
	pos    int
	closed bool
}

func newFakeSource(data []byte) *fakeSource {
	return &fakeSource{data: data}
}

func (f *fakeSource) ReadByte() (byte, bool) {
	if f.pos >= len(f.data) {
		return 0, false
	}
	b := f.data[f.pos]
	f.pos++
	return b, true
}

func (f *fakeSource) Read(dst []byte) int {
	n := copy(dst, f.data[f.pos:])
	f.pos += n
	return n
}

func (f *fakeSource) CurrentOffset() Offset {
	return Offset(f.pos)
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// truncateAt returns a copy of data cut off after n bytes, for
// exercising truncation-recovery behavior.
func truncateAt(data []byte, n int) []byte {
	if n > len(data) {
		n = len(data)
	}
	out := make([]byte, n)
	copy(out, data)
	return out
}
