// Package bytesource provides concrete trace.ByteSource implementations:
// a plain buffered file, a Snappy-framed file, and a zlib-framed file,
// plus Open, which sniffs a file's magic bytes to pick among them.
//
// None of this lives in pkg/trace: the compressed-file reader and its
// format detection are external collaborators, out of scope for the core
// parser. This package is the home a real repository needs to give them,
// consumed by cmd/tracedump; pkg/trace's own tests use an in-memory
// source instead.
package bytesource

import (
	"bufio"
	"io"

	"github.com/tracefmt/tracefmt/pkg/trace"
)

// reader adapts any io.Reader (plus an optional io.Closer for the
// underlying resource) to trace.ByteSource, tracking the current read
// offset as bytes are consumed.
type reader struct {
	buf    *bufio.Reader
	closer io.Closer
	offset int64
}

func newReader(r io.Reader, closer io.Closer) *reader {
	return &reader{buf: bufio.NewReader(r), closer: closer}
}

// ReadByte returns the next byte, or ok=false at end-of-stream.
func (r *reader) ReadByte() (byte, bool) {
	b, err := r.buf.ReadByte()
	if err != nil {
		return 0, false
	}
	r.offset++
	return b, true
}

// Read fills dst completely or returns the short count read before
// end-of-stream.
func (r *reader) Read(dst []byte) int {
	n, _ := io.ReadFull(r.buf, dst)
	r.offset += int64(n)
	return n
}

// CurrentOffset returns the number of bytes consumed so far from this
// source's logical (decompressed) stream.
func (r *reader) CurrentOffset() trace.Offset {
	return trace.Offset(r.offset)
}

func (r *reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
