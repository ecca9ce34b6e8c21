package bytesource

import (
	"bytes"
	"os"

	"github.com/tracefmt/tracefmt/pkg/trace"
)

// Open sniffs path's leading bytes and returns the ByteSource matching
// its compression framing: Snappy, zlib, or plain. This format detection
// is an out-of-scope external collaborator for the core parser — it
// lives here, one layer above pkg/trace, so pkg/trace never has to know
// it exists.
func Open(path string) (trace.ByteSource, error) {
	head, err := peek(path, len(snappyStreamMagic))
	if err != nil {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, snappyStreamMagic):
		return OpenSnappy(path)
	case looksLikeZlib(head):
		return OpenZlib(path)
	default:
		return OpenPlain(path)
	}
}

func peek(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, _ := f.Read(buf)
	return buf[:read], nil
}

// looksLikeZlib applies the standard zlib-header sniff: the low nibble
// of the first byte (CMF) must claim the deflate compression method, and
// the big-endian 16-bit value of the first two bytes must be a multiple
// of 31 (the header's built-in check value).
func looksLikeZlib(head []byte) bool {
	if len(head) < 2 {
		return false
	}
	cmf, flg := head[0], head[1]
	if cmf&0x0f != 8 {
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}
