package bytesource

import (
	"os"

	"github.com/golang/snappy"
)

// snappyStreamMagic is the Snappy framing-format stream identifier chunk:
// type 0xff, 3-byte little-endian length 6, body "sNaPpY". detect.go
// sniffs this to recognize a Snappy-compressed trace.
var snappyStreamMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}

// Snappy is a ByteSource backed by the Snappy block-compression framing
// format (github.com/golang/snappy), the scheme apitrace-derived trace
// writers use by default to keep captured traces small.
type Snappy struct {
	*reader
}

// OpenSnappy opens path as a Snappy-framed trace file.
func OpenSnappy(path string) (*Snappy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Snappy{reader: newReader(snappy.NewReader(f), f)}, nil
}
