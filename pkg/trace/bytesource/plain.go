package bytesource

import "os"

// Plain is an uncompressed, buffered file ByteSource. It is the fallback
// format detect.go picks when a file's magic bytes match neither Snappy
// framing nor a zlib header, and the format synthetic test fixtures use
// directly.
type Plain struct {
	*reader
}

// OpenPlain opens path as an uncompressed trace file.
func OpenPlain(path string) (*Plain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Plain{reader: newReader(f, f)}, nil
}
