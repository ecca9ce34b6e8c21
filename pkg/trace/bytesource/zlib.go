package bytesource

import (
	"os"

	"github.com/klauspost/compress/zlib"
)

// Zlib is a ByteSource backed by a zlib-compressed trace file, read with
// klauspost/compress's allocation-lighter drop-in for compress/zlib.
type Zlib struct {
	*reader
	file *os.File
}

// OpenZlib opens path as a zlib-framed trace file.
func OpenZlib(path string) (*Zlib, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Zlib{reader: newReader(zr, zr), file: f}, nil
}

// Close releases both the zlib reader and the underlying file.
func (z *Zlib) Close() error {
	err := z.reader.Close()
	if cerr := z.file.Close(); err == nil {
		err = cerr
	}
	return err
}
