package trace

// Offset is an opaque position in a ByteSource's stream. It is only ever
// compared for equality (used to key signature-inline bookkeeping) or
// formatted for diagnostics.
type Offset int64

// ByteSource is the external byte stream the parser consumes. It is
// supplied by a file layer the core does not implement — see
// pkg/trace/bytesource for concrete adapters (plain file, Snappy-framed,
// zlib-framed). The parser never depends on anything beyond this
// interface.
type ByteSource interface {
	// ReadByte returns the next byte, or ok=false at end-of-stream.
	ReadByte() (b byte, ok bool)
	// Read fills dst completely or returns the short count read before
	// end-of-stream; callers detect truncation by comparing n to len(dst).
	Read(dst []byte) (n int)
	// CurrentOffset returns a stable identifier for the current read
	// position. Must be captured before reading a signature id (see
	// internSignature in sigtable.go).
	CurrentOffset() Offset
	// Close releases the underlying resource. Idempotent.
	Close() error
}
