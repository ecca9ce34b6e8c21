package trace

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Option configures a Parser at Open time.
type Option func(*Parser)

// WithLogger injects a zerolog.Logger that receives recoverable and
// advisory diagnostics (incomplete-call and orphan-LEAVE warnings,
// bitmask flag-ordering warnings). The zero Parser uses zerolog.Nop(),
// so the library package itself never writes to stderr on its own —
// only a consuming CLI does.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithVersionMax overrides TraceVersionMax, the highest trace format
// version Open will accept.
func WithVersionMax(max uint64) Option {
	return func(p *Parser) { p.versionMax = max }
}

// Parser decodes a ByteSource's trace stream into a sequence of Call
// events. It is not safe for concurrent use: a single goroutine must
// drive ParseCall to completion against one ByteSource.
type Parser struct {
	src        ByteSource
	logger     zerolog.Logger
	versionMax uint64

	version    uint64
	nextCallNo uint64

	functions *sigTable[FunctionSig]
	enums     *sigTable[EnumSig]
	bitmasks  *sigTable[BitmaskSig]
	structs   *sigTable[StructSig]

	// outstanding holds calls whose ENTER has been parsed but whose
	// LEAVE has not, in ENTER order. Traces are expected to have shallow
	// nesting, so a linear scan here is acceptable.
	outstanding []*Call

	closed bool
}

// Open reads the trace header (a single varuint format version) from src
// and returns a ready-to-use Parser. It fails if the header declares a
// version newer than TraceVersionMax (or the version set by
// WithVersionMax); src is not retained in that case.
func Open(src ByteSource, opts ...Option) (*Parser, error) {
	p := &Parser{
		src:        src,
		logger:     zerolog.Nop(),
		versionMax: TraceVersionMax,
		functions:  newSigTable[FunctionSig](),
		enums:      newSigTable[EnumSig](),
		bitmasks:   newSigTable[BitmaskSig](),
		structs:    newSigTable[StructSig](),
	}
	for _, opt := range opts {
		opt(p)
	}

	version, truncated := readVaruint(src)
	if truncated {
		return nil, fatalf(src.CurrentOffset(), "truncated trace header")
	}
	if version > p.versionMax {
		return nil, fmt.Errorf("tracefmt: unsupported trace format version %d (max %d)", version, p.versionMax)
	}
	p.version = version

	return p, nil
}

// Version returns the trace format version read from the header.
func (p *Parser) Version() uint64 { return p.version }

// Close releases the underlying ByteSource and drops all outstanding
// calls, interned signatures, and offset sets. Idempotent.
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	p.outstanding = nil
	p.functions = newSigTable[FunctionSig]()
	p.enums = newSigTable[EnumSig]()
	p.bitmasks = newSigTable[BitmaskSig]()
	p.structs = newSigTable[StructSig]()

	return p.src.Close()
}
