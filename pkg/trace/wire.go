package trace

// TraceVersionMax is the highest trace format version this parser
// understands. Open fails if the file header claims a newer version.
const TraceVersionMax = 4

// Event tags, read one per iteration of the outer parse loop.
const (
	eventEnter = 0x00
	eventLeave = 0x01
)

// Call-detail record tags, read until callEnd or end-of-stream.
const (
	callEnd = 0x00
	callArg = 0x01
	callRet = 0x02
)

// Value tags. Exact numeric codes must match the trace writer; the
// dispatch in value.go is what matters, not the specific byte values.
const (
	typeNull    = 0x00
	typeFalse   = 0x01
	typeTrue    = 0x02
	typeSInt    = 0x03
	typeUInt    = 0x04
	typeFloat   = 0x05
	typeDouble  = 0x06
	typeString  = 0x07
	typeEnum    = 0x08
	typeBitmask = 0x09
	typeArray   = 0x0a
	typeStruct  = 0x0b
	typeBlob    = 0x0c
	typeOpaque  = 0x0d
)
