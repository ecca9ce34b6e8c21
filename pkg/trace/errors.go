package trace

import "fmt"

// ParseError is returned when an unknown event tag or unknown value tag
// is encountered, at which point the wire format is no longer self-
// synchronizing and the stream cannot be meaningfully continued. Callers
// decide what to do next; the library never calls os.Exit.
type ParseError struct {
	Offset Offset
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tracefmt: fatal parse error at offset %d: %s", e.Offset, e.Detail)
}

func fatalf(offset Offset, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Detail: fmt.Sprintf(format, args...)}
}
