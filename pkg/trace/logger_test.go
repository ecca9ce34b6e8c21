package trace

import (
	"bytes"

	"github.com/rs/zerolog"
)

func discardLogger() zerolog.Logger {
	return zerolog.Nop()
}

// capturingLogger returns a logger writing to an in-memory buffer and an
// accessor that lazily splits its accumulated output into lines, so a
// test can assert a warning was (or wasn't) emitted without depending
// on its exact wording.
func capturingLogger() (zerolog.Logger, func() []string) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return logger, func() []string {
		return splitNonEmptyLines(buf.String())
	}
}

func splitNonEmptyLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
