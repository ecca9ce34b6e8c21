package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tracefmt/tracefmt/pkg/trace"
	"github.com/tracefmt/tracefmt/pkg/trace/format"
)

// warnColor highlights diagnostics printed to stderr; disabled
// automatically when stderr isn't a terminal so piped/redirected output
// stays plain.
var warnColor = color.New(color.FgYellow)

func init() {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		warnColor.DisableColor()
	}
}

func printWarning(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, format+"\n", args...)
}

// jsonCall mirrors trace.Call in a shape encoding/json can render without
// exposing the internal sparse-Args growth strategy directly.
type jsonCall struct {
	No   uint64 `json:"no"`
	Name string `json:"name"`
	Args []any  `json:"args"`
	Ret  any    `json:"ret,omitempty"`
}

func toJSONCall(c *trace.Call) jsonCall {
	jc := jsonCall{No: c.No}
	if c.Sig != nil {
		jc.Name = c.Sig.Name
	}
	jc.Args = make([]any, len(c.Args))
	for i, a := range c.Args {
		jc.Args[i] = format.Value(a)
	}
	if c.Ret != nil {
		jc.Ret = format.Value(*c.Ret)
	}
	return jc
}

func writeCallText(w io.Writer, c *trace.Call) {
	fmt.Fprintf(w, "%d %s\n", c.No, format.Call(c))
}

func writeCallJSON(w io.Writer, enc *json.Encoder, c *trace.Call) {
	enc.Encode(toJSONCall(c))
}
