// Package format renders decoded Call and Value trees as human-readable
// strings, for diagnostics and for the tracedump CLI's text output mode:
// a recursive, kind-dispatched string builder over the tagged Value tree.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tracefmt/tracefmt/pkg/trace"
)

// Call renders a Call as "name(arg0, arg1, ...) = ret", the shape a
// consumer would want in a warning naming a stuck or truncated call.
func Call(c *trace.Call) string {
	if c == nil {
		return "<nil call>"
	}
	var b strings.Builder
	if c.Sig != nil {
		b.WriteString(c.Sig.Name)
	} else {
		b.WriteString("<unknown>")
	}
	b.WriteByte('(')
	writeArgs(&b, c)
	b.WriteByte(')')
	if c.Ret != nil {
		b.WriteString(" = ")
		b.WriteString(Value(*c.Ret))
	}
	return b.String()
}

func writeArgs(b *strings.Builder, c *trace.Call) {
	names := argNames(c)
	for i, v := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(names) && names[i] != "" {
			b.WriteString(names[i])
			b.WriteByte('=')
		}
		b.WriteString(Value(v))
	}
}

func argNames(c *trace.Call) []string {
	if c.Sig == nil {
		return nil
	}
	return c.Sig.ArgNames
}

// Value renders a single decoded Value as a short, readable string. Blob
// and Pointer payloads are summarized rather than dumped in full: this
// package never interprets blob/opaque payload contents, only reports
// their size/address.
func Value(v trace.Value) string {
	switch v.Kind {
	case trace.KindNull:
		return "null"
	case trace.KindBool:
		return strconv.FormatBool(v.Bool)
	case trace.KindSInt:
		return strconv.FormatInt(v.SInt, 10)
	case trace.KindUInt:
		return strconv.FormatUint(v.UInt, 10)
	case trace.KindFloat:
		return strconv.FormatFloat(float64(v.Float), 'g', -1, 32)
	case trace.KindDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case trace.KindString:
		return strconv.Quote(v.String)
	case trace.KindEnum:
		if v.EnumSig != nil {
			return v.EnumSig.Name
		}
		return "<enum>"
	case trace.KindBitmask:
		return bitmask(v)
	case trace.KindArray:
		return array(v)
	case trace.KindStruct:
		return structValue(v)
	case trace.KindBlob:
		return fmt.Sprintf("blob[%d]", len(v.Blob))
	case trace.KindPointer:
		return fmt.Sprintf("0x%x", v.Pointer)
	default:
		return "<?>"
	}
}

func bitmask(v trace.Value) string {
	if v.BitmaskSig == nil {
		return fmt.Sprintf("0x%x", v.BitmaskMask)
	}
	var set []string
	remaining := v.BitmaskMask
	for _, f := range v.BitmaskSig.Flags {
		if f.Value != 0 && remaining&f.Value == f.Value {
			set = append(set, f.Name)
			remaining &^= f.Value
		}
	}
	if remaining != 0 {
		set = append(set, fmt.Sprintf("0x%x", remaining))
	}
	if len(set) == 0 {
		return "0"
	}
	return strings.Join(set, "|")
}

func array(v trace.Value) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, elem := range v.Array {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Value(elem))
	}
	b.WriteByte('}')
	return b.String()
}

func structValue(v trace.Value) string {
	var b strings.Builder
	var names []string
	if v.StructSig != nil {
		b.WriteString(v.StructSig.Name)
		names = v.StructSig.MemberNames
	}
	b.WriteString("{")
	for i, m := range v.Members {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(names) {
			b.WriteString(names[i])
			b.WriteByte('=')
		}
		b.WriteString(Value(m))
	}
	b.WriteString("}")
	return b.String()
}
