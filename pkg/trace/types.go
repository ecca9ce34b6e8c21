// Package trace implements a streaming decoder for binary API-call trace
// files: a self-describing wire format in which function/enum/bitmask/
// struct signatures are interned by numeric id, call arguments are typed
// recursive values, and interleaved ENTER/LEAVE events are reassembled
// into complete Call records in completion order.
//
// The package only ever talks to a ByteSource — opening an actual file,
// detecting its compression scheme, and so on lives in
// github.com/tracefmt/tracefmt/pkg/trace/bytesource. Pretty-printing
// lives in .../pkg/trace/format.
package trace

// FunctionSig is the interned signature of an API function: its name and
// the names of its positional arguments.
type FunctionSig struct {
	ID       uint64
	Name     string
	ArgNames []string
}

// EnumSig is the interned signature of an enum constant: its name and
// signed nominal value.
type EnumSig struct {
	ID    uint64
	Name  string
	Value int64
}

// BitmaskFlag is one named flag of a BitmaskSig.
type BitmaskFlag struct {
	Name  string
	Value uint64
}

// BitmaskSig is the interned signature of a bitmask: its named flags. At
// most one flag has value 0, and if present it must be first — a writer
// that violates this ordering produces an advisory warning, not a fatal
// error (see Parser's logger).
type BitmaskSig struct {
	ID    uint64
	Flags []BitmaskFlag
}

// StructSig is the interned signature of a struct: its name and the
// positional names of its members.
type StructSig struct {
	ID          uint64
	Name        string
	MemberNames []string
}

// Kind discriminates the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindSInt
	KindUInt
	KindFloat
	KindDouble
	KindString
	KindEnum
	KindBitmask
	KindArray
	KindStruct
	KindBlob
	KindPointer
)

// Value is a tagged recursive value decoded from the wire. Only the
// field(s) matching Kind are meaningful; the others are zero.
//
// Float and Double are kept as distinct variants with their native
// precision (float32, float64) rather than narrowing Double into Float,
// preserving full double-precision round trips end to end.
type Value struct {
	Kind Kind

	Bool   bool
	SInt   int64
	UInt   uint64
	Float  float32
	Double float64
	String string

	// Enum and Bitmask reference an interned signature; Bitmask also
	// carries the selected mask value (the sig only carries the flag
	// vocabulary).
	EnumSig     *EnumSig
	BitmaskSig  *BitmaskSig
	BitmaskMask uint64

	Array []Value

	StructSig *StructSig
	Members   []Value

	Blob []byte

	Pointer uint64
}

// Call is one ENTER…LEAVE invocation record. Args is sparse-by-index:
// slots for argument indices never observed are the zero Value
// (Kind == KindNull) rather than being absent from the slice, matching
// the wire's "missing intermediate indices" allowance.
type Call struct {
	No  uint64
	Sig *FunctionSig

	Args []Value
	Ret  *Value
}

// setArg grows Args as needed and stores v at index. Arguments are
// addressed by index and may arrive out of order; missing intermediate
// indices are represented as unset slots.
func (c *Call) setArg(index uint64, v Value) {
	if index >= uint64(len(c.Args)) {
		grown := make([]Value, index+1)
		copy(grown, c.Args)
		c.Args = grown
	}
	c.Args[index] = v
}
