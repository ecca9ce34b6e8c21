package trace

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func newTestParser(src ByteSource) *Parser {
	return &Parser{
		src:       src,
		logger:    discardLogger(),
		functions: newSigTable[FunctionSig](),
		enums:     newSigTable[EnumSig](),
		bitmasks:  newSigTable[BitmaskSig](),
		structs:   newSigTable[StructSig](),
	}
}

func parseOneValue(t *testing.T, wire []byte) Value {
	t.Helper()
	p := newTestParser(newFakeSource(wire))
	v, truncated, fatal := p.parseValue()
	require.Nil(t, fatal)
	require.False(t, truncated)
	return v
}

func TestParseValuePrimitives(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(typeNull)
	require.Equal(t, Value{Kind: KindNull}, parseOneValue(t, buf.Bytes()))

	buf.Reset()
	buf.WriteByte(typeTrue)
	require.Equal(t, Value{Kind: KindBool, Bool: true}, parseOneValue(t, buf.Bytes()))

	buf.Reset()
	buf.WriteByte(typeSInt)
	encodeVaruint(&buf, 42)
	require.Equal(t, Value{Kind: KindSInt, SInt: -42}, parseOneValue(t, buf.Bytes()))

	buf.Reset()
	buf.WriteByte(typeUInt)
	encodeVaruint(&buf, 42)
	require.Equal(t, Value{Kind: KindUInt, UInt: 42}, parseOneValue(t, buf.Bytes()))

	buf.Reset()
	buf.WriteByte(typeString)
	encodeString(&buf, "hello")
	require.Equal(t, Value{Kind: KindString, String: "hello"}, parseOneValue(t, buf.Bytes()))
}

func TestParseValueUnknownTagIsFatal(t *testing.T) {
	p := newTestParser(newFakeSource([]byte{0x7f}))
	_, truncated, fatal := p.parseValue()
	require.False(t, truncated)
	require.NotNil(t, fatal)
}

func TestParseValueEndOfStreamIsNotError(t *testing.T) {
	p := newTestParser(newFakeSource(nil))
	v, truncated, fatal := p.parseValue()
	require.Nil(t, fatal)
	require.True(t, truncated)
	require.Equal(t, Value{}, v)
}

// A nested struct argument with two UINT members.
func TestParseStructNested(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(typeStruct)
	encodeVaruint(&buf, 1) // struct id
	encodeString(&buf, "P")
	encodeVaruint(&buf, 2) // num members
	encodeString(&buf, "x")
	encodeString(&buf, "y")
	buf.WriteByte(typeUInt)
	encodeVaruint(&buf, 1)
	buf.WriteByte(typeUInt)
	encodeVaruint(&buf, 2)

	v := parseOneValue(t, buf.Bytes())
	require.Equal(t, KindStruct, v.Kind)
	require.Equal(t, "P", v.StructSig.Name)
	require.Equal(t, []string{"x", "y"}, v.StructSig.MemberNames)

	want := []Value{
		{Kind: KindUInt, UInt: 1},
		{Kind: KindUInt, UInt: 2},
	}
	if diff := cmp.Diff(want, v.Members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

// Bitmask flags [("NONE",0),("A",1),("B",2)], mask value 3 — no
// warning since the zero flag is first.
func TestParseBitmaskOrderedFlags(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(typeBitmask)
	encodeVaruint(&buf, 5) // bitmask id
	encodeVaruint(&buf, 3) // num flags
	encodeString(&buf, "NONE")
	encodeVaruint(&buf, 0)
	encodeString(&buf, "A")
	encodeVaruint(&buf, 1)
	encodeString(&buf, "B")
	encodeVaruint(&buf, 2)
	encodeVaruint(&buf, 3) // mask value

	v := parseOneValue(t, buf.Bytes())
	require.Equal(t, KindBitmask, v.Kind)
	require.Len(t, v.BitmaskSig.Flags, 3)
	require.Equal(t, uint64(3), v.BitmaskMask)
}

// If a zero flag is not first, a warning is emitted but parsing still
// succeeds.
func TestParseBitmaskZeroFlagNotFirstWarns(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(typeBitmask)
	encodeVaruint(&buf, 6)
	encodeVaruint(&buf, 2)
	encodeString(&buf, "A")
	encodeVaruint(&buf, 1)
	encodeString(&buf, "NONE")
	encodeVaruint(&buf, 0)
	encodeVaruint(&buf, 1)

	log, lines := capturingLogger()
	p := newTestParser(newFakeSource(buf.Bytes()))
	p.logger = log
	v, truncated, fatal := p.parseValue()
	require.Nil(t, fatal)
	require.False(t, truncated)
	require.Equal(t, KindBitmask, v.Kind)
	require.NotEmpty(t, lines())
}

// For any well-formed Value tree without cycles, encode then decode
// produces an equal tree. We exercise this over a fixed table of acyclic
// trees rather than testing/quick's default generator (which has no
// notion of our tagged-union shape).
func TestValueRoundTripCases(t *testing.T) {
	cases := []Value{
		{Kind: KindNull},
		{Kind: KindBool, Bool: true},
		{Kind: KindBool, Bool: false},
		{Kind: KindSInt, SInt: -7},
		{Kind: KindSInt, SInt: 0},
		{Kind: KindUInt, UInt: 123456789},
		{Kind: KindFloat, Float: 3.5},
		{Kind: KindDouble, Double: 2.25},
		{Kind: KindString, String: ""},
		{Kind: KindString, String: "glClear"},
		{Kind: KindBlob, Blob: []byte{1, 2, 3}},
		{Kind: KindPointer, Pointer: 0xdeadbeef},
		{Kind: KindArray, Array: []Value{
			{Kind: KindUInt, UInt: 1},
			{Kind: KindUInt, UInt: 2},
		}},
	}

	for _, want := range cases {
		wire := encodeValueForTest(want)
		got := parseOneValue(t, wire)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch for %+v (-want +got):\n%s", want, diff)
		}
	}
}

// encodeValueForTest is the minimal encode side needed to round-trip the
// variants exercised by TestValueRoundTripCases; it does not cover
// Enum/Bitmask/Struct, which carry signatures. Bitmask and Struct have
// their own dedicated scenario tests above; Enum has none.
func encodeValueForTest(v Value) []byte {
	var buf bytes.Buffer
	switch v.Kind {
	case KindNull:
		buf.WriteByte(typeNull)
	case KindBool:
		if v.Bool {
			buf.WriteByte(typeTrue)
		} else {
			buf.WriteByte(typeFalse)
		}
	case KindSInt:
		buf.WriteByte(typeSInt)
		encodeVaruint(&buf, uint64(-v.SInt))
	case KindUInt:
		buf.WriteByte(typeUInt)
		encodeVaruint(&buf, v.UInt)
	case KindFloat:
		buf.WriteByte(typeFloat)
		encodeFloat32(&buf, v.Float)
	case KindDouble:
		buf.WriteByte(typeDouble)
		encodeFloat64(&buf, v.Double)
	case KindString:
		buf.WriteByte(typeString)
		encodeString(&buf, v.String)
	case KindBlob:
		buf.WriteByte(typeBlob)
		encodeVaruint(&buf, uint64(len(v.Blob)))
		buf.Write(v.Blob)
	case KindPointer:
		buf.WriteByte(typeOpaque)
		encodeVaruint(&buf, v.Pointer)
	case KindArray:
		buf.WriteByte(typeArray)
		encodeVaruint(&buf, uint64(len(v.Array)))
		for _, e := range v.Array {
			buf.Write(encodeValueForTest(e))
		}
	}
	return buf.Bytes()
}
