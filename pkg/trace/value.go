package trace

// parseValue reads one tag byte and dispatches to the matching variant
// decoder. It returns truncated=true if the stream ended before a
// complete value could be read, including at the tag byte itself, which
// is not an error: end-of-stream there just means no more values.
func (p *Parser) parseValue() (v Value, truncated bool, fatal *ParseError) {
	offset := p.src.CurrentOffset()
	tag, ok := p.src.ReadByte()
	if !ok {
		return Value{}, true, nil
	}

	switch tag {
	case typeNull:
		return Value{Kind: KindNull}, false, nil
	case typeFalse:
		return Value{Kind: KindBool, Bool: false}, false, nil
	case typeTrue:
		return Value{Kind: KindBool, Bool: true}, false, nil
	case typeSInt:
		return p.parseSInt()
	case typeUInt:
		return p.parseUInt()
	case typeFloat:
		return p.parseFloat()
	case typeDouble:
		return p.parseDouble()
	case typeString:
		return p.parseString()
	case typeEnum:
		return p.parseEnum()
	case typeBitmask:
		return p.parseBitmask()
	case typeArray:
		return p.parseArray()
	case typeStruct:
		return p.parseStruct()
	case typeBlob:
		return p.parseBlob()
	case typeOpaque:
		return p.parseOpaque()
	default:
		return Value{}, false, fatalf(offset, "unknown value tag 0x%02x", tag)
	}
}

func (p *Parser) parseSInt() (Value, bool, *ParseError) {
	u, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindSInt, SInt: -int64(u)}, false, nil
}

func (p *Parser) parseUInt() (Value, bool, *ParseError) {
	u, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindUInt, UInt: u}, false, nil
}

func (p *Parser) parseFloat() (Value, bool, *ParseError) {
	f, truncated := readFloat32(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindFloat, Float: f}, false, nil
}

func (p *Parser) parseDouble() (Value, bool, *ParseError) {
	d, truncated := readFloat64(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindDouble, Double: d}, false, nil
}

func (p *Parser) parseString() (Value, bool, *ParseError) {
	s, truncated := readString(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindString, String: s}, false, nil
}

// parseEnum resolves the enum's signature (name + nominal value): the
// nominal value is itself parsed as a recursive Value and converted to a
// signed integer for storage; the inner Value is discarded once
// extracted.
func (p *Parser) parseEnum() (Value, bool, *ParseError) {
	offset := p.src.CurrentOffset()
	id, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}

	sig, action := internSignature(p.enums, id, offset)
	switch action {
	case sigDefine:
		name, truncated := readString(p.src)
		if truncated {
			return Value{}, true, nil
		}
		inner, truncated, fatal := p.parseValue()
		if fatal != nil {
			return Value{}, false, fatal
		}
		if truncated {
			return Value{}, true, nil
		}
		sig = &EnumSig{ID: id, Name: name, Value: asSInt(inner)}
		p.enums.set(id, sig)
		p.enums.markOffset(offset)
	case sigRedefine:
		if _, truncated := readString(p.src); truncated {
			return Value{}, true, nil
		}
		if _, truncated, fatal := p.parseValue(); fatal != nil {
			return Value{}, false, fatal
		} else if truncated {
			return Value{}, true, nil
		}
	case sigReuse:
		// Nothing further on the wire for this occurrence.
	}

	return Value{Kind: KindEnum, EnumSig: sig}, false, nil
}

// asSInt converts a decoded Value to its signed-integer reading, as used
// when storing an enum's nominal value. Enums may carry arbitrary signed
// integers on the wire.
func asSInt(v Value) int64 {
	switch v.Kind {
	case KindSInt:
		return v.SInt
	case KindUInt:
		return int64(v.UInt)
	default:
		return 0
	}
}

// parseBitmask resolves the bitmask's signature (named flags) and the
// selected mask value that always follows the signature on the wire,
// regardless of whether the signature itself was just defined, redefined,
// or reused.
func (p *Parser) parseBitmask() (Value, bool, *ParseError) {
	offset := p.src.CurrentOffset()
	id, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}

	sig, action := internSignature(p.bitmasks, id, offset)
	switch action {
	case sigDefine:
		numFlags, truncated := readVaruint(p.src)
		if truncated {
			return Value{}, true, nil
		}
		flags := make([]BitmaskFlag, 0, numFlags)
		for i := uint64(0); i < numFlags; i++ {
			name, truncated := readString(p.src)
			if truncated {
				return Value{}, true, nil
			}
			val, truncated := readVaruint(p.src)
			if truncated {
				return Value{}, true, nil
			}
			if val == 0 && i != 0 {
				p.logger.Warn().Str("flag", name).Msg("bitmask flag is zero but is not the first flag")
			}
			flags = append(flags, BitmaskFlag{Name: name, Value: val})
		}
		sig = &BitmaskSig{ID: id, Flags: flags}
		p.bitmasks.set(id, sig)
		p.bitmasks.markOffset(offset)
	case sigRedefine:
		numFlags, truncated := readVaruint(p.src)
		if truncated {
			return Value{}, true, nil
		}
		for i := uint64(0); i < numFlags; i++ {
			if _, truncated := readString(p.src); truncated {
				return Value{}, true, nil
			}
			if _, truncated := readVaruint(p.src); truncated {
				return Value{}, true, nil
			}
		}
	case sigReuse:
	}

	mask, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}

	return Value{Kind: KindBitmask, BitmaskSig: sig, BitmaskMask: mask}, false, nil
}

func (p *Parser) parseArray() (Value, bool, *ParseError) {
	n, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}
	values := make([]Value, 0, n)
	for i := uint64(0); i < n; i++ {
		v, truncated, fatal := p.parseValue()
		if fatal != nil {
			return Value{}, false, fatal
		}
		if truncated {
			return Value{}, true, nil
		}
		values = append(values, v)
	}
	return Value{Kind: KindArray, Array: values}, false, nil
}

// parseStruct resolves the struct's signature (name + member names) and
// then decodes one Value per member, positionally matching sig.MemberNames.
func (p *Parser) parseStruct() (Value, bool, *ParseError) {
	offset := p.src.CurrentOffset()
	id, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}

	sig, action := internSignature(p.structs, id, offset)
	switch action {
	case sigDefine:
		name, truncated := readString(p.src)
		if truncated {
			return Value{}, true, nil
		}
		numMembers, truncated := readVaruint(p.src)
		if truncated {
			return Value{}, true, nil
		}
		memberNames := make([]string, numMembers)
		for i := range memberNames {
			memberNames[i], truncated = readString(p.src)
			if truncated {
				return Value{}, true, nil
			}
		}
		sig = &StructSig{ID: id, Name: name, MemberNames: memberNames}
		p.structs.set(id, sig)
		p.structs.markOffset(offset)
	case sigRedefine:
		if _, truncated := readString(p.src); truncated {
			return Value{}, true, nil
		}
		numMembers, truncated := readVaruint(p.src)
		if truncated {
			return Value{}, true, nil
		}
		for i := uint64(0); i < numMembers; i++ {
			if _, truncated := readString(p.src); truncated {
				return Value{}, true, nil
			}
		}
	case sigReuse:
	}

	members := make([]Value, len(sig.MemberNames))
	for i := range members {
		v, truncated, fatal := p.parseValue()
		if fatal != nil {
			return Value{}, false, fatal
		}
		if truncated {
			return Value{}, true, nil
		}
		members[i] = v
	}

	return Value{Kind: KindStruct, StructSig: sig, Members: members}, false, nil
}

func (p *Parser) parseBlob() (Value, bool, *ParseError) {
	size, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}
	if size == 0 {
		return Value{Kind: KindBlob, Blob: []byte{}}, false, nil
	}
	buf := make([]byte, size)
	n := p.src.Read(buf)
	if uint64(n) != size {
		return Value{}, true, nil
	}
	return Value{Kind: KindBlob, Blob: buf}, false, nil
}

func (p *Parser) parseOpaque() (Value, bool, *ParseError) {
	addr, truncated := readVaruint(p.src)
	if truncated {
		return Value{}, true, nil
	}
	return Value{Kind: KindPointer, Pointer: addr}, false, nil
}
