package trace

// ParseCall drives the event demultiplexer until it can return the next
// complete Call, or end-of-stream. A nil Call with a nil error means
// clean end-of-stream; a nil Call with a non-nil error means a fatal
// parse error was hit and the stream is no longer interpretable.
func (p *Parser) ParseCall() (*Call, error) {
	for {
		offset := p.src.CurrentOffset()
		tag, ok := p.src.ReadByte()
		if !ok {
			p.reportIncompleteOutstanding()
			return nil, nil
		}

		switch tag {
		case eventEnter:
			if fatal := p.parseEnter(); fatal != nil {
				return nil, fatal
			}
			// ENTER alone never yields a call; keep looping.
		case eventLeave:
			call, fatal := p.parseLeave()
			if fatal != nil {
				return nil, fatal
			}
			if call != nil {
				return call, nil
			}
			// Orphaned LEAVE or truncated details: keep looping.
		default:
			return nil, fatalf(offset, "unknown event tag 0x%02x", tag)
		}
	}
}

// parseEnter resolves the function signature, assigns the next call
// number, and parses the call's detail records. A call that truncates
// before callEnd is dropped silently rather than appended to outstanding.
func (p *Parser) parseEnter() *ParseError {
	offset := p.src.CurrentOffset()
	id, truncated := readVaruint(p.src)
	if truncated {
		return nil
	}

	sig, action := internSignature(p.functions, id, offset)
	switch action {
	case sigDefine:
		name, truncated := readString(p.src)
		if truncated {
			return nil
		}
		numArgs, truncated := readVaruint(p.src)
		if truncated {
			return nil
		}
		argNames := make([]string, numArgs)
		for i := range argNames {
			argNames[i], truncated = readString(p.src)
			if truncated {
				return nil
			}
		}
		sig = &FunctionSig{ID: id, Name: name, ArgNames: argNames}
		p.functions.set(id, sig)
		p.functions.markOffset(offset)
	case sigRedefine:
		if _, truncated := readString(p.src); truncated {
			return nil
		}
		numArgs, truncated := readVaruint(p.src)
		if truncated {
			return nil
		}
		for i := uint64(0); i < numArgs; i++ {
			if _, truncated := readString(p.src); truncated {
				return nil
			}
		}
	case sigReuse:
	}

	call := &Call{No: p.nextCallNo, Sig: sig}
	p.nextCallNo++

	complete, fatal := p.parseCallDetails(call)
	if fatal != nil {
		return fatal
	}
	if complete {
		p.outstanding = append(p.outstanding, call)
	}
	return nil
}

// parseLeave finds the outstanding call matching call_no, removes it from
// outstanding (by number, not position), and finishes parsing its detail
// records — ENTER may have been partial, so LEAVE continues the same
// argument stream.
func (p *Parser) parseLeave() (*Call, *ParseError) {
	callNo, truncated := readVaruint(p.src)
	if truncated {
		return nil, nil
	}

	idx := -1
	for i, c := range p.outstanding {
		if c.No == callNo {
			idx = i
			break
		}
	}
	if idx == -1 {
		p.logger.Warn().Uint64("call_no", callNo).Msg("orphan LEAVE: no matching outstanding call")
		return nil, nil
	}
	call := p.outstanding[idx]
	p.outstanding = append(p.outstanding[:idx], p.outstanding[idx+1:]...)

	complete, fatal := p.parseCallDetails(call)
	if fatal != nil {
		return nil, fatal
	}
	if !complete {
		p.logger.Warn().Uint64("call_no", call.No).Str("call", callSummary(call)).Msg("incomplete call: truncated mid-detail")
		return nil, nil
	}
	return call, nil
}

// parseCallDetails reads call-detail records (CALL_ARG/CALL_RET) until
// callEnd, or until truncation — signaled by complete=false.
func (p *Parser) parseCallDetails(call *Call) (complete bool, fatal *ParseError) {
	for {
		offset := p.src.CurrentOffset()
		tag, ok := p.src.ReadByte()
		if !ok {
			return false, nil
		}

		switch tag {
		case callEnd:
			return true, nil
		case callArg:
			index, truncated := readVaruint(p.src)
			if truncated {
				return false, nil
			}
			v, truncated, fatal := p.parseValue()
			if fatal != nil {
				return false, fatal
			}
			if truncated {
				return false, nil
			}
			call.setArg(index, v)
		case callRet:
			v, truncated, fatal := p.parseValue()
			if fatal != nil {
				return false, fatal
			}
			if truncated {
				return false, nil
			}
			call.Ret = &v
		default:
			return false, fatalf(offset, "unknown call detail tag 0x%02x in call %s", tag, callSummary(call))
		}
	}
}

// reportIncompleteOutstanding warns once per call still awaiting LEAVE
// when end-of-stream is reached.
func (p *Parser) reportIncompleteOutstanding() {
	for _, c := range p.outstanding {
		p.logger.Warn().Uint64("call_no", c.No).Str("call", callSummary(c)).Msg("incomplete call at end of stream")
	}
}

// callSummary gives a short name for diagnostics without importing the
// format package (which depends on this package): the bare function
// name, or "<unknown>" when the call has no signature.
func callSummary(c *Call) string {
	if c == nil || c.Sig == nil {
		return "<unknown>"
	}
	return c.Sig.Name
}
