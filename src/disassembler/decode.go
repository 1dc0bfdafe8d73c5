package disassembler

// cursor is a random-access byte cursor over one method's code array.
// Its position doubles as the code-relative offset the switch opcodes
// align against, since the code array always starts at position 0.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) readU8() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, ErrEndOfCode
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readU16() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, ErrEndOfCode
	}
	v := uint16(c.data[c.pos])<<8 | uint16(c.data[c.pos+1])
	c.pos += 2
	return v, nil
}

func (c *cursor) readU32() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, ErrEndOfCode
	}
	v := uint32(c.data[c.pos])<<24 | uint32(c.data[c.pos+1])<<16 |
		uint32(c.data[c.pos+2])<<8 | uint32(c.data[c.pos+3])
	c.pos += 4
	return v, nil
}

// varIndex reads a local-variable index: u16 when wide, u8 widened
// otherwise (spec.md §4.6, the `wide` prefix rule).
func varIndex(c *cursor, wide bool) (uint16, error) {
	if wide {
		return c.readU16()
	}
	b, err := c.readU8()
	return uint16(b), err
}

func branchTarget16(c *cursor, pos int) (uint32, error) {
	offset, err := c.readU16()
	if err != nil {
		return 0, err
	}
	return uint32(int32(pos) + int32(int16(offset))), nil
}

// branchTarget32 computes an absolute target from a signed 32-bit
// relative offset, used by goto_w/jsr_w. The original this spec was
// distilled from truncates this sum to u16; this decoder keeps it a
// full u32, per spec.md §4.6.
func branchTarget32(c *cursor, pos int) (uint32, error) {
	offset, err := c.readU32()
	if err != nil {
		return 0, err
	}
	return uint32(int32(pos) + int32(offset)), nil
}

// decodeInstruction decodes one instruction starting at the cursor's
// current position, which must equal pos on entry. wide is true only
// for the single recursive call made to decode the opcode following a
// 0xC4 prefix byte.
func decodeInstruction(c *cursor, pos int, wide bool) (Instruction, error) {
	opcode, err := c.readU8()
	if err != nil {
		return Instruction{}, err
	}

	switch opcode {
	case 0x00:
		return Instruction{Op: OpNop}, nil
	case 0x01:
		return Instruction{Op: OpAConstNull}, nil
	case 0x02:
		return Instruction{Op: OpIConst, IntValue: -1}, nil
	case 0x03, 0x04, 0x05, 0x06, 0x07, 0x08:
		return Instruction{Op: OpIConst, IntValue: int64(opcode - 0x03)}, nil
	case 0x09, 0x0A:
		return Instruction{Op: OpLConst, IntValue: int64(opcode - 0x09)}, nil
	case 0x0B, 0x0C, 0x0D:
		return Instruction{Op: OpFConst, FloatValue: float32(opcode - 0x0B)}, nil
	case 0x0E, 0x0F:
		return Instruction{Op: OpDConst, DoubleValue: float64(opcode - 0x0E)}, nil

	case 0x10: // bipush
		b, err := c.readU8()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpBIPush, IntValue: int64(int8(b))}, nil

	case 0x11: // sipush
		v, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpSIPush, IntValue: int64(int16(v))}, nil

	case 0x12: // ldc
		b, err := c.readU8()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLoadConst, Index: uint16(b)}, nil

	case 0x13, 0x14: // ldc_w, ldc2_w
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLoadConst, Index: idx}, nil

	case 0x15, 0x16, 0x17, 0x18, 0x19: // iload/lload/fload/dload/aload
		idx, err := varIndex(c, wide)
		if err != nil {
			return Instruction{}, err
		}
		ops := [...]Op{OpILoad, OpLLoad, OpFLoad, OpDLoad, OpALoad}
		return Instruction{Op: ops[opcode-0x15], Index: idx}, nil

	case 0x1A, 0x1B, 0x1C, 0x1D:
		return Instruction{Op: OpILoad, Index: uint16(opcode - 0x1A)}, nil
	case 0x1E, 0x1F, 0x20, 0x21:
		return Instruction{Op: OpLLoad, Index: uint16(opcode - 0x1E)}, nil
	case 0x22, 0x23, 0x24, 0x25:
		return Instruction{Op: OpFLoad, Index: uint16(opcode - 0x22)}, nil
	case 0x26, 0x27, 0x28, 0x29:
		return Instruction{Op: OpDLoad, Index: uint16(opcode - 0x26)}, nil
	case 0x2A, 0x2B, 0x2C, 0x2D:
		return Instruction{Op: OpALoad, Index: uint16(opcode - 0x2A)}, nil

	case 0x2E:
		return Instruction{Op: OpIALoad}, nil
	case 0x2F:
		return Instruction{Op: OpLALoad}, nil
	case 0x30:
		return Instruction{Op: OpFALoad}, nil
	case 0x31:
		return Instruction{Op: OpDALoad}, nil
	case 0x32:
		return Instruction{Op: OpAALoad}, nil
	case 0x33:
		return Instruction{Op: OpBALoad}, nil
	case 0x34:
		return Instruction{Op: OpCALoad}, nil
	case 0x35:
		return Instruction{Op: OpSALoad}, nil

	case 0x36, 0x37, 0x38, 0x39, 0x3A: // istore/lstore/fstore/dstore/astore
		idx, err := varIndex(c, wide)
		if err != nil {
			return Instruction{}, err
		}
		ops := [...]Op{OpIStore, OpLStore, OpFStore, OpDStore, OpAStore}
		return Instruction{Op: ops[opcode-0x36], Index: idx}, nil

	case 0x3B, 0x3C, 0x3D, 0x3E:
		return Instruction{Op: OpIStore, Index: uint16(opcode - 0x3B)}, nil
	case 0x3F, 0x40, 0x41, 0x42:
		return Instruction{Op: OpLStore, Index: uint16(opcode - 0x3F)}, nil
	case 0x43, 0x44, 0x45, 0x46:
		return Instruction{Op: OpFStore, Index: uint16(opcode - 0x43)}, nil
	case 0x47, 0x48, 0x49, 0x4A:
		return Instruction{Op: OpDStore, Index: uint16(opcode - 0x47)}, nil
	case 0x4B, 0x4C, 0x4D, 0x4E:
		return Instruction{Op: OpAStore, Index: uint16(opcode - 0x4B)}, nil

	case 0x4F:
		return Instruction{Op: OpIAStore}, nil
	case 0x50:
		return Instruction{Op: OpLAStore}, nil
	case 0x51:
		return Instruction{Op: OpFAStore}, nil
	case 0x52:
		return Instruction{Op: OpDAStore}, nil
	case 0x53:
		return Instruction{Op: OpAAStore}, nil
	case 0x54:
		return Instruction{Op: OpBAStore}, nil
	case 0x55:
		return Instruction{Op: OpCAStore}, nil
	case 0x56:
		return Instruction{Op: OpSAStore}, nil

	case 0x57:
		return Instruction{Op: OpPop}, nil
	case 0x58:
		return Instruction{Op: OpPop2}, nil
	case 0x59:
		return Instruction{Op: OpDup}, nil
	case 0x5A:
		return Instruction{Op: OpDupX1}, nil
	case 0x5B:
		return Instruction{Op: OpDupX2}, nil
	case 0x5C:
		return Instruction{Op: OpDup2}, nil
	case 0x5D:
		return Instruction{Op: OpDup2X1}, nil
	case 0x5E:
		return Instruction{Op: OpDup2X2}, nil
	case 0x5F:
		return Instruction{Op: OpSwap}, nil

	case 0x60:
		return Instruction{Op: OpIAdd}, nil
	case 0x61:
		return Instruction{Op: OpLAdd}, nil
	case 0x62:
		return Instruction{Op: OpFAdd}, nil
	case 0x63:
		return Instruction{Op: OpDAdd}, nil
	case 0x64:
		return Instruction{Op: OpISub}, nil
	case 0x65:
		return Instruction{Op: OpLSub}, nil
	case 0x66:
		return Instruction{Op: OpFSub}, nil
	case 0x67:
		return Instruction{Op: OpDSub}, nil
	case 0x68:
		return Instruction{Op: OpIMul}, nil
	case 0x69:
		return Instruction{Op: OpLMul}, nil
	case 0x6A:
		return Instruction{Op: OpFMul}, nil
	case 0x6B:
		return Instruction{Op: OpDMul}, nil
	case 0x6C:
		return Instruction{Op: OpIDiv}, nil
	case 0x6D:
		return Instruction{Op: OpLDiv}, nil
	case 0x6E:
		return Instruction{Op: OpFDiv}, nil
	case 0x6F:
		return Instruction{Op: OpDDiv}, nil
	case 0x70:
		return Instruction{Op: OpIRem}, nil
	case 0x71:
		return Instruction{Op: OpLRem}, nil
	case 0x72:
		return Instruction{Op: OpFRem}, nil
	case 0x73:
		return Instruction{Op: OpDRem}, nil
	case 0x74:
		return Instruction{Op: OpINeg}, nil
	case 0x75:
		return Instruction{Op: OpLNeg}, nil
	case 0x76:
		return Instruction{Op: OpFNeg}, nil
	case 0x77:
		return Instruction{Op: OpDNeg}, nil
	case 0x78:
		return Instruction{Op: OpIShL}, nil
	case 0x79:
		return Instruction{Op: OpLShL}, nil
	case 0x7A:
		return Instruction{Op: OpIShR}, nil
	case 0x7B:
		return Instruction{Op: OpLShR}, nil
	case 0x7C:
		return Instruction{Op: OpIUShR}, nil
	case 0x7D:
		return Instruction{Op: OpLUShR}, nil
	case 0x7E:
		return Instruction{Op: OpIAnd}, nil
	case 0x7F:
		return Instruction{Op: OpLAnd}, nil
	case 0x80:
		return Instruction{Op: OpIOr}, nil
	case 0x81:
		return Instruction{Op: OpLOr}, nil
	case 0x82:
		return Instruction{Op: OpIXOr}, nil
	case 0x83:
		return Instruction{Op: OpLXOr}, nil

	case 0x84: // iinc
		idx, err := varIndex(c, wide)
		if err != nil {
			return Instruction{}, err
		}
		var delta int16
		if wide {
			v, err := c.readU16()
			if err != nil {
				return Instruction{}, err
			}
			delta = int16(v)
		} else {
			b, err := c.readU8()
			if err != nil {
				return Instruction{}, err
			}
			delta = int16(int8(b))
		}
		return Instruction{Op: OpIInc, Index: idx, IIncValue: delta}, nil

	case 0x85:
		return Instruction{Op: OpI2L}, nil
	case 0x86:
		return Instruction{Op: OpI2F}, nil
	case 0x87:
		return Instruction{Op: OpI2D}, nil
	case 0x88:
		return Instruction{Op: OpL2I}, nil
	case 0x89:
		return Instruction{Op: OpL2F}, nil
	case 0x8A:
		return Instruction{Op: OpL2D}, nil
	case 0x8B:
		return Instruction{Op: OpF2I}, nil
	case 0x8C:
		return Instruction{Op: OpF2L}, nil
	case 0x8D:
		return Instruction{Op: OpF2D}, nil
	case 0x8E:
		return Instruction{Op: OpD2I}, nil
	case 0x8F:
		return Instruction{Op: OpD2L}, nil
	case 0x90:
		return Instruction{Op: OpD2F}, nil
	case 0x91:
		return Instruction{Op: OpI2B}, nil
	case 0x92:
		return Instruction{Op: OpI2C}, nil
	case 0x93:
		return Instruction{Op: OpI2S}, nil

	case 0x94:
		return Instruction{Op: OpLCmp}, nil
	case 0x95:
		return Instruction{Op: OpFCmpL}, nil
	case 0x96:
		return Instruction{Op: OpFCmpG}, nil
	case 0x97:
		return Instruction{Op: OpDCmpL}, nil
	case 0x98:
		return Instruction{Op: OpDCmpG}, nil

	case 0x99, 0x9A, 0x9B, 0x9C, 0x9D, 0x9E,
		0x9F, 0xA0, 0xA1, 0xA2, 0xA3, 0xA4,
		0xA5, 0xA6, 0xA7, 0xA8: // if*, if_icmp*, if_acmp*, goto, jsr
		target, err := branchTarget16(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		ops := map[byte]Op{
			0x99: OpIfEq, 0x9A: OpIfNe, 0x9B: OpIfLt, 0x9C: OpIfGe,
			0x9D: OpIfGt, 0x9E: OpIfLe,
			0x9F: OpIfICmpEq, 0xA0: OpIfICmpNe, 0xA1: OpIfICmpLt,
			0xA2: OpIfICmpGe, 0xA3: OpIfICmpGt, 0xA4: OpIfICmpLe,
			0xA5: OpIfACmpEq, 0xA6: OpIfACmpNe,
			0xA7: OpGoto, 0xA8: OpJSr,
		}
		return Instruction{Op: ops[opcode], Branch: target}, nil

	case 0xA9: // ret
		idx, err := varIndex(c, wide)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpRet, Index: idx}, nil

	case 0xAA: // tableswitch
		pad := (4 - c.pos%4) % 4
		for i := 0; i < pad; i++ {
			if _, err := c.readU8(); err != nil {
				return Instruction{}, err
			}
		}
		def, err := branchTarget32(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		lowU, err := c.readU32()
		if err != nil {
			return Instruction{}, err
		}
		highU, err := c.readU32()
		if err != nil {
			return Instruction{}, err
		}
		low, high := int32(lowU), int32(highU)
		offsets := make([]uint32, 0, high-low+1)
		for n := low; n <= high; n++ {
			target, err := branchTarget32(c, pos)
			if err != nil {
				return Instruction{}, err
			}
			offsets = append(offsets, target)
		}
		return Instruction{Op: OpTableSwitch, TableSwitch: &TableSwitchData{
			Default: def, Low: low, High: high, Offsets: offsets,
		}}, nil

	case 0xAB: // lookupswitch
		pad := (4 - c.pos%4) % 4
		for i := 0; i < pad; i++ {
			if _, err := c.readU8(); err != nil {
				return Instruction{}, err
			}
		}
		def, err := branchTarget32(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		count, err := c.readU32()
		if err != nil {
			return Instruction{}, err
		}
		pairs := make([]LookupSwitchPair, 0, count)
		for i := uint32(0); i < count; i++ {
			matchU, err := c.readU32()
			if err != nil {
				return Instruction{}, err
			}
			target, err := branchTarget32(c, pos)
			if err != nil {
				return Instruction{}, err
			}
			pairs = append(pairs, LookupSwitchPair{Match: int32(matchU), PC: target})
		}
		return Instruction{Op: OpLookupSwitch, LookupSwitch: &LookupSwitchData{
			Default: def, Pairs: pairs,
		}}, nil

	case 0xAC:
		return Instruction{Op: OpIReturn}, nil
	case 0xAD:
		return Instruction{Op: OpLReturn}, nil
	case 0xAE:
		return Instruction{Op: OpFReturn}, nil
	case 0xAF:
		return Instruction{Op: OpDReturn}, nil
	case 0xB0:
		return Instruction{Op: OpAReturn}, nil
	case 0xB1:
		return Instruction{Op: OpReturn}, nil

	case 0xB2, 0xB3, 0xB4, 0xB5: // getstatic/putstatic/getfield/putfield
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		ops := [...]Op{OpGetStatic, OpPutStatic, OpGetField, OpPutField}
		return Instruction{Op: ops[opcode-0xB2], Index: idx}, nil

	case 0xB6, 0xB7, 0xB8: // invokevirtual/invokespecial/invokestatic
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		ops := [...]Op{OpInvokeVirtual, OpInvokeSpecial, OpInvokeStatic}
		return Instruction{Op: ops[opcode-0xB6], Index: idx}, nil

	case 0xB9: // invokeinterface
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		if _, err := c.readU16(); err != nil { // count + reserved, discarded
			return Instruction{}, err
		}
		return Instruction{Op: OpInvokeInterface, Index: idx}, nil

	case 0xBA: // invokedynamic
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		if _, err := c.readU16(); err != nil { // reserved, discarded
			return Instruction{}, err
		}
		return Instruction{Op: OpInvokeDynamic, Index: idx}, nil

	case 0xBB: // new
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpNew, Index: idx}, nil

	case 0xBC: // newarray
		tag, err := c.readU8()
		if err != nil {
			return Instruction{}, err
		}
		arrayTypes := map[byte]ArrayType{
			4: ArrayBoolean, 5: ArrayChar, 6: ArrayFloat, 7: ArrayDouble,
			8: ArrayByte, 9: ArrayShort, 10: ArrayInt, 11: ArrayLong,
		}
		at, ok := arrayTypes[tag]
		if !ok {
			return Instruction{}, &UnknownArrayTypeError{Tag: tag}
		}
		return Instruction{Op: OpNewArray, ArrayType: at}, nil

	case 0xBD: // anewarray
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpANewArray, Index: idx}, nil

	case 0xBE:
		return Instruction{Op: OpArrayLength}, nil
	case 0xBF:
		return Instruction{Op: OpAThrow}, nil

	case 0xC0: // checkcast
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpCheckCast, Index: idx}, nil

	case 0xC1: // instanceof
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpInstanceOf, Index: idx}, nil

	case 0xC2:
		return Instruction{Op: OpMonitorEnter}, nil
	case 0xC3:
		return Instruction{Op: OpMonitorExit}, nil

	case 0xC4: // wide prefix
		return decodeInstruction(c, pos, true)

	case 0xC5: // multianewarray
		idx, err := c.readU16()
		if err != nil {
			return Instruction{}, err
		}
		dims, err := c.readU8()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpMultiANewArray, Index: idx, Dimensions: dims}, nil

	case 0xC6, 0xC7: // ifnull, ifnonnull
		target, err := branchTarget16(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		if opcode == 0xC6 {
			return Instruction{Op: OpIfNull, Branch: target}, nil
		}
		return Instruction{Op: OpIfNonNull, Branch: target}, nil

	case 0xC8: // goto_w
		target, err := branchTarget32(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpGoto, Branch: target}, nil

	case 0xC9: // jsr_w
		target, err := branchTarget32(c, pos)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpJSr, Branch: target}, nil

	default:
		return Instruction{}, &UnknownInstructionError{Opcode: opcode}
	}
}

// PositionedInstruction pairs a decoded instruction with the pc of its
// first byte.
type PositionedInstruction struct {
	PC          int
	Instruction Instruction
}

// Disassemble decodes every instruction in code, in strictly increasing
// pc order, covering the full array (spec.md §4.6's full-coverage
// contract, tested by §8(11)).
func Disassemble(code []byte) ([]PositionedInstruction, error) {
	c := &cursor{data: code}
	var out []PositionedInstruction

	for c.pos < len(code) {
		pos := c.pos
		instr, err := decodeInstruction(c, pos, false)
		if err != nil {
			return nil, err
		}
		out = append(out, PositionedInstruction{PC: pos, Instruction: instr})
	}
	return out, nil
}
