package disassembler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchTargetAbsolute_Forward(t *testing.T) {
	// ifeq at pc 5, operand 0x00 0x0A (branch +10) -> absolute 15.
	code := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, // 5 nops, pc 0..4
		0x99, 0x00, 0x0A, // ifeq at pc 5
	}
	instrs, err := Disassemble(code)
	require.NoError(t, err)
	last := instrs[len(instrs)-1]
	assert.Equal(t, OpIfEq, last.Instruction.Op)
	assert.Equal(t, uint32(15), last.Instruction.Branch)
}

func TestBranchTargetAbsolute_Backward(t *testing.T) {
	// ifeq at pc 5, operand 0xFF 0xFB (branch -5) -> absolute 0.
	code := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x99, 0xFF, 0xFB,
	}
	instrs, err := Disassemble(code)
	require.NoError(t, err)
	last := instrs[len(instrs)-1]
	assert.Equal(t, uint32(0), last.Instruction.Branch)
}

func TestTableSwitchAlignment(t *testing.T) {
	cases := []struct {
		pc       int
		padBytes int
	}{
		{pc: 0, padBytes: 3},
		{pc: 3, padBytes: 0},
		{pc: 5, padBytes: 2},
	}
	for _, tc := range cases {
		code := make([]byte, tc.pc)
		code = append(code, 0xAA) // tableswitch opcode
		code = append(code, make([]byte, tc.padBytes)...)
		// default=0, low=0, high=0, one offset=0
		code = append(code, 0, 0, 0, 0) // default
		code = append(code, 0, 0, 0, 0) // low
		code = append(code, 0, 0, 0, 0) // high
		code = append(code, 0, 0, 0, 0) // offsets[0]

		instrs, err := Disassemble(code)
		require.NoErrorf(t, err, "pc %d", tc.pc)

		found := false
		for _, pi := range instrs {
			if pi.PC == tc.pc {
				found = true
				assert.Equalf(t, OpTableSwitch, pi.Instruction.Op, "pc %d", tc.pc)
			}
		}
		assert.Truef(t, found, "pc %d: tableswitch instruction not found", tc.pc)
	}
}

func TestWidePrefix(t *testing.T) {
	// wide iload #300
	code := []byte{0xC4, 0x15, 0x01, 0x2C}
	instrs, err := Disassemble(code)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, OpILoad, instrs[0].Instruction.Op)
	assert.Equal(t, uint16(300), instrs[0].Instruction.Index)

	// bare iload #5
	code2 := []byte{0x15, 0x05}
	instrs2, err := Disassemble(code2)
	require.NoError(t, err)
	assert.Equal(t, OpILoad, instrs2[0].Instruction.Op)
	assert.Equal(t, uint16(5), instrs2[0].Instruction.Index)
}

func TestFullCoverageDisassembly(t *testing.T) {
	code := []byte{
		0x2A,       // aload_0
		0x10, 0x05, // bipush 5
		0x60, // iadd
		0xAC, // ireturn
	}
	instrs, err := Disassemble(code)
	require.NoError(t, err)

	total := 0
	for i, pi := range instrs {
		require.Equalf(t, total, pi.PC, "instruction %d", i)
		var next int
		if i+1 < len(instrs) {
			next = instrs[i+1].PC
		} else {
			next = len(code)
		}
		total = next
	}
	assert.Equal(t, len(code), total)
}

func TestUnknownInstruction(t *testing.T) {
	// 0xCA (breakpoint) is not a defined opcode in this decoder's range.
	_, err := Disassemble([]byte{0xCA})
	var unknownErr *UnknownInstructionError
	require.True(t, errors.As(err, &unknownErr))
}
