package decompiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javadec/src/disassembler"
)

func TestBuildCFG_Coverage(t *testing.T) {
	// iconst_1 (pc0); ifeq -> pc4 (pc1, 3 bytes: opcode + u16 offset);
	// istore_0 (pc4); return (pc5).
	code := []byte{
		0x04,       // pc0 iconst_1
		0x99, 0x00, 0x03, // pc1 ifeq, offset +3 -> absolute pc4
		0x3B, // pc4 istore_0
		0xB1, // pc5 return
	}

	instrs, err := disassembler.Disassemble(code)
	require.NoError(t, err)

	blocks, err := BuildCFG(instrs)
	require.NoError(t, err)

	total := 0
	seen := map[int]bool{}
	for _, b := range blocks {
		for _, pi := range b.Instructions {
			require.Falsef(t, seen[pi.PC], "pc %d covered by more than one block", pi.PC)
			seen[pi.PC] = true
			total++
		}
	}
	assert.Equal(t, len(instrs), total)

	for _, b := range blocks {
		for _, succ := range b.Successors {
			_, ok := blocks[succ]
			assert.Truef(t, ok, "successor pc %d is not a block key", succ)
		}
	}
}

func TestBuildCFG_UnresolvedBranchTarget(t *testing.T) {
	// ifeq branching to an offset that doesn't land on an instruction.
	code := []byte{
		0x99, 0x00, 0x05, // ifeq branch -> pc5, but code is only 3 bytes long
	}
	instrs, err := disassembler.Disassemble(code)
	require.NoError(t, err)

	_, err = BuildCFG(instrs)
	assert.Error(t, err)
}
