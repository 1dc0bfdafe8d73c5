package decompiler

import (
	"sort"

	"javadec/src/disassembler"
)

// Block owns a contiguous, non-overlapping range of instructions plus
// an ordered list of successor pcs (spec.md §3).
type Block struct {
	StartPC      int
	Instructions []disassembler.PositionedInstruction
	Successors   []int
}

func isConditionalBranch(op disassembler.Op) bool {
	switch op {
	case disassembler.OpIfEq, disassembler.OpIfNe, disassembler.OpIfLt,
		disassembler.OpIfGe, disassembler.OpIfGt, disassembler.OpIfLe,
		disassembler.OpIfICmpEq, disassembler.OpIfICmpNe, disassembler.OpIfICmpLt,
		disassembler.OpIfICmpGe, disassembler.OpIfICmpGt, disassembler.OpIfICmpLe,
		disassembler.OpIfACmpEq, disassembler.OpIfACmpNe,
		disassembler.OpIfNull, disassembler.OpIfNonNull:
		return true
	default:
		return false
	}
}

func isReturn(op disassembler.Op) bool {
	switch op {
	case disassembler.OpIReturn, disassembler.OpLReturn, disassembler.OpFReturn,
		disassembler.OpDReturn, disassembler.OpAReturn, disassembler.OpReturn:
		return true
	default:
		return false
	}
}

// BuildCFG partitions instrs into basic blocks per spec.md §4.8: split
// points are pc 0, every conditional branch's target and fall-through,
// and every goto/goto_w target. Switches and exception handlers are
// out of scope for this minimum-viable core.
func BuildCFG(instrs []disassembler.PositionedInstruction) (map[int]*Block, error) {
	if len(instrs) == 0 {
		return map[int]*Block{}, nil
	}

	pcIndex := make(map[int]int, len(instrs))
	for i, pi := range instrs {
		pcIndex[pi.PC] = i
	}

	splits := map[int]bool{instrs[0].PC: true}
	for i, pi := range instrs {
		op := pi.Instruction.Op
		switch {
		case isConditionalBranch(op):
			splits[int(pi.Instruction.Branch)] = true
			if i+1 < len(instrs) {
				splits[instrs[i+1].PC] = true
			}
		case op == disassembler.OpGoto:
			splits[int(pi.Instruction.Branch)] = true
		}
	}

	for pc := range splits {
		if _, ok := pcIndex[pc]; !ok {
			return nil, &CFGBuildError{PC: pc}
		}
	}

	blocks := make(map[int]*Block)
	var order []int
	var current *Block
	for i, pi := range instrs {
		if splits[pi.PC] {
			current = &Block{StartPC: pi.PC}
			blocks[pi.PC] = current
			order = append(order, pi.PC)
		}
		current.Instructions = append(current.Instructions, pi)
		_ = i
	}

	sort.Ints(order)
	for _, startPC := range order {
		block := blocks[startPC]
		last := block.Instructions[len(block.Instructions)-1]
		lastIdx := pcIndex[last.PC]
		op := last.Instruction.Op

		switch {
		case isConditionalBranch(op):
			successors := []int{int(last.Instruction.Branch)}
			if lastIdx+1 < len(instrs) {
				successors = append(successors, instrs[lastIdx+1].PC)
			}
			block.Successors = successors
		case op == disassembler.OpGoto:
			block.Successors = []int{int(last.Instruction.Branch)}
		case isReturn(op):
			block.Successors = nil
		default:
			if lastIdx+1 < len(instrs) {
				block.Successors = []int{instrs[lastIdx+1].PC}
			}
		}
	}

	return blocks, nil
}
