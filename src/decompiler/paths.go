package decompiler

// PathNode is one step of an enumerated path: the block at this step,
// and whether it was appended as a terminal back-edge (already present
// earlier on the same path) rather than expanded further.
type PathNode struct {
	PC       int
	BackEdge bool
	Next     []*PathNode
}

// EnumeratePaths walks the CFG from entryPC, recursing into each
// successor not already on the current path; a successor already on
// the path is appended as a terminal BackEdge node instead of being
// expanded again (spec.md §4.8). This exists for diagnostics, not for
// the symbolic executor, which operates one block at a time.
func EnumeratePaths(blocks map[int]*Block, entryPC int) *PathNode {
	return walk(blocks, entryPC, nil)
}

func walk(blocks map[int]*Block, pc int, visited []int) *PathNode {
	for _, v := range visited {
		if v == pc {
			return &PathNode{PC: pc, BackEdge: true}
		}
	}

	node := &PathNode{PC: pc}
	block, ok := blocks[pc]
	if !ok {
		return node
	}

	path := append(append([]int{}, visited...), pc)
	for _, succ := range block.Successors {
		node.Next = append(node.Next, walk(blocks, succ, path))
	}
	return node
}
