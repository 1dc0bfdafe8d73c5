package decompiler

import (
	"fmt"

	"javadec/src/classloader"
	"javadec/src/disassembler"
)

func loadStoreType(op disassembler.Op) VarType {
	switch op {
	case disassembler.OpILoad, disassembler.OpIStore:
		return VarInt
	case disassembler.OpLLoad, disassembler.OpLStore:
		return VarLong
	case disassembler.OpFLoad, disassembler.OpFStore:
		return VarFloat
	case disassembler.OpDLoad, disassembler.OpDStore:
		return VarDouble
	default:
		return VarReference
	}
}

// execState holds the virtual operand stack and the statements
// accumulated while walking one block in program order.
type execState struct {
	stack      []Expr
	statements []Statement
	pool       *classloader.ConstantPool
}

func (s *execState) push(e Expr) {
	s.stack = append(s.stack, e)
}

func (s *execState) pop() (Expr, error) {
	if len(s.stack) == 0 {
		return nil, ErrEmptyStack
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, nil
}

// DecompileBlock simulates one basic block's instructions against a
// virtual operand stack of IR nodes (spec.md §4.9), producing the
// block's statement list. The stack MUST be empty when the block ends;
// a leftover value is a StackSizeError.
func DecompileBlock(block *Block, pool *classloader.ConstantPool) ([]Statement, error) {
	s := &execState{pool: pool}

	for _, pi := range block.Instructions {
		if err := s.step(pi.Instruction); err != nil {
			return nil, err
		}
	}

	if len(s.stack) != 0 {
		return nil, &StackSizeError{Size: len(s.stack)}
	}
	return s.statements, nil
}

func (s *execState) step(instr disassembler.Instruction) error {
	op := instr.Op
	switch op {
	case disassembler.OpILoad, disassembler.OpLLoad, disassembler.OpFLoad,
		disassembler.OpDLoad, disassembler.OpALoad:
		s.push(Variable{Index: instr.Index, Type: loadStoreType(op)})
		return nil

	case disassembler.OpIStore, disassembler.OpLStore, disassembler.OpFStore,
		disassembler.OpDStore, disassembler.OpAStore:
		value, err := s.pop()
		if err != nil {
			return err
		}
		s.statements = append(s.statements, SetStmt{LocalIndex: instr.Index, Value: value})
		return nil

	case disassembler.OpIConst, disassembler.OpBIPush, disassembler.OpSIPush:
		s.push(ConstInt{Value: instr.IntValue})
		return nil

	case disassembler.OpLConst:
		s.push(ConstInt{Value: instr.IntValue})
		return nil

	case disassembler.OpFConst:
		s.push(ConstFloat{Value: float64(instr.FloatValue)})
		return nil

	case disassembler.OpDConst:
		s.push(ConstFloat{Value: instr.DoubleValue})
		return nil

	case disassembler.OpLoadConst:
		return s.loadConst(instr.Index)

	case disassembler.OpGetStatic:
		field, err := s.pool.GetField(instr.Index)
		if err != nil {
			return err
		}
		s.push(Static{Field: field})
		return nil

	case disassembler.OpArrayLength:
		ref, err := s.pop()
		if err != nil {
			return err
		}
		s.push(ArrayLength{Reference: ref})
		return nil

	case disassembler.OpInvokeVirtual, disassembler.OpInvokeSpecial:
		return s.invoke(instr.Index)

	case disassembler.OpIMul:
		rhs, err := s.pop()
		if err != nil {
			return err
		}
		lhs, err := s.pop()
		if err != nil {
			return err
		}
		s.push(Mul{LHS: lhs, RHS: rhs})
		return nil

	case disassembler.OpI2B:
		value, err := s.pop()
		if err != nil {
			return err
		}
		s.push(BasicCast{Value: value, Primitive: VarByte})
		return nil

	case disassembler.OpCheckCast:
		class, err := s.pool.GetClass(instr.Index)
		if err != nil {
			return err
		}
		value, err := s.pop()
		if err != nil {
			return err
		}
		s.push(ClassCast{Value: value, TargetClass: class})
		return nil

	case disassembler.OpReturn:
		s.statements = append(s.statements, VoidReturnStmt{})
		return nil

	default:
		return &UnimplementedInstructionError{Op: op}
	}
}

// loadConst distinguishes ldc/ldc_w/ldc2_w's pool-entry kind at
// execution time, since the disassembler unifies all three into one
// LoadConst instruction (spec.md §5).
func (s *execState) loadConst(index uint16) error {
	entry, err := s.pool.GetEntry(index)
	if err != nil {
		return err
	}

	switch e := entry.(type) {
	case classloader.StringInfo:
		text, err := s.pool.GetUtf8(e.StringIndex)
		if err != nil {
			return err
		}
		s.push(ConstString{Value: text})
	case classloader.IntegerInfo:
		s.push(ConstInt{Value: int64(e.Value)})
	case classloader.LongInfo:
		s.push(ConstInt{Value: e.Value})
	case classloader.FloatInfo:
		s.push(ConstFloat{Value: float64(e.Value)})
	case classloader.DoubleInfo:
		s.push(ConstFloat{Value: e.Value})
	default:
		return fmt.Errorf("%w: ldc target of type %T", ErrUnimplementedInstruction, entry)
	}
	return nil
}

// invoke resolves the target method, parses its descriptor to learn
// its arity, and pops args + receiver in call order (spec.md §4.9,
// §8(15)). A Void-returning method is emitted as a statement; anything
// else is pushed back onto the stack as a Call expression.
func (s *execState) invoke(index uint16) error {
	method, err := s.pool.GetMethodOrInterfaceMethod(index)
	if err != nil {
		return err
	}
	descriptor, err := classloader.ParseMethodDescriptor(method.NameAndType.Descriptor)
	if err != nil {
		return err
	}

	args := make([]Expr, len(descriptor.Params))
	for i := len(args) - 1; i >= 0; i-- {
		value, err := s.pop()
		if err != nil {
			return err
		}
		args[i] = value
	}
	receiver, err := s.pop()
	if err != nil {
		return err
	}

	call := Call{Method: method, Receiver: receiver, Args: args}
	if descriptor.Return.Kind == classloader.TypeVoid {
		s.statements = append(s.statements, CallStmt{Call: call})
	} else {
		s.push(call)
	}
	return nil
}
