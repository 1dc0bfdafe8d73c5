/*
 * javadec - a Java class-file reader and bytecode disassembler
 * Package decompiler builds control-flow graphs and a minimal
 * expression-tree IR from one method's decoded instructions.
 */

package decompiler

import "javadec/src/classloader"

// VarType tags the JVM operand-stack category a Variable or BasicCast
// carries, so a downstream pretty-printer can decide whether (and how)
// to emit a cast; Reference has no textual cast form.
type VarType int

const (
	VarReference VarType = iota
	VarInt
	VarLong
	VarFloat
	VarDouble
	VarByte
)

// Expr is any IR node that can sit on the symbolic operand stack.
type Expr interface {
	exprNode()
}

type ConstInt struct{ Value int64 }
type ConstFloat struct{ Value float64 }
type ConstString struct{ Value string }

type Variable struct {
	Index uint16
	Type  VarType
}

type Static struct {
	Field classloader.ConstField
}

type ArrayLength struct {
	Reference Expr
}

type BasicCast struct {
	Value     Expr
	Primitive VarType
}

type ClassCast struct {
	Value       Expr
	TargetClass classloader.ConstClass
}

// Call is dual-role per spec.md §4.7: it is pushed as an Expr when the
// resolved method's return type is non-Void, and wrapped in CallStmt
// when Void.
type Call struct {
	Method   classloader.ConstMethod
	Receiver Expr
	Args     []Expr
}

type Mul struct {
	LHS Expr
	RHS Expr
}

func (ConstInt) exprNode()    {}
func (ConstFloat) exprNode()  {}
func (ConstString) exprNode() {}
func (Variable) exprNode()    {}
func (Static) exprNode()      {}
func (ArrayLength) exprNode() {}
func (BasicCast) exprNode()   {}
func (ClassCast) exprNode()   {}
func (Call) exprNode()        {}
func (Mul) exprNode()         {}

// Statement is an IR node that is not left on the stack.
type Statement interface {
	stmtNode()
}

type SetStmt struct {
	LocalIndex uint16
	Value      Expr
}

type CallStmt struct {
	Call Call
}

type VoidReturnStmt struct{}

func (SetStmt) stmtNode()        {}
func (CallStmt) stmtNode()       {}
func (VoidReturnStmt) stmtNode() {}
