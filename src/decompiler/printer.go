package decompiler

import (
	"fmt"
	"strings"
)

// ClassNameResolver maps an internal binary class name (e.g.
// "java/lang/String") to the form the pretty-printer should emit.
type ClassNameResolver func(binaryName string) string

// varName renders local-variable slot 0 as "this" for an instance
// method, matching the original pretty-printer's convention; every
// other slot becomes "var<N>".
func varName(index uint16, isStatic bool) string {
	if index == 0 && !isStatic {
		return "this"
	}
	return fmt.Sprintf("var%d", index)
}

// ExprToJava renders one IR expression node as a best-effort Java
// source fragment. This is deliberately minimal (spec.md §1's
// pretty-printing non-goal): it demonstrates the IR rather than
// reproducing a real decompiler's output fidelity.
func ExprToJava(e Expr, isStatic bool, resolveClassName ClassNameResolver) string {
	switch v := e.(type) {
	case Variable:
		return varName(v.Index, isStatic)

	case ConstInt:
		return fmt.Sprintf("%d", v.Value)

	case ConstFloat:
		return fmt.Sprintf("%v", v.Value)

	case ConstString:
		return fmt.Sprintf("%q", v.Value)

	case Static:
		return fmt.Sprintf("%s.%s", resolveClassName(v.Field.Class.Name), v.Field.NameAndType.Name)

	case ArrayLength:
		return fmt.Sprintf("%s.length", ExprToJava(v.Reference, isStatic, resolveClassName))

	case BasicCast:
		return fmt.Sprintf("((%s) (%s))", primitiveName(v.Primitive), ExprToJava(v.Value, isStatic, resolveClassName))

	case ClassCast:
		return fmt.Sprintf("((%s) (%s))", resolveClassName(v.TargetClass.Name), ExprToJava(v.Value, isStatic, resolveClassName))

	case Call:
		return callToJava(v, isStatic, resolveClassName)

	case Mul:
		return fmt.Sprintf("%s * %s", ExprToJava(v.LHS, isStatic, resolveClassName), ExprToJava(v.RHS, isStatic, resolveClassName))

	default:
		return fmt.Sprintf("/* unsupported expression %T */", e)
	}
}

func callToJava(c Call, isStatic bool, resolveClassName ClassNameResolver) string {
	receiver := ExprToJava(c.Receiver, isStatic, resolveClassName)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = ExprToJava(a, isStatic, resolveClassName)
	}
	return fmt.Sprintf("%s.%s(%s)", receiver, c.Method.NameAndType.Name, strings.Join(args, ", "))
}

func primitiveName(t VarType) string {
	switch t {
	case VarInt:
		return "int"
	case VarLong:
		return "long"
	case VarFloat:
		return "float"
	case VarDouble:
		return "double"
	case VarByte:
		return "byte"
	default:
		return "" // reference has no textual cast form (spec.md §4.7)
	}
}

// StatementToJava renders one IR statement as a line of best-effort
// Java source, without a trailing newline.
func StatementToJava(s Statement, isStatic bool, resolveClassName ClassNameResolver) string {
	switch v := s.(type) {
	case SetStmt:
		return fmt.Sprintf("%s = %s;", varName(v.LocalIndex, isStatic), ExprToJava(v.Value, isStatic, resolveClassName))

	case CallStmt:
		return callToJava(v.Call, isStatic, resolveClassName) + ";"

	case VoidReturnStmt:
		return "return;"

	default:
		return fmt.Sprintf("/* unsupported statement %T */", s)
	}
}

// BlockToJava renders every statement of a block, one per line.
func BlockToJava(statements []Statement, isStatic bool, resolveClassName ClassNameResolver) string {
	lines := make([]string, len(statements))
	for i, stmt := range statements {
		lines[i] = StatementToJava(stmt, isStatic, resolveClassName)
	}
	return strings.Join(lines, "\n")
}
