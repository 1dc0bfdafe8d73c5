package decompiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identityResolver(name string) string { return name }

func TestStatementToJava_Set(t *testing.T) {
	stmt := SetStmt{LocalIndex: 0, Value: Mul{LHS: ConstInt{Value: 1}, RHS: ConstInt{Value: 2}}}
	assert.Equal(t, "this = 1 * 2;", StatementToJava(stmt, false, identityResolver))
}

func TestStatementToJava_SetStatic(t *testing.T) {
	stmt := SetStmt{LocalIndex: 3, Value: ConstInt{Value: 7}}
	assert.Equal(t, "var3 = 7;", StatementToJava(stmt, true, identityResolver))
}

func TestStatementToJava_VoidReturn(t *testing.T) {
	assert.Equal(t, "return;", StatementToJava(VoidReturnStmt{}, false, identityResolver))
}
