package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javadec/src/classloader"
	"javadec/src/config"
	"javadec/src/disassembler"
)

func TestProcessClassFile_MissingFileProducesDiagnostic(t *testing.T) {
	err := processClassFile("does-not-exist.class", config.DefaultConfig())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), toolName+": does-not-exist.class: "),
		"diagnostic line %q does not match \"%s: <context>: <error>\"", err.Error(), toolName)
}

func TestProcessInput_DispatchesOnExtension(t *testing.T) {
	// A .jar path that doesn't exist should fail inside the jar opener,
	// not be misrouted to the class-file reader.
	err := processInput("missing.jar", config.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.jar")
}

func TestNewRootCmd_RequiresAtLeastOneInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	real := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = real

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRenderDecompiled_HonorsMaxBlocksPerMethod(t *testing.T) {
	// iconst_1(pc0), ifeq +4 -> pc5(pc1-3), return(pc4), return(pc5):
	// three blocks, split at pc0/pc4 (fallthrough)/pc5 (branch target).
	code := []byte{
		0x04,       // pc0 iconst_1
		0x99, 0x00, 0x04, // pc1 ifeq, offset +4 -> absolute pc5
		0xB1, // pc4 return
		0xB1, // pc5 return
	}
	instrs, err := disassembler.Disassemble(code)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Decompiler.MaxBlocksPerMethod = 2

	out := captureStdout(t, func() {
		err = renderDecompiled("Test.class", "m", instrs, &classloader.ConstantPool{}, 0, cfg)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "block@"), "expected only 2 of 3 blocks to be rendered")
}

func TestRenderDecompiled_UnboundedWhenMaxBlocksIsZero(t *testing.T) {
	code := []byte{
		0x04,       // pc0 iconst_1
		0x99, 0x00, 0x04, // pc1 ifeq -> absolute pc5
		0xB1, // pc4 return
		0xB1, // pc5 return
	}
	instrs, err := disassembler.Disassemble(code)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Decompiler.MaxBlocksPerMethod = 0

	out := captureStdout(t, func() {
		err = renderDecompiled("Test.class", "m", instrs, &classloader.ConstantPool{}, 0, cfg)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "block@"), "expected all 3 blocks to be rendered when unbounded")
}
