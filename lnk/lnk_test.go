package lnk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleModuleImmediateAndAbsolute(t *testing.T) {
	// 0 defs, 0 uses, 2 instructions: an immediate and an absolute.
	input := "0 0 2 I 1000 A 2000"
	l := New()
	entries, symbols, diags, err := l.Run(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, symbols)
	require.Equal(t, []MemoryMapEntry{
		{Address: 0, Instruction: 1000},
		{Address: 1, Instruction: 2000},
	}, entries)
}

func TestRelativeAddressingAddsModuleBase(t *testing.T) {
	// Module 0 has 1 instruction (base becomes 1 for module 1).
	// Module 1's relative instruction 5010 (opcode 5, operand 10) should
	// resolve to 5000 + (base=1 + 10) = 5011.
	input := "0 0 1 A 1000 0 0 1 R 5010"
	l := New()
	entries, _, diags, err := l.Run(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, 5011, entries[1].Instruction)
}

func TestExternalReferenceResolvesThroughSymbolTable(t *testing.T) {
	// Module 0 defines "x" at relative address 0 (absolute 0).
	// Module 1 uses "x" and emits one external reference E 9000
	// (opcode 9, operand 0 -> use-list index 0 -> "x" -> absolute 0).
	input := "1 x 0 0 1 A 1000 0 1 x 1 E 9000"
	l := New()
	entries, symbols, diags, err := l.Run(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, 0, symbols["x"])
	require.Equal(t, 9000, entries[1].Instruction)
}

func TestExternalReferenceOutOfRangeIsNonFatal(t *testing.T) {
	// Module has 0 uses but an external record anyway: operand 0 is out
	// of range against an empty use list.
	input := "0 0 1 E 9000"
	l := New()
	_, _, diags, err := l.Run(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, 0, diags[0].Address)
}

func TestMalformedTokenIsFatal(t *testing.T) {
	l := New()
	_, _, _, err := l.Run(strings.NewReader("not-a-number"))
	require.Error(t, err)
}
