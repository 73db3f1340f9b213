package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *Tokenizer) []Token {
	var out []Token
	for {
		tok, ok := t.Next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func TestBasicTokenization(t *testing.T) {
	tok := New(strings.NewReader("foo bar\nbaz\n"))
	got := collect(tok)

	want := []Token{
		{Value: "foo", Line: 1, Offset: 1},
		{Value: "bar", Line: 1, Offset: 5},
		{Value: "baz", Line: 2, Offset: 1},
	}
	require.Equal(t, want, got)
}

func TestExtraWhitespaceIsSkipped(t *testing.T) {
	tok := New(strings.NewReader("  a    b\t c"))
	got := collect(tok)

	require.Equal(t, []Token{
		{Value: "a", Line: 1, Offset: 3},
		{Value: "b", Line: 1, Offset: 8},
		{Value: "c", Line: 1, Offset: 11},
	}, got)
}

func TestEOFPosition(t *testing.T) {
	tok := New(strings.NewReader("module1\n3 4 5"))
	collect(tok)

	line, offset := tok.EOFPosition()
	require.Equal(t, 2, line)
	require.Equal(t, len("3 4 5")+1, offset)
}

func TestEmptyInput(t *testing.T) {
	tok := New(strings.NewReader(""))
	_, ok := tok.Next()
	require.False(t, ok)
}
