package simerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := New("parse scenario", CodeBadScenario, "expected 4 fields, got 2")
	require.Equal(t, "ossim: parse scenario: expected 4 fields, got 2", err.Error())
}

func TestErrorWithContext(t *testing.T) {
	err := New("parse scenario", CodeBadScenario, "bad line").WithContext("line", "7")
	require.Equal(t, "7", err.Context["line"])
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.New("boom")
	wrapped := Wrap("load random file", CodeIO, inner)
	require.Equal(t, CodeIO, wrapped.Code)
	require.ErrorIs(t, wrapped, inner)
}

func TestWrapNilIsNil(t *testing.T) {
	require.Nil(t, Wrap("op", CodeIO, nil))
}

func TestIsCode(t *testing.T) {
	err := New("parse flags", CodeBadFlag, "unknown policy letter Q")
	require.True(t, IsCode(err, CodeBadFlag))
	require.False(t, IsCode(err, CodeIO))
}
