package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFail(t *testing.T) {
	require.NoError(t, WrapFail(nil, "read file"))

	err := WrapFail(io.EOF, "read %s")
	require.EqualError(t, err, "can't read %s: EOF")
	require.True(t, Is(err, io.EOF))

	err = WrapFailf(io.EOF, "read %s", "default.json")
	require.EqualError(t, err, "can't read default.json: EOF")
}

func TestMark(t *testing.T) {
	kind := New("store unavailable")

	require.NoError(t, Mark(nil, kind))

	err := Mark(WrapFail(io.ErrUnexpectedEOF, "decode set"), kind)
	require.EqualError(t, err, "can't decode set: unexpected EOF")
	require.True(t, Is(err, kind))
	require.True(t, Is(err, io.ErrUnexpectedEOF))
	require.False(t, Is(err, io.EOF))
}
