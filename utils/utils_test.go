package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fprint/fileformat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile_WritesAndCleansUpTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, AtomicWriteFile(path, []byte("hello"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, AtomicWriteFile(path, []byte("first"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
}

func TestWrap_PreservesCauseForUnwrap(t *testing.T) {
	cause := assertError("boom")
	err := Wrap(cause, "decoding failed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause), "Wrap must keep the original cause reachable via errors.Is")
}

func TestWrap_PreservesDecodeErrorForAs(t *testing.T) {
	cause := &fileformat.DecodeError{
		Kind: fileformat.ErrUnsupportedFormat,
		Path: "track.ogg",
		Err:  errors.New("unknown container"),
	}
	wrapped := Wrap(cause, "fingerprint pipeline")

	var decodeErr *fileformat.DecodeError
	require.True(t, errors.As(wrapped, &decodeErr), "Wrap must not destroy the cause's concrete type")
	assert.Equal(t, fileformat.ErrUnsupportedFormat, decodeErr.Kind)
}

type assertError string

func (e assertError) Error() string { return string(e) }

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}
