package bmp

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesOnlyItsKind(t *testing.T) {
	err := error(loadError(TruncatedData, "a.bmp", io.ErrUnexpectedEOF))

	assert.True(t, errors.Is(err, ErrTruncatedData))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrNotBMP))
	assert.Equal(t, "bmp: load a.bmp: truncated data: unexpected EOF", err.Error())
}

func TestErrorWithoutPathOrCause(t *testing.T) {
	err := saveError(InvalidSize, "", nil)
	assert.Equal(t, "bmp: save: invalid size", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.True(t, errors.Is(loadError(Unsupported, "", nil), ErrUnsupported))
}
