package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1, 0, 4))
	assert.Equal(t, 4, Clamp(5, 0, 4))
	assert.Equal(t, 2, Clamp(2, 0, 4))
	assert.Equal(t, 0, Clamp(1, 0, 0))
}

func TestSaturateByte(t *testing.T) {
	assert.Equal(t, byte(0), SaturateByte(-3.5))
	assert.Equal(t, byte(255), SaturateByte(300))
	assert.Equal(t, byte(255), SaturateByte(255.9))
	assert.Equal(t, byte(63), SaturateByte(63.75))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, int64(7), Abs(-7))
	assert.Equal(t, int64(2147483648), Abs(-2147483648))
	assert.Equal(t, int64(0), Abs(0))
}
