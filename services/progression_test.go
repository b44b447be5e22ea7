package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp    int64
		level int
	}{
		{0, 1},
		{25, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, CalculateLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestCalculateLevelIsMonotonic(t *testing.T) {
	prev := CalculateLevel(0)
	for xp := int64(0); xp <= 5000; xp++ {
		lvl := CalculateLevel(xp)
		assert.GreaterOrEqual(t, lvl, prev)
		assert.Equal(t, int(xp/100)+1, lvl)
		prev = lvl
	}
}

func TestXPForNextLevelAndProgress(t *testing.T) {
	assert.Equal(t, int64(100), XPForNextLevel(1))
	assert.Equal(t, int64(500), XPForNextLevel(5))
	assert.Equal(t, int64(100), XPForNextLevel(0))

	assert.Equal(t, 0.0, XPProgress(0))
	assert.Equal(t, 0.25, XPProgress(125))
	assert.Equal(t, 0.99, XPProgress(99))
	assert.Equal(t, 0.0, XPProgress(-10))
}
