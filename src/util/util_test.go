package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMax(t *testing.T) {
	assert.Equal(t, 3, Max(3, -1))
	assert.Equal(t, "b", Max("a", "b"))
}

func TestMod(t *testing.T) {
	assert.Equal(t, 2, Mod(-1, 3))
	assert.Equal(t, 0, Mod(3, 3))
	assert.Equal(t, 1, Mod(4, 3))
}
