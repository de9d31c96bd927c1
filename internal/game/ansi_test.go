package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimStripsHostileControlRunes(t *testing.T) {
	assert.Equal(t, "goto east", Trim("goto\x08 east\x00\r"))
	assert.Equal(t, "say hi", Trim("‮say‬ hi\a"))
}

func TestTrimFlattensExoticWhitespace(t *testing.T) {
	assert.Equal(t, "tell Bea hello", Trim("\ttell Bea hello "))
}

func TestTrimLeavesPlainLinesAlone(t *testing.T) {
	assert.Equal(t, "look", Trim("  look  "))
	assert.Equal(t, "", Trim("   "))
}
