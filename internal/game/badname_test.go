package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ani"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("two words"))
	assert.Error(t, ValidateName("Ani42"))
	assert.Error(t, ValidateName("Aaaaaaaaaaaaaaaaaaaaaaaaa"))
}

func TestNameScreenReservedWords(t *testing.T) {
	screen := NewNameScreen()
	assert.True(t, screen.Blocked("admin"))
	assert.True(t, screen.Blocked(" Root "))
	assert.True(t, screen.Blocked(""))
	assert.False(t, screen.Blocked("Ani"))
}

func TestNameScreenBlocklistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.txt")
	require.NoError(t, os.WriteFile(path, []byte("Grawlix\n\n badword \n"), 0o644))

	screen := NewNameScreen()
	require.NoError(t, screen.LoadBlocklist(path))
	assert.True(t, screen.Blocked("grawlix"))
	assert.True(t, screen.Blocked("BadWord"))
	assert.False(t, screen.Blocked("Ani"))

	require.NoError(t, screen.LoadBlocklist(filepath.Join(t.TempDir(), "missing.txt")))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Ani", "Ember123"))
	assert.ErrorIs(t, ValidatePassword("Ani", "short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword("Ani", "alllowercase1"), ErrPasswordTooSimple)
	assert.ErrorIs(t, ValidatePassword("Ani", "NODIGITSHERE"), ErrPasswordTooSimple)
	assert.ErrorIs(t, ValidatePassword("Longername", "Longername"), ErrPasswordIsName)
}
