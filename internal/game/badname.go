package game

import (
	"os"
	"strings"
	"sync"
)

// NameScreen rejects reserved, blocked, or otherwise unusable character
// names during EnteringName.
type NameScreen struct {
	mu      sync.RWMutex
	blocked map[string]struct{}
}

// NewNameScreen builds an empty screen holding only the built-in reserved
// lists.
func NewNameScreen() *NameScreen {
	return &NameScreen{blocked: make(map[string]struct{})}
}

// LoadBlocklist merges a newline-separated blocklist file into the screen.
// A missing file is not an error; the built-in lists still apply.
func (n *NameScreen) LoadBlocklist(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, line := range strings.Split(string(data), "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word != "" {
			n.blocked[word] = struct{}{}
		}
	}
	return nil
}

// Blocked reports whether the name may not be used.
func (n *NameScreen) Blocked(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return true
	}
	n.mu.RLock()
	_, listed := n.blocked[normalized]
	n.mu.RUnlock()
	if listed {
		return true
	}
	return isReservedWord(normalized)
}

func isReservedWord(name string) bool {
	switch name {
	case "admin", "root", "system", "guest", "self", "all", "void",
		"mysql", "sql", "linux", "unix":
		return true
	}
	return false
}

// ValidateName applies the structural rules for a character name.
func ValidateName(name string) error {
	if name == "" {
		return errEmptyName
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return errNameSpaces
	}
	if len(name) > 24 {
		return errNameTooLong
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return errNameLetters
		}
	}
	return nil
}

var (
	errEmptyName   = strError("name cannot be empty")
	errNameSpaces  = strError("name cannot contain spaces")
	errNameTooLong = strError("name must be 24 characters or fewer")
	errNameLetters = strError("name must contain letters only")
)

type strError string

func (e strError) Error() string { return string(e) }
