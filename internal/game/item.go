package game

import (
	"errors"
	"strings"
)

var (
	// ErrItemNotFound indicates a requested item could not be located.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNotCarried indicates the player is not carrying the requested item.
	ErrItemNotCarried = errors.New("item not carried")
	// ErrContainerFull indicates the target container refused the item.
	ErrContainerFull = errors.New("container full")
)

// Item represents an object that can exist in rooms or player inventories.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LostItem records an item that could not be placed anywhere, together with
// the reason it failed. The maintenance loop sweeps these into long-term
// holding.
type LostItem struct {
	Item   Item
	Owner  string
	Reason error
}

func findItemIndex(items []Item, target string) int {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return -1
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	idx, ok := uniqueMatch(trimmed, names, true)
	if !ok {
		return -1
	}
	return idx
}
