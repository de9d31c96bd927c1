package game

import "strings"

// HelpEntry is a stored help topic. Editors work on a detached copy; the
// stored record only changes when the copy is saved.
type HelpEntry struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// NormalizeTopic canonicalises a help topic key.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
