package game

import "strings"

// uniqueMatch resolves target against candidate names the way players
// abbreviate them: an exact case-insensitive match wins outright, and a
// prefix match is accepted only when exactly one candidate carries it. With
// matchWords set, a prefix of any word in a multi-word name also counts, so
// "map" finds "a torn map".
func uniqueMatch(target string, names []string, matchWords bool) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(target))
	if want == "" {
		return -1, false
	}

	found := -1
	hits := 0
	for i, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == want {
			return i, true
		}
		if matchesAbbrev(candidate, want, matchWords) {
			found = i
			hits++
		}
	}
	if hits == 1 {
		return found, true
	}
	return -1, false
}

func matchesAbbrev(candidate, want string, matchWords bool) bool {
	if strings.HasPrefix(candidate, want) {
		return true
	}
	if !matchWords {
		return false
	}
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, want) {
			return true
		}
	}
	return false
}
