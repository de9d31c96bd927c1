package game

import "strings"

// Direction labels an exit leading out of a room.
type Direction string

const (
	North     Direction = "north"
	East      Direction = "east"
	South     Direction = "south"
	West      Direction = "west"
	NorthEast Direction = "northeast"
	NorthWest Direction = "northwest"
	SouthEast Direction = "southeast"
	SouthWest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

var directionAliases = map[string]Direction{
	"n": North, "north": North,
	"e": East, "east": East,
	"s": South, "south": South,
	"w": West, "west": West,
	"ne": NorthEast, "northeast": NorthEast,
	"nw": NorthWest, "northwest": NorthWest,
	"se": SouthEast, "southeast": SouthEast,
	"sw": SouthWest, "southwest": SouthWest,
	"u": Up, "up": Up,
	"d": Down, "down": Down,
}

// ParseDirection resolves a textual direction or its shorthand. Unrecognised
// tokens are returned verbatim as a custom direction only when allowCustom is
// set; otherwise the second return value is false.
func ParseDirection(token string, allowCustom bool) (Direction, bool) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	if normalized == "" {
		return "", false
	}
	if dir, ok := directionAliases[normalized]; ok {
		return dir, true
	}
	if allowCustom {
		return Direction(normalized), true
	}
	return "", false
}

// Opposite returns the reverse direction for the standard compass set. Custom
// directions have no opposite.
func (d Direction) Opposite() (Direction, bool) {
	switch d {
	case North:
		return South, true
	case South:
		return North, true
	case East:
		return West, true
	case West:
		return East, true
	case NorthEast:
		return SouthWest, true
	case SouthWest:
		return NorthEast, true
	case NorthWest:
		return SouthEast, true
	case SouthEast:
		return NorthWest, true
	case Up:
		return Down, true
	case Down:
		return Up, true
	}
	return "", false
}
