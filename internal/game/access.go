package game

// Access describes the privilege tier of a player.
type Access struct {
	Level     AccessLevel
	Builder   bool
	EventHost bool
}

// AccessLevel enumerates the privilege tiers.
type AccessLevel int

const (
	AccessGuest AccessLevel = iota
	AccessPlayer
	AccessBuilder
	AccessAdmin
)

// DefaultAccess is the clean-slate access granted to freshly created players.
func DefaultAccess() Access {
	return Access{Level: AccessPlayer}
}

// AdminAccess grants the full administrator tier.
func AdminAccess() Access {
	return Access{Level: AccessAdmin}
}

// IsAdmin reports whether the holder has full administrator rights.
func (a Access) IsAdmin() bool {
	return a.Level == AccessAdmin
}

// IsBuilder reports whether the holder may use building commands. Admins and
// dedicated builders qualify, as do players carrying the builder flag.
func (a Access) IsBuilder() bool {
	switch a.Level {
	case AccessAdmin, AccessBuilder:
		return true
	case AccessPlayer:
		return a.Builder
	}
	return false
}

// IsEventHost reports whether the holder may run world events.
func (a Access) IsEventHost() bool {
	if a.Level == AccessAdmin {
		return true
	}
	return a.Level == AccessPlayer && a.EventHost
}

func (l AccessLevel) String() string {
	switch l {
	case AccessGuest:
		return "guest"
	case AccessPlayer:
		return "player"
	case AccessBuilder:
		return "builder"
	case AccessAdmin:
		return "admin"
	}
	return "unknown"
}
