package game

// State is one variant of the per-session lifecycle.
//
// A session starts in StateEnteringName when the connection is accepted and is
// destroyed once logout handling completes. Playing and Editing states live on
// the player's state stack; the connection handler always re-reads the top of
// the stack after dispatching a command.
type State interface {
	stateLabel() string
}

// StateEnteringName waits for the player to supply a character name.
type StateEnteringName struct{}

// StateEnteringPassword waits for the password of a named character.
type StateEnteringPassword struct {
	Name string
}

// StateEnteringPasswordVerify waits for the confirmation password during
// character creation, remembering the first attempt.
type StateEnteringPasswordVerify struct {
	Name  string
	First string
}

// StatePlaying is the normal in-world command mode.
type StatePlaying struct{}

// StateEditing is an in-session editor, scoped by its mode.
type StateEditing struct {
	Mode EditorMode
}

// StateLoggingOut marks a session whose player must be detached and persisted.
type StateLoggingOut struct{}

func (StateEnteringName) stateLabel() string           { return "entering-name" }
func (StateEnteringPassword) stateLabel() string       { return "entering-password" }
func (StateEnteringPasswordVerify) stateLabel() string { return "entering-password-verify" }
func (StatePlaying) stateLabel() string                { return "playing" }
func (s StateEditing) stateLabel() string              { return "editing-" + s.Mode.editorLabel() }
func (StateLoggingOut) stateLabel() string             { return "logging-out" }

// EditorMode scopes an Editing state to the record being edited.
type EditorMode interface {
	editorLabel() string
}

// EditRoom edits the room with the given id.
type EditRoom struct {
	ID RoomID
}

// EditHelp edits the help entry for the given topic.
type EditHelp struct {
	Topic string
}

func (EditRoom) editorLabel() string { return "room" }
func (EditHelp) editorLabel() string { return "help" }
