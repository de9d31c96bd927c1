package game

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher executes one command line for the connected player.
// Returning true indicates the connection should terminate.
type Dispatcher func(*Realm, *Player, string) bool

// Realm bundles the shared collaborators every session and command handler
// reaches: the world registry, the broadcast router, persistence, and the
// runtime settings cell.
type Realm struct {
	World    *World
	Router   *Router
	Store    *Store
	Settings *Settings

	// AdminName is granted administrator access at login regardless of the
	// stored record.
	AdminName string
}

// Session drives one telnet connection from greeting to logout. A session
// owns exactly two goroutines: a reader feeding lines into a channel, and the
// main loop below, which is the only writer to the connection once the player
// is attached.
type Session struct {
	id       string
	realm    *Realm
	telnet   *TelnetSession
	screen   *NameScreen
	dispatch Dispatcher
	log      *zap.Logger
}

// NewSession wraps an accepted connection.
func NewSession(realm *Realm, telnet *TelnetSession, screen *NameScreen, dispatch Dispatcher) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		realm:    realm,
		telnet:   telnet,
		screen:   screen,
		dispatch: dispatch,
		log:      realm.World.Logger().Named("session").With(zap.String("session", id)),
	}
}

// Run services the connection until logout or disconnect.
func (s *Session) Run(addr string) {
	defer s.telnet.Close()

	w := s.realm.World
	if w.Greeting != "" {
		_ = s.telnet.WriteString(Ansi(Style(w.Greeting+"\r\n", AnsiMagenta, AnsiBold)))
	}

	p, fresh, err := s.login()
	if err != nil {
		s.log.Debug("login abandoned", zap.Error(err))
		return
	}
	if s.realm.AdminName != "" && strings.EqualFold(p.Name, s.realm.AdminName) {
		p.Access = AdminAccess()
	}

	if err := w.AttachPlayer(p, addr); err != nil {
		_ = s.telnet.WriteString(Ansi(Style("\r\nThat character is already connected.\r\n", AnsiYellow)))
		return
	}
	s.log.Info("player attached", zap.String("player", p.Name), zap.String("addr", addr))

	s.placePlayer(p, fresh)

	subID, sub := s.realm.Router.Subscribe()
	defer s.realm.Router.Unsubscribe(subID)

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go s.readLines(lines, done)

	p.Send(Prompt(p))
	for {
		select {
		case out := <-p.Output:
			if err := s.telnet.WriteString(out); err != nil {
				s.abandon(p)
				return
			}
		case b := <-sub:
			if !p.Playing() {
				continue
			}
			if text, ok := b.RenderFor(w, p); ok {
				p.Send(text)
				p.Send(Prompt(p))
			}
		case line, ok := <-lines:
			if !ok {
				s.abandon(p)
				return
			}
			quit := s.dispatch(s.realm, p, line)
			if _, out := p.State().(StateLoggingOut); quit || out {
				s.farewell(p)
				w.DetachPlayer(p.Name)
				s.log.Info("player logged out", zap.String("player", p.Name))
				return
			}
			p.Send(Prompt(p))
		}
	}
}

// abandon handles an abrupt disconnect: the logout state is synthesized so
// the player still drains through the ordinary deferred-save path.
func (s *Session) abandon(p *Player) {
	p.ResetState(StateLoggingOut{})
	s.realm.World.DetachPlayer(p.Name)
	s.log.Info("connection dropped", zap.String("player", p.Name))
}

func (s *Session) farewell(p *Player) {
	_ = s.telnet.WriteString(Ansi(Style("\r\nUntil next time.\r\n", AnsiMagenta)))
}

// readLines feeds the main loop. The done channel covers the window where a
// pipelined line has been read but the loop already returned; without it the
// send below would block forever and strand the goroutine.
func (s *Session) readLines(lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	for {
		line, err := s.telnet.ReadLine()
		if err != nil {
			return
		}
		select {
		case lines <- Trim(line):
		case <-done:
			return
		}
	}
}

// login walks the pre-game states: name entry, then password entry, then (for
// new characters only) password verification. It returns the constructed
// player and whether the character was created this session.
func (s *Session) login() (*Player, bool, error) {
	var state State = StateEnteringName{}
	for {
		s.promptFor(state)
		raw, err := s.telnet.ReadLine()
		if err != nil {
			return nil, false, err
		}
		line := Trim(raw)

		switch st := state.(type) {
		case StateEnteringName:
			next, ok := s.handleName(line)
			if ok {
				state = next
			}
		case StateEnteringPassword:
			p, next, err := s.handlePassword(st, line)
			if err != nil {
				return nil, false, err
			}
			if p != nil {
				return p, false, nil
			}
			state = next
		case StateEnteringPasswordVerify:
			p, next, err := s.handleVerify(st, line)
			if err != nil {
				return nil, false, err
			}
			if p != nil {
				return p, true, nil
			}
			state = next
		}
	}
}

func (s *Session) promptFor(state State) {
	switch state.(type) {
	case StateEnteringName:
		_ = s.telnet.WriteString("\r\nBy what name are you known? ")
	case StateEnteringPassword:
		_ = s.telnet.WriteString("\r\nPassword: ")
	case StateEnteringPasswordVerify:
		_ = s.telnet.WriteString("\r\nRetype the password to confirm: ")
	}
}

func (s *Session) handleName(line string) (State, bool) {
	if line == "" {
		return nil, false
	}
	if err := ValidateName(line); err != nil {
		_ = s.telnet.WriteString("\r\n" + err.Error() + ".\r\n")
		return nil, false
	}
	if s.screen.Blocked(line) {
		_ = s.telnet.WriteString("\r\nThat name may not be used here.\r\n")
		return nil, false
	}
	if _, connected := s.realm.World.Player(line); connected {
		_ = s.telnet.WriteString("\r\nThat character is already connected.\r\n")
		return nil, false
	}
	return StateEnteringPassword{Name: line}, true
}

func (s *Session) handlePassword(st StateEnteringPassword, line string) (*Player, State, error) {
	rec, err := s.realm.Store.LoadPlayer(st.Name, line)
	switch {
	case err == nil:
		p := playerFromRecord(rec)
		if msg := s.realm.World.WelcomeBack; msg != "" {
			_ = s.telnet.WriteString(Ansi(Style("\r\n"+msg+"\r\n", AnsiMagenta)))
		}
		return p, nil, nil
	case errors.Is(err, ErrRecordNotFound):
		return nil, StateEnteringPasswordVerify{Name: st.Name, First: line}, nil
	case errors.Is(err, ErrInvalidCredentials):
		_ = s.telnet.WriteString(Ansi(Style("\r\nThat is not the password.\r\n", AnsiYellow)))
		return nil, StateEnteringName{}, nil
	default:
		return nil, nil, err
	}
}

func (s *Session) handleVerify(st StateEnteringPasswordVerify, line string) (*Player, State, error) {
	if line != st.First {
		_ = s.telnet.WriteString(Ansi(Style("\r\nThe passwords do not match.\r\n", AnsiYellow)))
		return nil, StateEnteringPassword{Name: st.Name}, nil
	}
	if verr := ValidatePassword(st.Name, st.First); verr != nil {
		_ = s.telnet.WriteString("\r\n" + passwordHint(verr) + "\r\n")
		return nil, StateEnteringPassword{Name: st.Name}, nil
	}
	rec := PlayerRecord{
		Name:     st.Name,
		Access:   DefaultAccess(),
		Location: s.realm.World.Root().Room,
	}
	if err := s.realm.Store.CreatePlayer(rec, st.First); err != nil {
		if errors.Is(err, ErrPlayerExists) {
			_ = s.telnet.WriteString("\r\nThat name was claimed while you were typing.\r\n")
			return nil, StateEnteringName{}, nil
		}
		return nil, nil, err
	}
	if msg := s.realm.World.WelcomeNew; msg != "" {
		_ = s.telnet.WriteString(Ansi(Style("\r\n"+msg+"\r\n", AnsiMagenta)))
	}
	return playerFromRecord(rec), nil, nil
}

func passwordHint(err error) string {
	switch {
	case errors.Is(err, ErrPasswordTooShort):
		return "Passwords need at least eight characters."
	case errors.Is(err, ErrPasswordTooSimple):
		return "Passwords need a lowercase letter, an uppercase letter, and a digit."
	case errors.Is(err, ErrPasswordIsName):
		return "Your name is not a password."
	default:
		return err.Error()
	}
}

func playerFromRecord(rec PlayerRecord) *Player {
	p := NewPlayer(rec.Name, rec.Access, StatePlaying{})
	if len(rec.Channels) > 0 {
		subs := make(map[Channel]bool, len(rec.Channels))
		for name, on := range rec.Channels {
			if channel, ok := ChannelFromString(name); ok && on {
				subs[channel] = true
			}
		}
		p.SetSubscriptions(subs)
	}
	for _, item := range rec.Items {
		p.AddItem(item)
	}
	p.ResetActivity()
	p.location = rec.Location
	return p
}

// placePlayer drops the player into its saved room, falling back to the root
// entrance when the saved location no longer resolves.
func (s *Session) placePlayer(p *Player, fresh bool) {
	w := s.realm.World
	saved := p.Location()
	if _, ok := w.Room(saved); !ok || saved == "" {
		if !fresh && saved != "" {
			p.Send("\r\nThe place you left no longer exists; you awaken at the entrance.")
			s.log.Warn("saved location vanished",
				zap.String("player", p.Name),
				zap.String("room", string(saved)))
		}
		if _, err := TranslocateToRoot(w, p); err != nil {
			s.log.Error("root placement failed", zap.String("player", p.Name), zap.Error(err))
		}
		s.announceArrival(p)
		return
	}
	if _, err := Translocate(w, nil, saved, p); err != nil {
		s.log.Error("placement failed", zap.String("player", p.Name), zap.Error(err))
		return
	}
	s.announceArrival(p)
}

func (s *Session) announceArrival(p *Player) {
	room, ok := s.realm.World.Room(p.Location())
	if !ok {
		return
	}
	s.realm.Router.Publish(RoomEvent{
		Room:  room.ID,
		Actor: p.Name,
		Text:  HighlightName(p.Name) + " has arrived.",
	})
	p.Send("\r\n" + DescribeRoom(room, p.Name))
}

// DescribeRoom renders a room the way the look command shows it. A snapshot
// is taken first so a concurrent editor save cannot tear the output.
func DescribeRoom(room *Room, viewer string) string {
	snap := room.Snapshot()
	var b strings.Builder
	b.WriteString(Ansi(Style(snap.Title, AnsiBold, AnsiCyan)))
	b.WriteString("\r\n")
	if snap.Description != "" {
		b.WriteString(WrapText(snap.Description, 78))
		b.WriteString("\r\n")
	}
	if exits := room.ExitDirections(); len(exits) > 0 {
		names := make([]string, len(exits))
		for i, dir := range exits {
			names[i] = string(dir)
		}
		b.WriteString(Style("Exits: ", AnsiDim) + strings.Join(names, ", ") + "\r\n")
	}
	if items := room.Items(); len(items) > 0 {
		for _, item := range items {
			b.WriteString(Style("  "+item.Name+" lies here.", AnsiYellow) + "\r\n")
		}
	}
	var others []string
	for _, name := range room.Members() {
		if name != viewer {
			others = append(others, HighlightName(name))
		}
	}
	if len(others) > 0 {
		b.WriteString("Also here: " + strings.Join(others, ", ") + "\r\n")
	}
	return Ansi(b.String())
}
