package game

import (
	"fmt"
	"sync"
)

const (
	// publishBuffer bounds the router's intake; a full intake drops the
	// message rather than blocking the publisher.
	publishBuffer = 256
	// ShoutRadius is how many exit hops a shout carries beyond its origin.
	ShoutRadius = 2
)

// Broadcast is one published message. Every connection receives every
// broadcast and evaluates recipiency for itself against its own player, so
// opt-in and opt-out changes take effect on the very next message with no
// central bookkeeping.
type Broadcast interface {
	// RenderFor decides whether the recipient should see the message and, if
	// so, renders it. Sender echo is handled at publish time, never here.
	RenderFor(w *World, recipient *Player) (string, bool)
}

// Say is room-local chat.
type Say struct {
	Room   RoomID
	Text   string
	Sender string
}

// Shout carries a fixed number of hops through the exit graph.
type Shout struct {
	Room   RoomID
	Text   string
	Sender string
}

// Tell is a private message to one player.
type Tell struct {
	Target string
	Text   string
	Sender string
}

// ForceSource identifies who issued a Force broadcast.
type ForceSource struct {
	Admin     string
	Anonymous bool
	System    bool
}

func (s ForceSource) display() string {
	if s.System || s.Anonymous {
		return "«system»"
	}
	return s.Admin
}

// Force is an administrative message to one player or to everyone.
type Force struct {
	Text   string
	Target string // empty targets everyone
	Source ForceSource
}

// RoomEvent is a third-person happening shown to everyone in a room except
// the actor (arrivals, departures, dropped items).
type RoomEvent struct {
	Room  RoomID
	Text  string
	Actor string
}

// ChannelMessage is chat on one of the named subscription groups.
type ChannelMessage struct {
	Channel Channel
	Text    string
	Sender  string
}

func (m Say) RenderFor(w *World, recipient *Player) (string, bool) {
	if recipient.Name == m.Sender || recipient.Location() != m.Room {
		return "", false
	}
	return fmt.Sprintf("\r\n%s says: %s", HighlightName(m.Sender), m.Text), true
}

func (m Shout) RenderFor(w *World, recipient *Player) (string, bool) {
	if recipient.Name == m.Sender {
		return "", false
	}
	reachable := w.RoomsWithin(m.Room, ShoutRadius)
	if _, ok := reachable[recipient.Location()]; !ok {
		return "", false
	}
	return fmt.Sprintf("\r\n%s shouts: %s", HighlightName(m.Sender), m.Text), true
}

func (m Tell) RenderFor(w *World, recipient *Player) (string, bool) {
	if recipient.Name != m.Target {
		return "", false
	}
	return fmt.Sprintf("\r\n%s tells you: %s", HighlightName(m.Sender), m.Text), true
}

func (m Force) RenderFor(w *World, recipient *Player) (string, bool) {
	if m.Target != "" {
		if recipient.Name != m.Target {
			return "", false
		}
	} else if !m.Source.Anonymous && !m.Source.System && recipient.Name == m.Source.Admin {
		return "", false
	}
	return fmt.Sprintf("\r\n%s compels you: %s", HighlightName(m.Source.display()), m.Text), true
}

func (m RoomEvent) RenderFor(w *World, recipient *Player) (string, bool) {
	if recipient.Name == m.Actor || recipient.Location() != m.Room {
		return "", false
	}
	return "\r\n" + m.Text, true
}

func (m ChannelMessage) RenderFor(w *World, recipient *Player) (string, bool) {
	if recipient.Name == m.Sender {
		return "", false
	}
	if !m.Channel.AllowsListen(recipient.Access) {
		return "", false
	}
	if !recipient.Subscribed(m.Channel) && !m.Channel.AlwaysOn() {
		return "", false
	}
	return fmt.Sprintf("\r\n%s %s: %s", Style(m.Channel.Prefix(), AnsiBold, AnsiGreen), HighlightName(m.Sender), m.Text), true
}

// Router fans every published broadcast out to all subscribed connections.
// One goroutine owns the fan-out; subscribers receive on buffered channels
// with drop-on-full semantics so a slow reader only loses its own messages.
type Router struct {
	mu      sync.Mutex
	publish chan Broadcast
	subs    map[uint64]chan Broadcast
	nextID  uint64
	done    chan struct{}
}

// NewRouter constructs a router; call Run to start delivery.
func NewRouter() *Router {
	return &Router{
		publish: make(chan Broadcast, publishBuffer),
		subs:    make(map[uint64]chan Broadcast),
		done:    make(chan struct{}),
	}
}

// Publish enqueues a broadcast without ever blocking the caller. When the
// intake is saturated the message is dropped and counted.
func (r *Router) Publish(b Broadcast) {
	select {
	case r.publish <- b:
		broadcastsPublished.Inc()
	default:
		broadcastsDropped.Inc()
	}
}

// Subscribe registers a connection. The returned channel is buffered; a
// saturated subscriber silently loses messages.
func (r *Router) Subscribe() (uint64, <-chan Broadcast) {
	ch := make(chan Broadcast, outputBuffer)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a connection's subscription.
func (r *Router) Unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// Run delivers published broadcasts until Close is called.
func (r *Router) Run() {
	for {
		select {
		case b := <-r.publish:
			r.mu.Lock()
			for _, sub := range r.subs {
				select {
				case sub <- b:
				default:
					broadcastsDropped.Inc()
				}
			}
			r.mu.Unlock()
		case <-r.done:
			return
		}
	}
}

// Close stops delivery.
func (r *Router) Close() {
	close(r.done)
}
