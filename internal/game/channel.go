package game

import "strings"

// Channel identifies one of the fixed broadcast subscription groups.
type Channel string

const (
	ChannelQA      Channel = "qa"
	ChannelNewbie  Channel = "newbie"
	ChannelOOC     Channel = "ooc"
	ChannelBuilder Channel = "builder"
	ChannelAdmin   Channel = "admin"
	ChannelEvent   Channel = "event"
)

var allChannels = []Channel{ChannelQA, ChannelNewbie, ChannelOOC, ChannelBuilder, ChannelAdmin, ChannelEvent}

var channelLookup = map[string]Channel{
	"qa":      ChannelQA,
	"q&a":     ChannelQA,
	"newbie":  ChannelNewbie,
	"ooc":     ChannelOOC,
	"builder": ChannelBuilder,
	"admin":   ChannelAdmin,
	"event":   ChannelEvent,
}

var channelPrefixes = map[Channel]string{
	ChannelQA:      "[Q&A]",
	ChannelNewbie:  "[Newbie]",
	ChannelOOC:     "[OOC]",
	ChannelBuilder: "[Builder]",
	ChannelAdmin:   "[Admin]",
	ChannelEvent:   "[Event]",
}

// AllChannels returns the fixed set of channels.
func AllChannels() []Channel {
	out := make([]Channel, len(allChannels))
	copy(out, allChannels)
	return out
}

// ChannelFromString resolves a textual channel name into the canonical identifier.
func ChannelFromString(name string) (Channel, bool) {
	channel, ok := channelLookup[strings.ToLower(strings.TrimSpace(name))]
	return channel, ok
}

// Prefix renders the channel tag shown ahead of every channel message.
func (c Channel) Prefix() string {
	if prefix, ok := channelPrefixes[c]; ok {
		return prefix
	}
	return "[" + strings.ToUpper(string(c)) + "]"
}

// AlwaysOn reports whether the channel ignores opt-out requests. The admin
// channel is mandatory for everyone allowed to hear it.
func (c Channel) AlwaysOn() bool {
	return c == ChannelAdmin
}

// AllowsListen reports whether the provided access tier may subscribe to the
// channel at all.
func (c Channel) AllowsListen(access Access) bool {
	switch c {
	case ChannelBuilder:
		return access.IsBuilder()
	case ChannelAdmin:
		return access.IsAdmin()
	case ChannelEvent:
		return access.IsEventHost() || access.Level >= AccessPlayer
	default:
		return true
	}
}

// DefaultChannelSubscriptions is the opt-in set granted to new players.
func DefaultChannelSubscriptions() map[Channel]bool {
	return map[Channel]bool{
		ChannelQA:     true,
		ChannelNewbie: true,
		ChannelOOC:    true,
	}
}

func cloneChannelSubscriptions(subs map[Channel]bool) map[Channel]bool {
	if subs == nil {
		return nil
	}
	clone := make(map[Channel]bool, len(subs))
	for channel, on := range subs {
		clone[channel] = on
	}
	return clone
}
