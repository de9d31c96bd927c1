package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	logoutFlushInterval  = time.Second
	settingsPollInterval = 100 * time.Millisecond
	lostAndFoundInterval = 15 * time.Minute
)

// Maintenance is the single background housekeeping goroutine. It owns every
// deferred persistence path: logout flushes, activity-driven autosaves, and
// the lost-and-found sweep. All disk writes in the server funnel through here
// or through the session's own login path, never through a goroutine holding
// a registry or room guard.
type Maintenance struct {
	world    *World
	store    *Store
	settings *Settings
	log      *zap.Logger
}

// NewMaintenance wires the maintenance loop to its collaborators.
func NewMaintenance(w *World, store *Store, settings *Settings) *Maintenance {
	return &Maintenance{
		world:    w,
		store:    store,
		settings: settings,
		log:      w.Logger().Named("maintenance"),
	}
}

// Run services the four maintenance timers until ctx is cancelled. The
// settings poll rebuilds the autosave ticker whenever the tunable interval
// changes, so an admin adjustment takes effect within one poll period.
func (m *Maintenance) Run(ctx context.Context) {
	logout := time.NewTicker(logoutFlushInterval)
	defer logout.Stop()
	poll := time.NewTicker(settingsPollInterval)
	defer poll.Stop()
	sweep := time.NewTicker(lostAndFoundInterval)
	defer sweep.Stop()

	interval := m.settings.AutosaveInterval()
	autosave := time.NewTicker(interval)
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			m.FlushLogouts()
			return
		case <-logout.C:
			m.FlushLogouts()
		case <-autosave.C:
			m.Autosave()
		case <-poll.C:
			if current := m.settings.AutosaveInterval(); current != interval {
				m.log.Info("autosave interval changed",
					zap.Duration("from", interval),
					zap.Duration("to", current))
				interval = current
				autosave.Reset(interval)
			}
		case <-sweep.C:
			m.SweepLostItems()
		}
	}
}

// FlushLogouts drains the logout queue, detaches each departing player from
// its last room, and persists the final record. Room guards are released
// before any disk write.
func (m *Maintenance) FlushLogouts() {
	for _, p := range m.world.DrainLogoutQueue() {
		if room, ok := m.world.Room(p.Location()); ok {
			room.RemoveMember(p.Name)
		}
		if err := m.store.SavePlayer(RecordFor(p)); err != nil {
			m.log.Error("logout save failed",
				zap.String("player", p.Name),
				zap.Error(err))
			continue
		}
		p.ResetActivity()
		m.log.Info("player saved on logout", zap.String("player", p.Name))
	}
}

// Autosave persists every connected player whose activity count has reached
// the threshold, then clears the counter.
func (m *Maintenance) Autosave() {
	threshold := m.settings.AutosaveThreshold()
	for _, p := range m.world.Players() {
		if p.ActivityCount() < threshold {
			continue
		}
		if err := m.store.SavePlayer(RecordFor(p)); err != nil {
			m.log.Error("autosave failed",
				zap.String("player", p.Name),
				zap.Error(err))
			continue
		}
		p.ResetActivity()
		autosaves.Inc()
	}
}

// SweepLostItems moves queued lost items into long-term holding.
func (m *Maintenance) SweepLostItems() {
	lost := m.world.DrainLostItems()
	if len(lost) == 0 {
		return
	}
	if err := m.store.StoreLostItems(lost); err != nil {
		m.log.Error("lost-and-found sweep failed", zap.Error(err))
		return
	}
	m.log.Info("lost items swept", zap.Int("count", len(lost)))
}

// RecordFor snapshots a player into its persisted shape. The credential hash
// is left empty; SavePlayer preserves the stored one.
func RecordFor(p *Player) PlayerRecord {
	subs := make(map[string]bool)
	for channel, on := range p.Subscriptions() {
		if on {
			subs[string(channel)] = true
		}
	}
	return PlayerRecord{
		Name:     p.Name,
		Access:   p.Access,
		Location: p.Location(),
		Channels: subs,
		Items:    p.Inventory(),
	}
}
