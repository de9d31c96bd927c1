package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TickInterval is the period of the main game loop.
const TickInterval = 250 * time.Millisecond

// GameLoop drives world time. One goroutine owns the uptime counter; nothing
// else writes it.
type GameLoop struct {
	world *World
	log   *zap.Logger

	uptime uint64
}

// NewGameLoop wires a loop to a world.
func NewGameLoop(w *World) *GameLoop {
	return &GameLoop{world: w, log: w.Logger().Named("gameloop")}
}

// Uptime returns the number of ticks elapsed since Run started. Only valid
// from within tick processing; external readers race with the loop goroutine.
func (g *GameLoop) Uptime() uint64 { return g.uptime }

// Run advances the world once per TickInterval until ctx is cancelled. When
// tick processing overruns the interval the loop logs the lag, counts it, and
// resyncs its deadline to the present instead of bursting to catch up, so
// uptime advances by exactly one per processed tick.
func (g *GameLoop) Run(ctx context.Context) {
	next := time.Now().Add(TickInterval)
	timer := time.NewTimer(TickInterval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-timer.C:
			g.uptime++
			g.world.Tick(g.uptime)
			next = next.Add(TickInterval)
			wait := next.Sub(now)
			if wait <= 0 {
				tickOverruns.Inc()
				g.log.Warn("tick overrun",
					zap.Uint64("uptime", g.uptime),
					zap.Duration("behind", -wait))
				next = time.Now().Add(TickInterval)
				wait = TickInterval
			}
			timer.Reset(wait)
		}
	}
}
