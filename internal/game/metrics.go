package game

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	connectedPlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "emberrom_players_connected",
		Help: "Number of currently attached players.",
	})
	translocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_translocations_total",
		Help: "Completed room-to-room translocations.",
	})
	broadcastsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_broadcasts_published_total",
		Help: "Broadcasts accepted by the router.",
	})
	broadcastsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_broadcasts_dropped_total",
		Help: "Broadcasts dropped at intake or by saturated subscribers.",
	})
	droppedOutputs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_outputs_dropped_total",
		Help: "Output lines dropped because a connection buffer was full.",
	})
	tickOverruns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_tick_overruns_total",
		Help: "Game loop ticks that arrived late and forced a resync.",
	})
	autosaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_autosaves_total",
		Help: "Players persisted by the autosave cycle.",
	})
	commandsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emberrom_commands_total",
		Help: "Commands dispatched across all sessions.",
	})
)

// CountCommand records one dispatched command.
func CountCommand() { commandsDispatched.Inc() }

// ServeMetrics exposes the Prometheus registry over HTTP. It blocks, so run
// it on its own goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
