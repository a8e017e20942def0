package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mavstuff/snake/internal/game"
)

// metrics holds the server's own Prometheus registry. A per-server
// registry keeps repeated construction (tests, embedding) free of
// duplicate-registration panics.
type metrics struct {
	registry    *prometheus.Registry
	connections prometheus.Counter
	ticks       prometheus.Counter
}

func newMetrics(world *game.World) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_connections_total",
			Help: "Game connections that completed the handshake.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Simulation ticks actually advanced.",
		}),
	}
	m.registry.MustRegister(
		m.connections,
		m.ticks,
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "snake_humans",
			Help: "Connected human players.",
		}, func() float64 { return float64(world.Stats().CurrentHumans) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "snake_bots",
			Help: "Bot players on the field.",
		}, func() float64 { return float64(world.Stats().BotCount) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "snake_food_items",
			Help: "Food items on the field.",
		}, func() float64 { return float64(world.Stats().FoodCount) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "snake_deaths_total",
			Help: "Snakes that hit a wall, themselves or another player.",
		}, func() float64 { return float64(world.Stats().TotalDeaths) }),
	)
	return m
}
