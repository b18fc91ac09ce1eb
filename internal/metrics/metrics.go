package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Connections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_active_connections",
		Help: "Active websocket connections",
	})
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_sent_total",
		Help: "Messages persisted via the delivery path",
	})
	MessagesPushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_pushed_total",
		Help: "Messages pushed to an online receiver",
	})
	PushDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_push_dropped_total",
		Help: "Pushes dropped because the receiver connection was stale",
	})
)

func Init() {
	prometheus.MustRegister(Connections, MessagesSent, MessagesPushed, PushDropped)
}

// Handler exposes the Prometheus scrape endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
