package ircd

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedClients = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ircd_connected_clients",
		Help: "Number of currently connected clients, by protocol",
	}, []string{"protocol"})

	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ircd_commands_total",
		Help: "Total commands dispatched by name",
	}, []string{"command"})

	EventProcessingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ircd_event_processing_seconds",
		Help:    "Time to process each event type in the connection manager loop",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})

	IdleEvictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ircd_idle_evictions_total",
		Help: "Connections removed by the idle-eviction cleanup tick",
	})

	FrameDecodeErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ircd_frame_decode_errors_total",
		Help: "WebSocket frames that failed to decode (unmasked, truncated, bad length, invalid UTF-8)",
	})

	HandshakeFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ircd_handshake_failures_total",
		Help: "WebSocket opening handshakes that failed validation or response send",
	})
)

func init() {
	prometheus.MustRegister(
		ConnectedClients,
		MessagesTotal,
		EventProcessingDuration,
		IdleEvictionsTotal,
		FrameDecodeErrorsTotal,
		HandshakeFailuresTotal,
	)
}
