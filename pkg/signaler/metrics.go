package signaler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "signaler"

var (
	metricHostConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "host_connected",
		Help:      "Whether a host channel is currently registered (0 or 1).",
	})
	metricClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "clients_connected",
		Help:      "Number of currently registered clients.",
	})
	metricRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_relayed_total",
		Help:      "Signaling frames forwarded between the host and clients.",
	}, []string{"from"})
	metricRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_rejected_total",
		Help:      "Frames answered with a protocol error, by error code.",
	}, []string{"code"})
	metricDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "frames_dropped_total",
		Help:      "Malformed or unclassifiable frames that were silently dropped.",
	})
	metricKicked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "peers_kicked_total",
		Help:      "Peers force-closed by a conflicting registration, by error code.",
	}, []string{"code"})
)
