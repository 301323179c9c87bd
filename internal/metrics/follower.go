package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerFetchTipTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "fetch_tip_total",
		Help:      "Count of attempts to fetch the node's chain tip.",
	}, []string{"network", "status"})

	followerFetchTipDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "fetch_tip_duration_seconds",
		Help:      "Duration of fetching the node's chain tip.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerConnectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "connect_total",
		Help:      "Count of blocks connected to the index.",
	}, []string{"network", "status"})

	followerConnectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "connect_duration_seconds",
		Help:      "Duration of connecting a block to the index.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerDisconnectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "disconnect_total",
		Help:      "Count of blocks disconnected during fork rewinds.",
	}, []string{"network", "status"})

	followerDisconnectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "disconnect_duration_seconds",
		Help:      "Duration of disconnecting a block from the index.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	followerHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "satindex",
		Subsystem: "follower",
		Name:      "height",
		Help:      "Height of the last block applied by the follower.",
	}, []string{"network"})
)

// Follower tracks metrics for the chain-follower sync loop.
type Follower struct {
	network string
}

// NewFollower constructs a Follower with defaults.
func NewFollower(network string) *Follower {
	if network == "" {
		network = "unknown"
	}
	return &Follower{network: network}
}

// ObserveFetchTip records a tip fetch outcome and duration.
func (m Follower) ObserveFetchTip(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	followerFetchTipTotal.WithLabelValues(m.network, status).Inc()
	followerFetchTipDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
}

// ObserveConnect records connecting a block at the given height.
func (m Follower) ObserveConnect(err error, height int32, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	followerConnectTotal.WithLabelValues(m.network, status).Inc()
	followerConnectDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		followerHeight.WithLabelValues(m.network).Set(float64(height))
	}
}

// ObserveDisconnect records disconnecting a block at the given height.
func (m Follower) ObserveDisconnect(err error, height int32, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	followerDisconnectTotal.WithLabelValues(m.network, status).Inc()
	followerDisconnectDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		followerHeight.WithLabelValues(m.network).Set(float64(height - 1))
	}
}
