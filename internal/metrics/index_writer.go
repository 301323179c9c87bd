package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexBlocksConnectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "blocks_connected_total",
		Help:      "Count of blocks committed to the ordinal index.",
	}, []string{"network"})

	indexBlocksDisconnectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "blocks_disconnected_total",
		Help:      "Count of blocks unwound from the ordinal index.",
	}, []string{"network"})

	indexConnectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "connect_duration_seconds",
		Help:      "Duration of applying and committing a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network"})

	indexBlockTxs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "block_txs",
		Help:      "Number of transactions per connected block.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1..16384
	}, []string{"network"})

	indexOutputsPrunedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "outputs_pruned_total",
		Help:      "Count of spent output entries removed past the prune horizon.",
	}, []string{"network"})

	indexHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "satindex",
		Subsystem: "index",
		Name:      "height",
		Help:      "Height of the indexed chain tip.",
	}, []string{"network"})
)

// IndexWriter tracks per-block accounting for the index engine.
type IndexWriter struct {
	network string
}

// NewIndexWriter constructs an IndexWriter with defaults.
func NewIndexWriter(network string) *IndexWriter {
	if network == "" {
		network = "unknown"
	}
	return &IndexWriter{network: network}
}

// BlockConnected records a committed block.
func (m IndexWriter) BlockConnected(height int32, txCount int, elapsed time.Duration) {
	indexBlocksConnectedTotal.WithLabelValues(m.network).Inc()
	indexConnectDuration.WithLabelValues(m.network).Observe(elapsed.Seconds())
	indexBlockTxs.WithLabelValues(m.network).Observe(float64(txCount))
	indexHeight.WithLabelValues(m.network).Set(float64(height))
}

// BlockDisconnected records an unwound block.
func (m IndexWriter) BlockDisconnected(height int32) {
	indexBlocksDisconnectedTotal.WithLabelValues(m.network).Inc()
	indexHeight.WithLabelValues(m.network).Set(float64(height - 1))
}

// OutputsPruned records entries deleted past the prune horizon.
func (m IndexWriter) OutputsPruned(count int) {
	indexOutputsPrunedTotal.WithLabelValues(m.network).Add(float64(count))
}
