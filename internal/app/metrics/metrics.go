package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_ticker_fetches_total",
		Help: "Total number of market snapshot fetches by result",
	}, []string{"result"})

	FetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_ticker_fetch_latency_seconds",
		Help:    "Latency of market snapshot fetches",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_ticker_snapshots_applied_total",
		Help: "Total number of snapshots applied to the ticker state",
	})

	SnapshotsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_ticker_snapshots_discarded_total",
		Help: "Total number of snapshots dropped before reaching the ticker state",
	}, []string{"reason"})

	SnapshotEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "price_ticker_snapshot_entries",
		Help: "Number of entries in the currently displayed snapshot",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_ticker_cache_lookups_total",
		Help: "Shared snapshot cache lookups by result",
	}, []string{"result"})

	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_ticker_errors_total",
		Help: "Total number of errors",
	}, []string{"type"})

	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "price_ticker_ws_clients",
		Help: "Number of connected websocket clients",
	})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_ticker_broadcasts_total",
		Help: "Total number of ticker updates pushed to websocket clients",
	})
)
