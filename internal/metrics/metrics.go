package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// API
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_http_requests_total", Help: "Count of HTTP requests."},
		[]string{"handler", "method", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms..~10s
		},
		[]string{"handler", "method"},
	)

	// Transport
	TransportSendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_transport_send_total", Help: "Provider send outcomes."},
		[]string{"transport", "outcome"}, // ok | error
	)
	TransportSendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_transport_send_duration_seconds",
			Help:    "Provider send latency.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms..~40s
		},
		[]string{"transport"},
	)
	TransportFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "outreach_transport_fallback_total", Help: "Mailbox failures that fell back to the transactional API."},
	)

	// Orchestrator
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_messages_sent_total", Help: "Outbound messages recorded as sent."},
		[]string{"kind"}, // new | reply | draft | follow_up
	)
	UnrecordedSends = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "outreach_unrecorded_sends_total", Help: "Sends accepted by a provider but not persisted."},
	)

	// Follow-up sweep
	ClaimTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_followup_claim_total", Help: "Claim attempts."},
		[]string{"result"}, // ok | empty | error | lost
	)
	ClaimBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outreach_followup_claim_batch_size",
			Help:    "Number of follow-ups returned per claim.",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0,10,...,100
		},
	)
	FollowUpFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "outreach_followup_failures_total", Help: "Follow-up send attempts that failed."},
	)

	// Import
	RepliesImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_replies_imported_total", Help: "Inbound messages persisted."},
		[]string{"source"}, // mailbox | webhook
	)
	RepliesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outreach_replies_skipped_total", Help: "Inbound messages skipped."},
		[]string{"reason"}, // duplicate | own | unmatched
	)
)

var registerOnce sync.Once

// MustRegister registers default and application collectors. Safe to call
// more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
			HTTPRequests, HTTPDuration,
			TransportSendTotal, TransportSendDuration, TransportFallbackTotal,
			MessagesSent, UnrecordedSends,
			ClaimTotal, ClaimBatchSize, FollowUpFailures,
			RepliesImported, RepliesSkipped,
		)
	})
}

// DBPoolStats exports database/sql pool statistics.
type DBPoolStats struct {
	db *sql.DB

	open    prometheus.Gauge
	inUse   prometheus.Gauge
	idle    prometheus.Gauge
	waitCnt prometheus.Gauge
}

func NewDBPoolStats(db *sql.DB, reg prometheus.Registerer) *DBPoolStats {
	m := &DBPoolStats{
		db: db,
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outreach_db_pool_open_conns", Help: "Open connections in pool.",
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outreach_db_pool_in_use_conns", Help: "Connections currently in use.",
		}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outreach_db_pool_idle_conns", Help: "Idle connections in pool.",
		}),
		waitCnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outreach_db_pool_wait_count", Help: "Total connections waited for.",
		}),
	}
	reg.MustRegister(m.open, m.inUse, m.idle, m.waitCnt)

	return m
}

// Collect copies the current pool stats into the gauges.
func (m *DBPoolStats) Collect() {
	s := m.db.Stats()
	m.open.Set(float64(s.OpenConnections))
	m.inUse.Set(float64(s.InUse))
	m.idle.Set(float64(s.Idle))
	m.waitCnt.Set(float64(s.WaitCount))
}

func (m *DBPoolStats) Start(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	for {
		select {
		case <-stop:
			t.Stop()
			return
		case <-t.C:
			m.Collect()
		}
	}
}
