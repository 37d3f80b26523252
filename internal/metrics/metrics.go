// Package metrics exposes Prometheus collectors for journal header activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recovery outcomes recorded in the result label of RecoveriesTotal.
const (
	ResultOK         = "ok"
	ResultUnverified = "unverified"
	ResultBadHeader  = "bad_header"
)

// Journal groups the collectors updated by a journal header.
type Journal struct {
	CommitsTotal           prometheus.Counter
	RecoveriesTotal        *prometheus.CounterVec
	SlotSwitchesTotal      prometheus.Counter
	CommittedTransactionID prometheus.Gauge
}

// New creates the journal collectors and registers them with reg. A nil
// registerer leaves the collectors unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) (*Journal, error) {
	m := &Journal{
		CommitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "journal",
			Name:      "commits_total",
			Help:      "Number of transactions published into a header state slot.",
		}),
		RecoveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "journal",
			Name:      "recoveries_total",
			Help:      "Number of header recoveries, partitioned by result.",
		}, []string{"result"}),
		SlotSwitchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "journal",
			Name:      "slot_switches_total",
			Help:      "Number of times the active state slot was switched.",
		}),
		CommittedTransactionID: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "journal",
			Name:      "committed_transaction_id",
			Help:      "Last committed or recovered transaction id.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.CommitsTotal, m.RecoveriesTotal, m.SlotSwitchesTotal, m.CommittedTransactionID,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveCommit records a published transaction.
func (m *Journal) ObserveCommit(txID int64) {
	if m == nil {
		return
	}
	m.CommitsTotal.Inc()
	m.CommittedTransactionID.Set(float64(txID))
}

// ObserveRecovery records a recovery attempt. txID is ignored unless result
// is ResultOK.
func (m *Journal) ObserveRecovery(result string, txID int64) {
	if m == nil {
		return
	}
	m.RecoveriesTotal.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.CommittedTransactionID.Set(float64(txID))
	}
}

// ObserveSlotSwitch records a switch of the active state slot.
func (m *Journal) ObserveSlotSwitch() {
	if m == nil {
		return
	}
	m.SlotSwitchesTotal.Inc()
}
