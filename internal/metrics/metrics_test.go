package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveCommit(1001)
	m.ObserveCommit(1002)
	m.ObserveRecovery(ResultOK, 1002)
	m.ObserveRecovery(ResultUnverified, 0)
	m.ObserveSlotSwitch()

	require.Equal(t, 2.0, testutil.ToFloat64(m.CommitsTotal))
	require.Equal(t, 1002.0, testutil.ToFloat64(m.CommittedTransactionID))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RecoveriesTotal.WithLabelValues(ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RecoveriesTotal.WithLabelValues(ResultUnverified)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SlotSwitchesTotal))

	n, err := testutil.GatherAndCount(reg, "journal_commits_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
}

func TestNilJournalIsNoop(t *testing.T) {
	var m *Journal
	m.ObserveCommit(1)
	m.ObserveRecovery(ResultOK, 1)
	m.ObserveSlotSwitch()
}
