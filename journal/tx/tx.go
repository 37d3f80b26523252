// Package tx drives the journal header through crash-safe transactions.
//
// Transaction protocol:
//  1. Begin() - switch the header to the unpublished slot
//  2. [Apply modifications - tracked by the DirtyTracker]
//  3. Commit() - flush data ranges, publish the slot's transaction id,
//     flush the header region and metadata
//
// Crash recovery:
// A crash before the header flush in Commit leaves the previously published
// slot with the highest verified id, so Header.RecoverTransaction selects
// the last completed transaction.
package tx

import (
	"context"
	"fmt"

	"github.com/joshuapare/journalkit/journal"
	"github.com/joshuapare/journalkit/journal/dirty"
)

// Manager coordinates header slot switches with ordered flushes.
//
// The manager is NOT thread-safe. Only one goroutine should use it at a time.
type Manager struct {
	h    *journal.Header
	dt   dirty.FlushableTracker
	mode dirty.FlushMode
	inTx bool
}

// NewManager creates a transaction manager for an attached, recovered or
// freshly initialized header.
func NewManager(h *journal.Header, dt dirty.FlushableTracker, mode dirty.FlushMode) *Manager {
	return &Manager{h: h, dt: dt, mode: mode}
}

// Begin starts a transaction by switching the header to its other slot,
// seeded with the bookkeeping of the published one. Modifications made
// until Commit are invisible to recovery.
//
// If Begin is called while already in a transaction, it's a no-op.
func (m *Manager) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.inTx {
		return nil
	}
	if err := m.h.BeginTransaction(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	m.inTx = true
	return nil
}

// Commit publishes the transaction using the ordered flush protocol:
//
//  1. Flush all dirty data ranges
//  2. Store the current transaction id into the active slot
//  3. Flush the header region and, per the flush mode, file metadata
//
// If Commit is called without an active transaction, it's a no-op.
//
// A cancelled ctx before step 2 leaves the transaction open and unpublished.
// A failure in step 3 leaves it published in memory but possibly not on
// disk; the transaction stays open so Commit can be retried.
func (m *Manager) Commit(ctx context.Context) error {
	if !m.inTx {
		return nil
	}

	if err := m.dt.FlushDataOnly(ctx); err != nil {
		return fmt.Errorf("flush data pages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.h.CommitCurrentTransaction()

	if err := m.dt.FlushHeaderAndMeta(ctx, m.mode); err != nil {
		return fmt.Errorf("flush header: %w", err)
	}
	m.inTx = false
	return nil
}

// Rollback abandons the current transaction. The header switches back to
// the published slot; whatever was written to the abandoned slot stays in
// the image but never becomes visible to recovery. Data pages already
// modified are not restored.
//
// If Rollback is called without an active transaction, it's a no-op.
func (m *Manager) Rollback() {
	if !m.inTx {
		return
	}
	m.h.AbortTransaction()
	m.inTx = false
}

// InTransaction returns whether a transaction is currently active.
func (m *Manager) InTransaction() bool {
	return m.inTx
}

// CurrentTransactionID returns the id the next Commit publishes.
func (m *Manager) CurrentTransactionID() int64 {
	return m.h.CurrentTransactionID()
}
