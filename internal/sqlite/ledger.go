// This file implements the rent ledger: one row per deposit escrowed at
// allocation or refunded at reclaim.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

func insertLedgerEntry(tx *sql.Tx, identity types.Pubkey, addr types.Address, kind string, amount uint64, at string) error {
	_, err := tx.Exec(
		"INSERT INTO ledger (entry_id, identity, address, kind, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		generateUUID(), identity.String(), addr.String(), kind, amount, at,
	)
	if err != nil {
		return fmt.Errorf("recording %s ledger entry: %w", kind, err)
	}
	return nil
}

// Balance returns the total refunded to identity minus the total escrowed
// from it. A negative balance means identity has deposits locked in slots.
func (b *Backend) Balance(identity types.Pubkey) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	var balance int64
	err := b.db.QueryRow(
		`SELECT COALESCE(SUM(CASE kind WHEN ? THEN amount ELSE -amount END), 0)
         FROM ledger WHERE identity = ?`,
		types.LedgerRefund, identity.String(),
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("summing ledger for %s: %w", identity, err)
	}
	return balance, nil
}

// Ledger returns the ledger entries for identity, oldest first. Returns an
// empty slice, not nil, when there are none.
func (b *Backend) Ledger(identity types.Pubkey) ([]types.LedgerEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(
		"SELECT entry_id, address, kind, amount, created_at FROM ledger WHERE identity = ? ORDER BY entry_id ASC",
		identity.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	entries := []types.LedgerEntry{}
	for rows.Next() {
		var (
			e               types.LedgerEntry
			addr, createdAt string
		)
		if err := rows.Scan(&e.EntryID, &addr, &e.Kind, &e.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.Identity = identity
		if e.Address, err = types.ParsePubkey(addr); err != nil {
			return nil, fmt.Errorf("parsing ledger address: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return entries, nil
}
