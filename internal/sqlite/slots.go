// This file implements the slot operations of types.SlotStore.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tweetbox/pkg/layout"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// Allocate reserves a zeroed slot of size bytes at addr and escrows the rent
// deposit for that size from payer.
// Returns ErrSlotAlreadyExists if addr is occupied.
func (b *Backend) Allocate(addr types.Address, size int, payer types.Pubkey) error {
	if size <= 0 {
		return fmt.Errorf("%w: slot size %d", types.ErrInvalidData, size)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := slotExists(tx, addr)
	if err != nil {
		return err
	}
	if exists {
		return types.ErrSlotAlreadyExists
	}

	now := b.timestamp()
	deposit := layout.MinimumBalance(size)

	if _, err := tx.Exec(
		"INSERT INTO slots (address, payer, size, deposit, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		addr.String(), payer.String(), size, deposit, make([]byte, size), now, now,
	); err != nil {
		return fmt.Errorf("inserting slot: %w", err)
	}
	if err := insertLedgerEntry(tx, payer, addr, types.LedgerEscrow, deposit, now); err != nil {
		return err
	}

	if err := b.commit(tx, "allocate", slotsJSONL, ledgerJSONL); err != nil {
		return err
	}

	b.logger.Debug("slot allocated",
		zap.Stringer("address", addr),
		zap.Stringer("payer", payer),
		zap.Int("size", size),
		zap.Uint64("deposit", deposit))
	return nil
}

// Read returns a copy of the slot bytes at addr.
// Returns ErrNotFound if no slot exists at addr.
func (b *Backend) Read(addr types.Address) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var data []byte
	err := b.db.QueryRow("SELECT data FROM slots WHERE address = ?", addr.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading slot %s: %w", addr, err)
	}
	return data, nil
}

// Write replaces the bytes of the slot at addr. The slot keeps its size.
// Returns ErrNotFound if no slot exists and ErrSizeMismatch if len(data)
// differs from the allocated size.
func (b *Backend) Write(addr types.Address, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var size int
	err = tx.QueryRow("SELECT size FROM slots WHERE address = ?", addr.String()).Scan(&size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking slot %s: %w", addr, err)
	}
	if len(data) != size {
		return fmt.Errorf("%w: got %d bytes, slot holds %d", types.ErrSizeMismatch, len(data), size)
	}

	if _, err := tx.Exec(
		"UPDATE slots SET data = ?, updated_at = ? WHERE address = ?",
		data, b.timestamp(), addr.String(),
	); err != nil {
		return fmt.Errorf("writing slot %s: %w", addr, err)
	}

	return b.commit(tx, "write", slotsJSONL)
}

// Reclaim deletes the slot at addr and refunds its deposit to beneficiary.
// Returns the refunded amount, or ErrNotFound if no slot exists at addr.
func (b *Backend) Reclaim(addr types.Address, beneficiary types.Pubkey) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var deposit uint64
	err = tx.QueryRow("SELECT deposit FROM slots WHERE address = ?", addr.String()).Scan(&deposit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, types.ErrNotFound
		}
		return 0, fmt.Errorf("checking slot %s: %w", addr, err)
	}

	if _, err := tx.Exec("DELETE FROM slots WHERE address = ?", addr.String()); err != nil {
		return 0, fmt.Errorf("deleting slot %s: %w", addr, err)
	}
	if err := insertLedgerEntry(tx, beneficiary, addr, types.LedgerRefund, deposit, b.timestamp()); err != nil {
		return 0, err
	}

	if err := b.commit(tx, "reclaim", slotsJSONL, ledgerJSONL); err != nil {
		return 0, err
	}

	b.logger.Debug("slot reclaimed",
		zap.Stringer("address", addr),
		zap.Stringer("beneficiary", beneficiary),
		zap.Uint64("refund", deposit))

	return deposit, nil
}

func slotExists(tx *sql.Tx, addr types.Address) (bool, error) {
	var one int
	err := tx.QueryRow("SELECT 1 FROM slots WHERE address = ?", addr.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking slot existence: %w", err)
	}
	return true, nil
}
