// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// loadAllJSONL reads slots.jsonl and ledger.jsonl from DataDir and inserts
// their records into SQLite. Loading is transactional: all succeed or the
// database remains empty. Malformed lines and records that violate
// constraints are skipped. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := loadSlots(tx, filepath.Join(dataDir, slotsJSONL)); err != nil {
		return fmt.Errorf("loading %s: %w", slotsJSONL, err)
	}
	if err := loadLedger(tx, filepath.Join(dataDir, ledgerJSONL)); err != nil {
		return fmt.Errorf("loading %s: %w", ledgerJSONL, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func loadSlots(tx *sql.Tx, path string) error {
	records, err := readJSONL(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(
		"INSERT INTO slots (address, payer, size, deposit, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing slot insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range records {
		var rec slotRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		// A slot image must match its recorded size.
		if rec.Address == "" || len(rec.Data) != rec.Size {
			continue
		}
		if _, err := stmt.Exec(rec.Address, rec.Payer, rec.Size, rec.Deposit, rec.Data, rec.CreatedAt, rec.UpdatedAt); err != nil {
			continue
		}
	}
	return nil
}

func loadLedger(tx *sql.Tx, path string) error {
	records, err := readJSONL(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(
		"INSERT INTO ledger (entry_id, identity, address, kind, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing ledger insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range records {
		var rec ledgerRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.EntryID == "" {
			continue
		}
		if _, err := stmt.Exec(rec.EntryID, rec.Identity, rec.Address, rec.Kind, rec.Amount, rec.CreatedAt); err != nil {
			continue
		}
	}
	return nil
}
