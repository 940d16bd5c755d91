// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONL file names in DataDir.
const (
	slotsJSONL  = "slots.jsonl"
	ledgerJSONL = "ledger.jsonl"
)

// jsonlFiles lists every JSONL file the backend owns.
var jsonlFiles = []string{slotsJSONL, ledgerJSONL}

// slotRecord is the JSONL form of a slot row. Data is base64 encoded by
// encoding/json.
type slotRecord struct {
	Address   string `json:"address"`
	Payer     string `json:"payer"`
	Size      int    `json:"size"`
	Deposit   uint64 `json:"deposit"`
	Data      []byte `json:"data"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ledgerRecord is the JSONL form of a ledger row.
type ledgerRecord struct {
	EntryID   string `json:"entry_id"`
	Identity  string `json:"identity"`
	Address   string `json:"address"`
	Kind      string `json:"kind"`
	Amount    uint64 `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// initJSONLFiles creates empty JSONL files that do not exist yet.
func initJSONLFiles(dataDir string) error {
	for _, name := range jsonlFiles {
		path := filepath.Join(dataDir, name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	// A slot line carries ~1.9KB of base64; leave generous headroom.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// persistJSONL rewrites the named JSONL file from the table behind it.
func persistJSONL(q queryer, dataDir, name string) error {
	switch name {
	case slotsJSONL:
		return persistSlotsJSONL(q, dataDir)
	case ledgerJSONL:
		return persistLedgerJSONL(q, dataDir)
	}
	return fmt.Errorf("unknown JSONL file %s", name)
}

// persistSlotsJSONL rewrites slots.jsonl from the slots table.
func persistSlotsJSONL(q queryer, dataDir string) error {
	rows, err := q.Query(
		"SELECT address, payer, size, deposit, data, created_at, updated_at FROM slots ORDER BY created_at ASC, address ASC",
	)
	if err != nil {
		return fmt.Errorf("querying slots for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec slotRecord
		if err := rows.Scan(&rec.Address, &rec.Payer, &rec.Size, &rec.Deposit, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return fmt.Errorf("scanning slot for JSONL: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling slot for JSONL: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating slots for JSONL: %w", err)
	}

	return writeJSONL(filepath.Join(dataDir, slotsJSONL), records)
}

// persistLedgerJSONL rewrites ledger.jsonl from the ledger table.
func persistLedgerJSONL(q queryer, dataDir string) error {
	rows, err := q.Query(
		"SELECT entry_id, identity, address, kind, amount, created_at FROM ledger ORDER BY entry_id ASC",
	)
	if err != nil {
		return fmt.Errorf("querying ledger for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec ledgerRecord
		if err := rows.Scan(&rec.EntryID, &rec.Identity, &rec.Address, &rec.Kind, &rec.Amount, &rec.CreatedAt); err != nil {
			return fmt.Errorf("scanning ledger entry for JSONL: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling ledger entry for JSONL: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating ledger for JSONL: %w", err)
	}

	return writeJSONL(filepath.Join(dataDir, ledgerJSONL), records)
}
