// This file holds the schema DDL.
package sqlite

// Schema DDL for all tables.
const (
	createSlots = `CREATE TABLE slots (
    address TEXT PRIMARY KEY,
    payer TEXT NOT NULL,
    size INTEGER NOT NULL,
    deposit INTEGER NOT NULL,
    data BLOB NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLedger = `CREATE TABLE ledger (
    entry_id TEXT PRIMARY KEY,
    identity TEXT NOT NULL,
    address TEXT NOT NULL,
    kind TEXT NOT NULL,
    amount INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxSlotsPayer     = `CREATE INDEX idx_slots_payer ON slots(payer);`
	idxLedgerIdentity = `CREATE INDEX idx_ledger_identity ON ledger(identity);`
	idxLedgerAddress  = `CREATE INDEX idx_ledger_address ON ledger(address);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createSlots,
	createLedger,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSlotsPayer,
	idxLedgerIdentity,
	idxLedgerAddress,
}
