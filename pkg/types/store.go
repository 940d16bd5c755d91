package types

import (
	"errors"
	"time"
)

// SlotStore is the storage substrate holding fixed-size slots keyed by
// address. Implementations must make each call atomic.
type SlotStore interface {
	// Allocate reserves a zeroed slot of size bytes at addr and escrows its
	// rent deposit from payer. Returns ErrSlotAlreadyExists if addr is
	// occupied.
	Allocate(addr Address, size int, payer Pubkey) error

	// Read returns a copy of the slot bytes.
	// Returns ErrNotFound if no slot exists at addr.
	Read(addr Address) ([]byte, error)

	// Write replaces the slot bytes. len(data) must equal the allocated size.
	// Returns ErrNotFound if no slot exists at addr and ErrSizeMismatch if the
	// length differs.
	Write(addr Address, data []byte) error

	// Reclaim removes the slot entirely and credits its deposit to
	// beneficiary. Returns the refunded amount. Returns ErrNotFound if no slot
	// exists at addr. After Reclaim the address may be allocated again.
	Reclaim(addr Address, beneficiary Pubkey) (uint64, error)
}

// Substrate errors.
var (
	ErrSlotAlreadyExists = errors.New("slot already exists")
	ErrNotFound          = errors.New("slot not found")
	ErrSizeMismatch      = errors.New("data length does not match slot size")
	ErrInvalidData       = errors.New("invalid slot data")
	ErrStoreDetached     = errors.New("store is detached")
	ErrAlreadyAttached   = errors.New("store is already attached")
)

// Store is a SlotStore with an attach/detach lifecycle and a rent ledger.
type Store interface {
	SlotStore

	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach flushes pending writes and releases backend resources.
	// Idempotent. After Detach, slot operations return ErrStoreDetached.
	Detach() error

	// Balance returns refunds minus escrows recorded for identity.
	Balance(identity Pubkey) (int64, error)

	// Ledger returns the rent ledger entries for identity, oldest first.
	Ledger(identity Pubkey) ([]LedgerEntry, error)
}

// Ledger entry kinds.
const (
	LedgerEscrow = "escrow"
	LedgerRefund = "refund"
)

// LedgerEntry records a rent deposit moving into or out of a slot.
type LedgerEntry struct {
	EntryID   string    `json:"entry_id"` // UUID v7.
	Identity  Pubkey    `json:"identity"`
	Address   Address   `json:"address"`
	Kind      string    `json:"kind"`
	Amount    uint64    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
