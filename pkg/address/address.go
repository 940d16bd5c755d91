// Package address derives slot addresses from seeds.
//
// An address is sha256(seeds... || bump || programID || "ProgramDerivedAddress").
// A candidate is accepted only if it is not a valid ed25519 public key, so no
// private key can ever sign for it. FindAddress walks the bump down from 255
// and returns the first acceptable candidate; CreateAddress recomputes an
// address from a known bump without searching.
package address

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// Seed bounds. The bump occupies one of the MaxSeeds positions.
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

// marker is appended after the program ID so derived addresses cannot be
// confused with other sha256 outputs.
const marker = "ProgramDerivedAddress"

// Derivation errors.
var (
	ErrInvalidSeeds               = errors.New("seeds exceed length bounds")
	ErrInvalidAddress             = errors.New("derived address is a valid public key")
	ErrAddressDerivationExhausted = errors.New("unable to find a viable address bump")
)

// IdentityPredicate reports whether a 32-byte value could be a
// directly-controllable identity, that is, a key someone could hold the
// private half of.
type IdentityPredicate func(types.Pubkey) bool

// Deriver computes addresses for one program. It holds no mutable state and
// is safe for concurrent use.
type Deriver struct {
	programID  types.Pubkey
	isIdentity IdentityPredicate
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithIdentityPredicate replaces the default on-curve check.
func WithIdentityPredicate(p IdentityPredicate) Option {
	return func(d *Deriver) {
		d.isIdentity = p
	}
}

// NewDeriver returns a Deriver bound to programID. By default candidates
// that decode as ed25519 points are rejected.
func NewDeriver(programID types.Pubkey, opts ...Option) *Deriver {
	d := &Deriver{
		programID:  programID,
		isIdentity: IsOnCurve,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ProgramID returns the program identity the deriver hashes into every
// address.
func (d *Deriver) ProgramID() types.Pubkey {
	return d.programID
}

// CreateAddress hashes seeds and bump into an address. Returns
// ErrInvalidSeeds if the seeds are out of bounds and ErrInvalidAddress if
// the result is a directly-controllable identity.
func (d *Deriver) CreateAddress(seeds [][]byte, bump uint8) (types.Address, error) {
	if err := checkSeeds(seeds); err != nil {
		return types.Address{}, err
	}
	addr := d.hash(seeds, bump)
	if d.isIdentity(addr) {
		return types.Address{}, ErrInvalidAddress
	}
	return addr, nil
}

// FindAddress searches bumps from 255 down to 0 and returns the first
// address that is not a directly-controllable identity. Returns
// ErrAddressDerivationExhausted if none qualifies; the caller should pick
// different seeds.
func (d *Deriver) FindAddress(seeds [][]byte) (types.Address, uint8, error) {
	if err := checkSeeds(seeds); err != nil {
		return types.Address{}, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		addr := d.hash(seeds, uint8(bump))
		if !d.isIdentity(addr) {
			return addr, uint8(bump), nil
		}
	}
	return types.Address{}, 0, ErrAddressDerivationExhausted
}

// Verify reports whether addr is the address derived from seeds and bump.
func (d *Deriver) Verify(addr types.Address, seeds [][]byte, bump uint8) bool {
	got, err := d.CreateAddress(seeds, bump)
	return err == nil && got == addr
}

func (d *Deriver) hash(seeds [][]byte, bump uint8) types.Pubkey {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(d.programID[:])
	h.Write([]byte(marker))

	var out types.Pubkey
	copy(out[:], h.Sum(nil))
	return out
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds-1 {
		return fmt.Errorf("%w: %d seeds, max %d", ErrInvalidSeeds, len(seeds), MaxSeeds-1)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return fmt.Errorf("%w: seed %d is %d bytes, max %d", ErrInvalidSeeds, i, len(s), MaxSeedLength)
		}
	}
	return nil
}
