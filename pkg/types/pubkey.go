package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeyLength is the width of an account identity in bytes.
const PubkeyLength = 32

// Pubkey is a 32-byte account identity. Owners, program IDs, and slot
// addresses all share this representation. The text form is base58.
type Pubkey [PubkeyLength]byte

// Address is the location of a slot. It is a Pubkey that was derived from
// seeds rather than generated from a key pair.
type Address = Pubkey

// Pubkey errors.
var (
	ErrInvalidPubkey = errors.New("invalid public key")
)

// ParsePubkey decodes a base58 string into a Pubkey.
// Returns ErrInvalidPubkey if the string is not base58 or does not decode
// to exactly 32 bytes.
func ParsePubkey(s string) (Pubkey, error) {
	var pk Pubkey
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %s", ErrInvalidPubkey, err)
	}
	if len(raw) != PubkeyLength {
		return pk, fmt.Errorf("%w: decoded %d bytes", ErrInvalidPubkey, len(raw))
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustParsePubkey is like ParsePubkey but panics on error. Intended for
// package-level constants.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PubkeyFromBytes copies b into a Pubkey.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != PubkeyLength {
		return pk, fmt.Errorf("%w: got %d bytes", ErrInvalidPubkey, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the base58 encoding of the key.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	b := make([]byte, PubkeyLength)
	copy(b, p[:])
	return b
}

// IsZero reports whether every byte of the key is zero.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Equal reports whether p and other are the same identity.
func (p Pubkey) Equal(other Pubkey) bool {
	return bytes.Equal(p[:], other[:])
}

// MarshalText implements encoding.TextMarshaler using base58.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using base58.
func (p *Pubkey) UnmarshalText(text []byte) error {
	pk, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
