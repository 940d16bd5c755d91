package types

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SeedLength is the width of a tweet seed in bytes.
const SeedLength = 16

// Seed is the creator-chosen value that, together with the owner, selects a
// tweet's slot address. It is immutable after creation.
type Seed [SeedLength]byte

// Seed errors.
var (
	ErrInvalidSeed = errors.New("invalid seed")
)

// NewSeed returns a fresh seed built from a UUID v7. A UUID is exactly
// 16 bytes, and v7 values sort by creation time.
func NewSeed() (Seed, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Seed{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	return Seed(id), nil
}

// ParseSeed accepts either a UUID string (with or without hyphens) or 32
// hex characters.
func ParseSeed(s string) (Seed, error) {
	if id, err := uuid.Parse(s); err == nil {
		return Seed(id), nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %s", ErrInvalidSeed, err)
	}
	if len(raw) != SeedLength {
		return Seed{}, fmt.Errorf("%w: decoded %d bytes", ErrInvalidSeed, len(raw))
	}
	var seed Seed
	copy(seed[:], raw)
	return seed, nil
}

// String returns the seed in UUID form.
func (s Seed) String() string {
	return uuid.UUID(s).String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	seed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = seed
	return nil
}
