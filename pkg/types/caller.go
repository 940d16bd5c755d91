package types

import "errors"

// Caller is the authenticated identity on whose behalf an operation runs.
// The hosting environment is responsible for proving the caller signed the
// request; the program only compares identities.
type Caller interface {
	Identity() Pubkey
}

// Authorization errors.
var (
	ErrUnauthorized    = errors.New("caller is not the tweet owner")
	ErrAddressMismatch = errors.New("address does not match owner, seed and bump")
)

// Identity is a Caller whose identity has already been established.
type Identity Pubkey

// Identity returns the wrapped key.
func (i Identity) Identity() Pubkey {
	return Pubkey(i)
}
