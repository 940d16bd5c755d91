package address

import (
	"filippo.io/edwards25519"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// IsOnCurve reports whether pk decodes as a point on the ed25519 curve. Any
// such value may be someone's public key.
func IsOnCurve(pk types.Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}
