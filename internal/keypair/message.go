package keypair

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// messagePrefix scopes signatures to this program so they cannot be replayed
// elsewhere.
const messagePrefix = "tweetbox"

// Message builds the canonical byte string a caller signs to request op on
// the tweet at addr under programID. Each field is quoted, so no two field
// lists produce the same message.
func Message(programID types.Pubkey, op string, addr types.Address, fields ...string) []byte {
	parts := []string{messagePrefix, programID.String(), op, addr.String()}
	for _, f := range fields {
		parts = append(parts, strconv.Quote(f))
	}
	return []byte(strings.Join(parts, "\n"))
}
