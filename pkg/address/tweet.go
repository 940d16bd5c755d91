package address

import "github.com/mesh-intelligence/tweetbox/pkg/types"

// TweetTag namespaces tweet addresses from any other record type the program
// might store.
const TweetTag = "tweet"

// TweetSeeds returns the seed list for a tweet slot: tag, owner, seed.
func TweetSeeds(owner types.Pubkey, seed types.Seed) [][]byte {
	return [][]byte{[]byte(TweetTag), owner[:], seed[:]}
}

// FindTweetAddress derives the slot address and bump for (owner, seed).
func (d *Deriver) FindTweetAddress(owner types.Pubkey, seed types.Seed) (types.Address, uint8, error) {
	return d.FindAddress(TweetSeeds(owner, seed))
}

// VerifyTweetAddress reports whether addr belongs to (owner, seed, bump).
func (d *Deriver) VerifyTweetAddress(addr types.Address, owner types.Pubkey, seed types.Seed, bump uint8) bool {
	return d.Verify(addr, TweetSeeds(owner, seed), bump)
}
