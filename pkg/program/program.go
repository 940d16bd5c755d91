// Package program implements the tweet lifecycle: create, update, and
// delete, each authenticated by the caller's identity.
//
// A tweet moves Absent -> Active -> Absent. Every check runs before the first
// write to the slot store, so a failed operation leaves storage unchanged.
// The program holds no locks; the hosting environment serializes operations
// on the same address.
package program

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tweetbox/pkg/address"
	"github.com/mesh-intelligence/tweetbox/pkg/layout"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// DefaultProgramID is the program identity hashed into every tweet address
// unless another is configured.
var DefaultProgramID = types.MustParsePubkey("BUW39Wm8Q3cXfkbQ6aesRKARc3bKxUJL3vHWFMn6ntRz")

// Operation names used in logs.
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Program runs tweet operations against a slot store.
type Program struct {
	store   types.SlotStore
	deriver *address.Deriver
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Program.
type Option func(*Program)

// WithClock overrides the time source. Timestamps are truncated to seconds.
func WithClock(now func() time.Time) Option {
	return func(p *Program) {
		p.now = now
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Program) {
		p.logger = l
	}
}

// WithDeriver replaces the address deriver, for example to inject a
// different identity predicate.
func WithDeriver(d *address.Deriver) Option {
	return func(p *Program) {
		p.deriver = d
	}
}

// New returns a Program that stores tweets in store under programID.
func New(store types.SlotStore, programID types.Pubkey, opts ...Option) *Program {
	p := &Program{
		store:   store,
		deriver: address.NewDeriver(programID),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProgramID returns the program identity.
func (p *Program) ProgramID() types.Pubkey {
	return p.deriver.ProgramID()
}

// TweetAddress derives the slot address and bump for (owner, seed) without
// touching storage.
func (p *Program) TweetAddress(owner types.Pubkey, seed types.Seed) (types.Address, uint8, error) {
	return p.deriver.FindTweetAddress(owner, seed)
}

// CreateTweet stores a new tweet owned by caller at the address derived from
// (caller, seed) and returns that address and its bump.
//
// Returns ErrTopicTooLong or ErrContentTooLong for oversize text,
// address.ErrAddressDerivationExhausted if the seed yields no address, and
// ErrSlotAlreadyExists if a tweet already lives at the address.
func (p *Program) CreateTweet(caller types.Caller, seed types.Seed, topic, content string) (types.Address, uint8, error) {
	owner := caller.Identity()

	if err := types.ValidateText(topic, content); err != nil {
		return types.Address{}, 0, p.reject(opCreate, types.Address{}, owner, err)
	}

	addr, bump, err := p.deriver.FindTweetAddress(owner, seed)
	if err != nil {
		return types.Address{}, 0, p.reject(opCreate, types.Address{}, owner, err)
	}

	now := p.now().Unix()
	tweet := &types.Tweet{
		Owner:     owner,
		Seed:      seed,
		CreatedAt: now,
		UpdatedAt: now,
		Topic:     topic,
		Content:   content,
		Bump:      bump,
	}
	data, err := layout.EncodeTweet(tweet)
	if err != nil {
		return types.Address{}, 0, p.reject(opCreate, addr, owner, err)
	}

	if err := p.store.Allocate(addr, layout.TweetSize, owner); err != nil {
		return types.Address{}, 0, p.reject(opCreate, addr, owner, err)
	}
	if err := p.store.Write(addr, data); err != nil {
		// Undo the allocation so the address stays Absent.
		if _, rbErr := p.store.Reclaim(addr, owner); rbErr != nil {
			p.logger.Error("rollback of failed create left slot allocated",
				zap.Stringer("address", addr),
				zap.Error(rbErr))
			err = errors.Join(err, rbErr)
		}
		return types.Address{}, 0, p.reject(opCreate, addr, owner, fmt.Errorf("writing tweet: %w", err))
	}

	p.logger.Info("tweet created",
		zap.String("op", opCreate),
		zap.Stringer("address", addr),
		zap.Stringer("owner", owner),
		zap.Uint8("bump", bump))
	return addr, bump, nil
}

// UpdateTweet replaces the topic and content of the tweet at addr and stamps
// UpdatedAt. Owner, seed, CreatedAt and bump never change.
//
// Returns ErrNotFound if no tweet is at addr, ErrUnauthorized if caller is
// not the owner, ErrAddressMismatch if addr is not the address of the
// stored (owner, seed, bump), and ErrTopicTooLong or ErrContentTooLong for
// oversize text.
func (p *Program) UpdateTweet(caller types.Caller, addr types.Address, topic, content string) error {
	owner := caller.Identity()

	tweet, err := p.loadOwned(owner, addr)
	if err != nil {
		return p.reject(opUpdate, addr, owner, err)
	}
	if err := types.ValidateText(topic, content); err != nil {
		return p.reject(opUpdate, addr, owner, err)
	}

	updated := *tweet
	updated.Topic = topic
	updated.Content = content
	updated.UpdatedAt = p.now().Unix()
	if updated.UpdatedAt < tweet.UpdatedAt {
		// Never move backwards, even if the clock does.
		updated.UpdatedAt = tweet.UpdatedAt
	}

	data, err := layout.EncodeTweet(&updated)
	if err != nil {
		return p.reject(opUpdate, addr, owner, err)
	}
	if err := p.store.Write(addr, data); err != nil {
		return p.reject(opUpdate, addr, owner, err)
	}

	p.logger.Info("tweet updated",
		zap.String("op", opUpdate),
		zap.Stringer("address", addr),
		zap.Stringer("owner", owner),
		zap.Int64("updated_at", updated.UpdatedAt))
	return nil
}

// DeleteTweet removes the tweet at addr, refunds its deposit to the owner,
// and returns the refunded amount. The address may be used again by a later
// CreateTweet.
//
// Returns ErrNotFound if no tweet is at addr, ErrUnauthorized if caller is
// not the owner, and ErrAddressMismatch if addr does not match the stored
// owner, seed and bump.
func (p *Program) DeleteTweet(caller types.Caller, addr types.Address) (uint64, error) {
	owner := caller.Identity()

	if _, err := p.loadOwned(owner, addr); err != nil {
		return 0, p.reject(opDelete, addr, owner, err)
	}

	refund, err := p.store.Reclaim(addr, owner)
	if err != nil {
		return 0, p.reject(opDelete, addr, owner, err)
	}

	p.logger.Info("tweet deleted",
		zap.String("op", opDelete),
		zap.Stringer("address", addr),
		zap.Stringer("owner", owner),
		zap.Uint64("refund", refund))
	return refund, nil
}

// GetTweet reads and decodes the tweet at addr. Reads are unrestricted.
// Returns ErrNotFound if no tweet is at addr.
func (p *Program) GetTweet(addr types.Address) (*types.Tweet, error) {
	data, err := p.store.Read(addr)
	if err != nil {
		return nil, err
	}
	return layout.DecodeTweet(data)
}

// loadOwned reads the tweet at addr and checks that owner may mutate it.
func (p *Program) loadOwned(owner types.Pubkey, addr types.Address) (*types.Tweet, error) {
	tweet, err := p.GetTweet(addr)
	if err != nil {
		return nil, err
	}
	if tweet.Owner != owner {
		return nil, types.ErrUnauthorized
	}
	if !p.deriver.VerifyTweetAddress(addr, owner, tweet.Seed, tweet.Bump) {
		return nil, types.ErrAddressMismatch
	}
	return tweet, nil
}

// reject logs a failed operation and returns err unchanged.
func (p *Program) reject(op string, addr types.Address, owner types.Pubkey, err error) error {
	p.logger.Debug("tweet operation rejected",
		zap.String("op", op),
		zap.Stringer("address", addr),
		zap.Stringer("owner", owner),
		zap.Error(err))
	return err
}
