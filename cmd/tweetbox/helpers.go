// Shared helpers for tweetbox CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/tweetbox/internal/keypair"
	"github.com/mesh-intelligence/tweetbox/pkg/address"
	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/sqlite"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var errNoKeypair = errors.New("keypair not found")

// userErrors are failures caused by the request rather than the system.
var userErrors = []error{
	types.ErrTopicTooLong,
	types.ErrContentTooLong,
	types.ErrInvalidText,
	types.ErrUnauthorized,
	types.ErrAddressMismatch,
	types.ErrNotFound,
	types.ErrSlotAlreadyExists,
	types.ErrInvalidPubkey,
	types.ErrInvalidSeed,
	address.ErrInvalidSeeds,
	address.ErrAddressDerivationExhausted,
	keypair.ErrKeypairExists,
	keypair.ErrInvalidKeypair,
	errNoKeypair,
	keypair.ErrInvalidSignature,
}

// systemError marks a failure of the environment: I/O, storage, config.
type systemError struct {
	err error
}

func (e systemError) Error() string { return e.err.Error() }

func (e systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return systemError{err: err}
}

// classify wraps err as a system error unless it is one of userErrors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, u := range userErrors {
		if errors.Is(err, u) {
			return err
		}
	}
	return sysErr(err)
}

// exitCode maps a command error to the process exit status. Flag and
// argument errors from cobra count as user errors.
func exitCode(err error) int {
	var se systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// openStore resolves the data directory and attaches the slot store. The
// caller must Detach it.
func openStore() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	store := sqlite.NewBackend(logger)
	if err := store.Attach(storeConfig(cfg, dataDir)); err != nil {
		return nil, sysErr(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// withProgram attaches the store, builds the program, and runs fn. The
// store is detached afterwards and a detach failure is reported if fn
// succeeded.
func withProgram(fn func(p *program.Program, store types.Store) error) (err error) {
	id, err := programID(cfg)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysErr(fmt.Errorf("detach store: %w", derr))
		}
	}()

	p := program.New(store, id, program.WithLogger(logger))
	return classify(fn(p, store))
}

// loadKeypair reads the keypair from the resolved path.
func loadKeypair() (*keypair.Keypair, error) {
	path, err := resolveKeypairPath()
	if err != nil {
		return nil, sysErr(err)
	}
	kp, err := keypair.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s (run tweetbox keygen)", errNoKeypair, path)
		}
		return nil, err
	}
	return kp, nil
}

// signedCaller signs the operation with kp and authenticates the signature,
// yielding the caller the program sees.
func signedCaller(p *program.Program, kp *keypair.Keypair, op string, addr types.Address, fields ...string) (types.Caller, error) {
	msg := keypair.Message(p.ProgramID(), op, addr, fields...)
	return keypair.Authenticate(kp.Pubkey(), msg, kp.Sign(msg))
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErr(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Println(string(out))
	return nil
}

// tweetView is the JSON and text rendering of a stored tweet.
type tweetView struct {
	Address   types.Address `json:"address"`
	Owner     types.Pubkey  `json:"owner"`
	Seed      types.Seed    `json:"seed"`
	Bump      uint8         `json:"bump"`
	Topic     string        `json:"topic"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
	Edited    bool          `json:"edited"`
}

func newTweetView(addr types.Address, t *types.Tweet) tweetView {
	return tweetView{
		Address:   addr,
		Owner:     t.Owner,
		Seed:      t.Seed,
		Bump:      t.Bump,
		Topic:     t.Topic,
		Content:   t.Content,
		CreatedAt: t.Created().UTC().Format(time.RFC3339),
		UpdatedAt: t.Updated().UTC().Format(time.RFC3339),
		Edited:    t.Edited(),
	}
}

func printTweet(v tweetView) error {
	if flagJSON {
		return printJSON(v)
	}
	fmt.Println("address:", v.Address)
	fmt.Println("owner:  ", v.Owner)
	fmt.Println("seed:   ", v.Seed)
	fmt.Println("bump:   ", v.Bump)
	fmt.Println("created:", v.CreatedAt)
	if v.Edited {
		fmt.Println("updated:", v.UpdatedAt)
	}
	fmt.Println("topic:  ", v.Topic)
	fmt.Println("content:", v.Content)
	return nil
}

// parseAddressArg parses a base58 address argument.
func parseAddressArg(s string) (types.Address, error) {
	addr, err := types.ParsePubkey(s)
	if err != nil {
		return types.Address{}, fmt.Errorf("address %q: %w", s, err)
	}
	return addr, nil
}
