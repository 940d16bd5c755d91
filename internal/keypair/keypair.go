// Package keypair manages ed25519 signing identities stored on disk.
//
// A keypair file is a JSON array of the 64 private key bytes (seed followed
// by public key), the format most Solana tooling reads and writes.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

// Keypair errors.
var (
	ErrInvalidKeypair   = errors.New("invalid keypair")
	ErrKeypairExists    = errors.New("keypair file already exists")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// Keypair is an ed25519 signing key. It implements types.Caller, but
// callers that cross a trust boundary should go through Authenticate.
type Keypair struct {
	priv ed25519.PrivateKey
}

// Generate creates a keypair from crypto/rand.
func Generate() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}
	return &Keypair{priv: priv}, nil
}

// FromBytes builds a keypair from the 64-byte private key encoding and checks
// that its public half matches the seed.
func FromBytes(b []byte) (*Keypair, error) {
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeypair, len(b), ed25519.PrivateKeySize)
	}
	priv := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !priv.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(b[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrInvalidKeypair)
	}
	return &Keypair{priv: priv}, nil
}

// Load reads a keypair file.
func Load(path string) (*Keypair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keypair: %w", err)
	}
	var nums []int
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidKeypair, path, err)
	}
	b := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%w: %s: element %d out of byte range", ErrInvalidKeypair, path, i)
		}
		b[i] = byte(n)
	}
	return FromBytes(b)
}

// Save writes the keypair to path with owner-only permissions. It refuses to
// replace an existing file.
func (k *Keypair) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating keypair directory: %w", err)
	}

	nums := make([]int, len(k.priv))
	for i, v := range k.priv {
		nums[i] = int(v)
	}
	data, err := json.Marshal(nums)
	if err != nil {
		return fmt.Errorf("encoding keypair: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrKeypairExists, path)
		}
		return fmt.Errorf("creating keypair file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing keypair: %w", err)
	}
	return f.Close()
}

// Pubkey returns the public key.
func (k *Keypair) Pubkey() types.Pubkey {
	var pk types.Pubkey
	copy(pk[:], k.priv[ed25519.SeedSize:])
	return pk
}

// Identity implements types.Caller.
func (k *Keypair) Identity() types.Pubkey {
	return k.Pubkey()
}

// Sign signs msg.
func (k *Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}

// Authenticate checks that sig is pub's signature over msg and returns pub
// as an authenticated caller.
func Authenticate(pub types.Pubkey, msg, sig []byte) (types.Caller, error) {
	if len(sig) != ed25519.SignatureSize || !ed25519.Verify(ed25519.PublicKey(pub.Bytes()), msg, sig) {
		return nil, ErrInvalidSignature
	}
	return types.Identity(pub), nil
}
