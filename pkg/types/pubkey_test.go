package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePubkey(t *testing.T) {
	t.Run("round trips through base58", func(t *testing.T) {
		var pk Pubkey
		for i := range pk {
			pk[i] = byte(i + 1)
		}
		got, err := ParsePubkey(pk.String())
		require.NoError(t, err)
		assert.Equal(t, pk, got)
	})

	t.Run("zero key encodes as all ones", func(t *testing.T) {
		assert.Equal(t, "11111111111111111111111111111111", Pubkey{}.String())
		assert.True(t, Pubkey{}.IsZero())
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		_, err := ParsePubkey("0OIl")
		assert.ErrorIs(t, err, ErrInvalidPubkey)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParsePubkey("3yZe7d")
		assert.ErrorIs(t, err, ErrInvalidPubkey)
	})
}

func TestPubkeyJSON(t *testing.T) {
	pk := MustParsePubkey("BUW39Wm8Q3cXfkbQ6aesRKARc3bKxUJL3vHWFMn6ntRz")
	data, err := json.Marshal(struct {
		Key Pubkey `json:"key"`
	}{pk})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"BUW39Wm8Q3cXfkbQ6aesRKARc3bKxUJL3vHWFMn6ntRz"}`, string(data))

	var out struct {
		Key Pubkey `json:"key"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, pk.Equal(out.Key))
}

func TestSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	parsed, err := ParseSeed(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	hexSeed, err := ParseSeed("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	assert.Equal(t, byte(0x0f), hexSeed[15])

	_, err = ParseSeed("abcd")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
