// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var (
	testPayer = types.Pubkey{0xAA, 1}
	testAddrA = types.Address{0x0A, 1}
	testAddrB = types.Address{0x0B, 2}
)

// attachedBackend returns a backend attached to a fresh temp directory and
// detached when the test ends.
func attachedBackend(t *testing.T, cfg *types.SQLiteConfig) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	clock := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	b := NewBackend(WithClock(func() time.Time { return clock }))
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SQLiteConfig: cfg,
	}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	for _, name := range []string{dbFileName, slotsJSONL, ledgerJSONL} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should exist after Attach", name)
	}

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()

	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{DataDir: "x"},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres", DataDir: "x"},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name: "unknown sync strategy",
			config: types.Config{
				Backend:      types.BackendSQLite,
				DataDir:      "x",
				SQLiteConfig: &types.SQLiteConfig{SyncStrategy: "eventually"},
			},
			wantErr: types.ErrSyncStrategyUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			assert.ErrorIs(t, b.Attach(tt.config), tt.wantErr)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should be a no-op")

	_, err := b.Read(testAddrA)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Allocate(testAddrA, 8, testPayer), types.ErrStoreDetached)
	assert.ErrorIs(t, b.Write(testAddrA, make([]byte, 8)), types.ErrStoreDetached)
	_, err = b.Reclaim(testAddrA, testPayer)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.Balance(testPayer)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = b.Ledger(testPayer)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_ReattachAfterDetach(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	b := NewBackend()

	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Allocate(testAddrA, 16, testPayer))
	require.NoError(t, b.Detach())

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	data, err := b.Read(testAddrA)
	require.NoError(t, err)
	assert.Len(t, data, 16)
}
