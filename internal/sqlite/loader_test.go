// Tests for loading JSONL files on Attach.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

func TestLoadJSONL(t *testing.T) {
	addrA := testAddrA.String()
	addrB := testAddrB.String()
	payer := testPayer.String()

	tests := []struct {
		name      string
		slots     string
		ledger    string
		wantSlots []types.Address
		missing   []types.Address
		wantBal   int64
	}{
		{
			name: "valid records",
			slots: `{"address":"` + addrA + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
`,
			ledger: `{"entry_id":"0193a000-0000-7000-8000-000000000001","identity":"` + payer + `","address":"` + addrA + `","kind":"escrow","amount":100,"created_at":"2025-01-15T10:30:00Z"}
`,
			wantSlots: []types.Address{testAddrA},
			wantBal:   -100,
		},
		{
			name: "unknown fields are ignored",
			slots: `{"address":"` + addrA + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z","region":"eu"}
`,
			ledger: `{"entry_id":"0193a000-0000-7000-8000-000000000001","identity":"` + payer + `","address":"` + addrA + `","kind":"escrow","amount":100,"created_at":"2025-01-15T10:30:00Z","memo":"x"}
`,
			wantSlots: []types.Address{testAddrA},
			wantBal:   -100,
		},
		{
			name: "slot whose data does not match its size is skipped",
			slots: `{"address":"` + addrA + `","payer":"` + payer + `","size":3,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
{"address":"` + addrB + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
`,
			wantSlots: []types.Address{testAddrB},
			missing:   []types.Address{testAddrA},
		},
		{
			name: "duplicate and malformed lines are skipped",
			slots: `{"address":"` + addrA + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
{"address":"` + addrA + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AwQ=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
{broken
`,
			ledger: `{"entry_id":"","identity":"` + payer + `","address":"` + addrA + `","kind":"escrow","amount":100,"created_at":"2025-01-15T10:30:00Z"}
`,
			wantSlots: []types.Address{testAddrA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, slotsJSONL), []byte(tt.slots), 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, ledgerJSONL), []byte(tt.ledger), 0o644))

			b := NewBackend()
			require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
			defer b.Detach()

			for _, addr := range tt.wantSlots {
				data, err := b.Read(addr)
				require.NoError(t, err)
				assert.Len(t, data, 2)
			}
			for _, addr := range tt.missing {
				_, err := b.Read(addr)
				assert.ErrorIs(t, err, types.ErrNotFound)
			}

			bal, err := b.Balance(testPayer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBal, bal)
		})
	}
}

func TestLoadJSONL_FirstDuplicateWins(t *testing.T) {
	dir := t.TempDir()
	addr := testAddrA.String()
	payer := testPayer.String()
	slots := `{"address":"` + addr + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AQI=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
{"address":"` + addr + `","payer":"` + payer + `","size":2,"deposit":100,"data":"AwQ=","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, slotsJSONL), []byte(slots), 0o644))

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	data, err := b.Read(testAddrA)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, data)
}

func TestLoadJSONL_MissingFilesStartEmpty(t *testing.T) {
	b, _ := attachedBackend(t, nil)

	_, err := b.Read(testAddrA)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
