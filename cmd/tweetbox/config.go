// Config loading for the tweetbox CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tweetbox/internal/paths"
	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TWEETBOX"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyKeypair       = "keypair"
	cfgKeyProgramID     = "program_id"
	cfgKeySyncStrategy  = "sync_strategy"
	cfgKeyBatchSize     = "batch_size"
	cfgKeyBatchInterval = "batch_interval"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# tweetbox configuration

backend: sqlite

# Slot store directory (overridden by --data-dir and TWEETBOX_DATA_DIR).
# data_dir:

# Keypair used to sign create, update and delete (overridden by --keypair).
# keypair: ~/.config/solana/id.json

# Program identity hashed into every tweet address.
# program_id: BUW39Wm8Q3cXfkbQ6aesRKARc3bKxUJL3vHWFMn6ntRz

# When slot changes reach slots.jsonl and ledger.jsonl:
# immediate, on_close, or batch.
sync_strategy: immediate
# batch_size: 10
# batch_interval: 5
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. TWEETBOX_* environment variables override file
// values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFileName)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig builds the slot store configuration for dataDir.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		SQLiteConfig: &types.SQLiteConfig{
			SyncStrategy:  v.GetString(cfgKeySyncStrategy),
			BatchSize:     v.GetInt(cfgKeyBatchSize),
			BatchInterval: v.GetInt(cfgKeyBatchInterval),
		},
	}
}

// programID applies --program-id > config program_id > the default.
func programID(v *viper.Viper) (types.Pubkey, error) {
	s := flagProgramID
	if s == "" {
		s = v.GetString(cfgKeyProgramID)
	}
	if s == "" {
		return program.DefaultProgramID, nil
	}
	id, err := types.ParsePubkey(s)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("program id: %w", err)
	}
	return id, nil
}
