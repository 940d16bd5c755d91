// Init command for the tweetbox CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config and data directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already wrote config.yaml; attaching creates the
		// data directory and the JSONL files.
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Detach(); err != nil {
			return sysErr(fmt.Errorf("detach store: %w", err))
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return sysErr(err)
		}
		keyPath, err := resolveKeypairPath()
		if err != nil {
			return sysErr(err)
		}
		_, statErr := os.Stat(keyPath)
		hasKeypair := statErr == nil
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return sysErr(statErr)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"config_dir":  configDir,
				"data_dir":    dataDir,
				"keypair":     keyPath,
				"has_keypair": hasKeypair,
			})
		}
		fmt.Println("tweetbox initialized")
		fmt.Println("  config: ", configDir)
		fmt.Println("  data:   ", dataDir)
		fmt.Println("  keypair:", keyPath)
		if !hasKeypair {
			fmt.Println("no keypair yet; run `tweetbox keygen` to create one")
		}
		return nil
	},
}
