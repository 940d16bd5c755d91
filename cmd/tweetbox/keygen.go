// Keygen command for the tweetbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/internal/keypair"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a signing keypair",
	Long: `Generate an ed25519 keypair and save it to the keypair path
(--keypair, the config keypair value, or <config-dir>/id.json).
An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeypairPath()
		if err != nil {
			return sysErr(err)
		}

		kp, err := keypair.Generate()
		if err != nil {
			return sysErr(err)
		}
		if err := kp.Save(path); err != nil {
			return classify(err)
		}
		logger.Sugar().Infow("keypair generated", "path", path, "pubkey", kp.Pubkey().String())

		if flagJSON {
			return printJSON(map[string]any{"pubkey": kp.Pubkey(), "path": path})
		}
		fmt.Println("pubkey:", kp.Pubkey())
		fmt.Println("saved: ", path)
		return nil
	},
}
