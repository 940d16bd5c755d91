// Address command for the tweetbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/address"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var addressOwner string

var addressCmd = &cobra.Command{
	Use:   "address <seed>",
	Short: "Derive the address of a tweet without storing anything",
	Long: `Derive the slot address and bump for an owner and seed. The owner defaults
to the local keypair. Seeds are UUIDs or 32 hex characters.

Example:
  tweetbox address 0192f7e1-3c4a-7b21-9d0e-5a6b7c8d9e0f
  tweetbox address --owner 9xQe...Vin 0192f7e1-3c4a-7b21-9d0e-5a6b7c8d9e0f`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := types.ParseSeed(args[0])
		if err != nil {
			return err
		}

		var owner types.Pubkey
		if addressOwner != "" {
			if owner, err = types.ParsePubkey(addressOwner); err != nil {
				return fmt.Errorf("owner: %w", err)
			}
		} else {
			kp, err := loadKeypair()
			if err != nil {
				return classify(err)
			}
			owner = kp.Pubkey()
		}

		id, err := programID(cfg)
		if err != nil {
			return err
		}
		addr, bump, err := address.NewDeriver(id).FindTweetAddress(owner, seed)
		if err != nil {
			return classify(err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"address":    addr,
				"bump":       bump,
				"owner":      owner,
				"seed":       seed,
				"program_id": id,
			})
		}
		fmt.Println("address:", addr)
		fmt.Println("bump:   ", bump)
		return nil
	},
}

func init() {
	addressCmd.Flags().StringVar(&addressOwner, "owner", "", "owner public key, base58 (default: local keypair)")
}
