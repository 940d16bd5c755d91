// Create command for the tweetbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/layout"
	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var (
	createTopic   string
	createContent string
	createSeed    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Store a new tweet signed by the local keypair",
	Long: `Store a new tweet. The slot address is derived from the keypair's public key
and the seed; without --seed a fresh UUIDv7 seed is generated. The rent
deposit for the slot is escrowed from the author until the tweet is deleted.

Example:
  tweetbox create --topic hello --content world`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := createSeedValue()
		if err != nil {
			return err
		}

		return withProgram(func(p *program.Program, _ types.Store) error {
			kp, err := loadKeypair()
			if err != nil {
				return err
			}
			addr, _, err := p.TweetAddress(kp.Pubkey(), seed)
			if err != nil {
				return err
			}
			caller, err := signedCaller(p, kp, "create", addr, seed.String(), createTopic, createContent)
			if err != nil {
				return err
			}

			addr, bump, err := p.CreateTweet(caller, seed, createTopic, createContent)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(map[string]any{
					"address": addr,
					"seed":    seed,
					"bump":    bump,
					"deposit": layout.TweetDeposit,
				})
			}
			fmt.Println("address:", addr)
			fmt.Println("seed:   ", seed)
			fmt.Println("bump:   ", bump)
			fmt.Println("deposit:", layout.TweetDeposit)
			return nil
		})
	},
}

func createSeedValue() (types.Seed, error) {
	if createSeed != "" {
		return types.ParseSeed(createSeed)
	}
	seed, err := types.NewSeed()
	if err != nil {
		return types.Seed{}, sysErr(err)
	}
	return seed, nil
}

func init() {
	createCmd.Flags().StringVar(&createTopic, "topic", "", "topic, at most 50 characters")
	createCmd.Flags().StringVar(&createContent, "content", "", "content, at most 280 characters")
	createCmd.Flags().StringVar(&createSeed, "seed", "", "seed as UUID or 32 hex characters (default: new UUIDv7)")
}
