// Balance command for the tweetbox CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [pubkey]",
	Short: "Show rent deposits escrowed and refunded for an identity",
	Long: `Show the rent ledger for an identity, the local keypair by default. The
balance is refunds minus escrows, so it is negative while tweets are live.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var identity types.Pubkey
		if len(args) == 1 {
			var err error
			if identity, err = types.ParsePubkey(args[0]); err != nil {
				return err
			}
		} else {
			kp, err := loadKeypair()
			if err != nil {
				return classify(err)
			}
			identity = kp.Pubkey()
		}

		return withProgram(func(_ *program.Program, store types.Store) error {
			balance, err := store.Balance(identity)
			if err != nil {
				return err
			}
			entries, err := store.Ledger(identity)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(map[string]any{
					"identity": identity,
					"balance":  balance,
					"entries":  entries,
				})
			}
			fmt.Println("identity:", identity)
			fmt.Println("balance: ", balance)
			for _, e := range entries {
				fmt.Printf("  %s  %-6s  %10d  %s\n", e.CreatedAt.Format(time.RFC3339), e.Kind, e.Amount, e.Address)
			}
			return nil
		})
	},
}
