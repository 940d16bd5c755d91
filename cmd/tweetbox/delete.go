// Delete command for the tweetbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <address>",
	Short: "Delete your tweet and reclaim its deposit",
	Long: `Delete the tweet at address and refund its rent deposit to the author. The
same seed may be used again afterwards. Only the author may delete a tweet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddressArg(args[0])
		if err != nil {
			return err
		}

		return withProgram(func(p *program.Program, _ types.Store) error {
			kp, err := loadKeypair()
			if err != nil {
				return err
			}
			caller, err := signedCaller(p, kp, "delete", addr)
			if err != nil {
				return err
			}
			refund, err := p.DeleteTweet(caller, addr)
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(map[string]any{"address": addr, "refund": refund})
			}
			fmt.Println("deleted:", addr)
			fmt.Println("refund: ", refund)
			return nil
		})
	},
}
