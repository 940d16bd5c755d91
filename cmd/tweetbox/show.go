// Show command for the tweetbox CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Display a tweet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseAddressArg(args[0])
		if err != nil {
			return err
		}

		return withProgram(func(p *program.Program, _ types.Store) error {
			tweet, err := p.GetTweet(addr)
			if err != nil {
				return err
			}
			return printTweet(newTweetView(addr, tweet))
		})
	},
}
