// Update command for the tweetbox CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/program"
	"github.com/mesh-intelligence/tweetbox/pkg/types"
)

var (
	updateTopic   string
	updateContent string
)

var updateCmd = &cobra.Command{
	Use:   "update <address>",
	Short: "Replace the topic and content of your tweet",
	Long: `Replace the topic and content of the tweet at address. Both values are
replaced; pass the current value to keep one unchanged. Only the author may
update a tweet.

Example:
  tweetbox update CWWdbTFv9GL9qusi8xpdDFnxithYVztQcVFmYRVPinRn --topic hi --content there`,
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
			caller, err := signedCaller(p, kp, "update", addr, updateTopic, updateContent)
			if err != nil {
				return err
			}
			if err := p.UpdateTweet(caller, addr, updateTopic, updateContent); err != nil {
				return err
			}

			tweet, err := p.GetTweet(addr)
			if err != nil {
				return err
			}
			if !flagJSON {
				fmt.Println("updated")
			}
			return printTweet(newTweetView(addr, tweet))
		})
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTopic, "topic", "", "new topic, at most 50 characters")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "new content, at most 280 characters")
}
