// Layout command for the tweetbox CLI.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tweetbox/pkg/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the tweet slot layout and deposit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(map[string]any{
				"discriminator": fmt.Sprintf("%x", layout.TweetDiscriminator),
				"fields":        layout.TweetSpans,
				"size":          layout.TweetSize,
				"deposit":       layout.TweetDeposit,
			})
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tOFFSET\tWIDTH")
		for _, f := range layout.TweetSpans {
			fmt.Fprintf(w, "%s\t%d\t%d\n", f.Name, f.Offset, f.Width)
		}
		fmt.Fprintf(w, "total\t\t%d\n", layout.TweetSize)
		if err := w.Flush(); err != nil {
			return sysErr(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deposit:", layout.TweetDeposit)
		return nil
	},
}
