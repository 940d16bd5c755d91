// Command tweetbox stores short posts in fixed-size slots at addresses
// derived from the author's key and a per-post seed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tweetbox:", err)
		os.Exit(exitCode(err))
	}
}
