// Root command for the tweetbox CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/tweetbox/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagKeypair   string
	flagProgramID string
	flagJSON      bool
	flagVerbose   bool
)

// Set by PersistentPreRunE for every subcommand.
var (
	configDir string
	cfg       *viper.Viper
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tweetbox",
	Short: "Store short posts in owner-derived slots",
	Long: `tweetbox keeps short posts (a topic of up to 50 characters and content of up
to 280) in fixed-size slots. Each slot lives at an address derived from the
author's public key and a seed, and only the author may change or delete it.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagVerbose {
			if logger, err = zap.NewProduction(); err != nil {
				return sysErr(err)
			}
		}

		if configDir, err = paths.ResolveConfigDir(flagConfigDir); err != nil {
			return sysErr(err)
		}
		if cfg, err = loadConfig(configDir); err != nil {
			return sysErr(err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&flagDataDir, "data-dir", "", "slot store directory (default: platform data dir)")
	pf.StringVar(&flagKeypair, "keypair", "", "keypair file (default: <config-dir>/id.json)")
	pf.StringVar(&flagProgramID, "program-id", "", "program identity, base58")
	pf.BoolVar(&flagJSON, "json", false, "output as JSON")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir applies --data-dir > TWEETBOX_DATA_DIR > config data_dir >
// platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
}

// resolveKeypairPath applies --keypair > config keypair > <config-dir>/id.json.
func resolveKeypairPath() (string, error) {
	return paths.ResolveKeypairPath(flagKeypair, cfg.GetString(cfgKeyKeypair), configDir)
}
