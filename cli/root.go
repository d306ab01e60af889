// Package cli is a demo CLI driving the S.S0055 AKA core: it loads
// a subscriber config, runs a quintuplet or resync against it, and
// prints the result as a styled table. It plays the role the original
// eap_aka_3gpp2 plugin's provider/network side would play, without any
// of the EAP packet handling spec.md places out of scope.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "0.1.0"

	configPath string
	identity   string
	randHex    string
	verbose    bool

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "akactl",
	Short: "S.S0055 AKA core demo CLI",
	Long: `akactl v` + version + `

Drives the S.S0055 3GPP2 AKA cryptographic core: computes
authentication quintuplets, performs SQN resynchronization, and
derives the downstream EAP-AKA key hierarchy, against an in-memory
subscriber store loaded from a YAML config file.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("akactl: build logger: %w", err)
		}
		logger = l.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "akactl.yaml",
		"path to the subscriber/seq_check config file")
	rootCmd.PersistentFlags().StringVarP(&identity, "identity", "i", "",
		"subscriber identity to operate on")
	rootCmd.PersistentFlags().StringVar(&randHex, "rand", "",
		"RAND challenge, 32 hex chars (16 bytes)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug-level logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
