// Package app implements the main application command.
package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdns-tui/pdns-tui/internal/config"
	"github.com/pdns-tui/pdns-tui/internal/logger"
	"github.com/pdns-tui/pdns-tui/internal/pdns"
	"github.com/pdns-tui/pdns-tui/internal/tui"
)

// debugLogFile receives debug output when --debug is set without a log
// file in the configuration. The interface owns the terminal, so logs
// never go to stderr while it runs.
const debugLogFile = "pdns-tui.log"

var (
	configPath string
	serverURL  string
	apiKey     string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "pdns-tui",
		Short: "pdns-tui is a terminal interface for managing PowerDNS zones and records",
		Long: `pdns-tui is a terminal interface for managing PowerDNS zones and records
across one or more servers. Point it at a configuration file listing your
servers, or at a single server with --url and --api-key.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.Flags().StringVar(&serverURL, "url", "", "PowerDNS API base URL")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "PowerDNS API key")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Log debug detail to "+debugLogFile)

	rootCmd.MarkFlagsMutuallyExclusive("config", "url")
	rootCmd.MarkFlagsMutuallyExclusive("config", "api-key")
	rootCmd.MarkFlagsRequiredTogether("url", "api-key")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath, serverURL, apiKey)
	if err != nil {
		return err
	}

	if debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = debugLogFile
		}
	}

	if err := logger.Init(cfg.Log); err != nil {
		return err
	}

	registry := pdns.NewRegistry(cfg)

	log.Info().Int("servers", registry.Len()).Msg("starting terminal interface")

	return tui.New(cmd.Context(), registry).Run()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
