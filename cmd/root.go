package cmd

import (
	"os"
	"time"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// LogDebug is set by the global -v flag.
	LogDebug bool
	// LogLevel is set by the global --log-level flag.
	LogLevel string

	rootCmd = &cobra.Command{
		Use:   "keyhunter",
		Short: "🔑 Hunt source trees and web pages for exposed API keys 🔑",
		Long:  "Keyhunter scans a local source tree or a fetched web page for accidentally exposed AI provider API keys, sensitive files and risky code patterns, and reports a coarse risk verdict.",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setGlobalLogLevel(_ *cobra.Command) {
	if LogDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("Verbose log output enabled")
		return
	}
	if LogLevel != "" {
		level, err := logging.ParseLevel(LogLevel)
		if err != nil {
			log.Warn().Str("log-level", LogLevel).Msg("Unknown log level, keeping info")
			return
		}
		zerolog.SetGlobalLevel(level)
	}
}

func init() {
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewServeCmd())

	rootCmd.PersistentFlags().BoolVarP(&LogDebug, "verbose", "v", false, "Verbose Logging")
	rootCmd.PersistentFlags().StringVarP(&LogLevel, "log-level", "", "", "Log level: trace, debug, info, hit, warn, error")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setGlobalLogLevel(cmd)
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
