package cmd

import (
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/logging"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/server"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/system"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scans over a JSON HTTP API",
		Long: `Serve starts an HTTP server accepting scan requests:

POST /api/v1/scan {"directory": "/path/to/tree"}
POST /api/v1/scan {"url": "https://example.com"}
		`,
		Run: Serve,
	}

	serveCmd.Flags().StringVarP(&serveHost, "host", "", "localhost", "Host to bind")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8181, "Port to bind")
	registerScanOptionFlags(serveCmd)

	return serveCmd
}

func Serve(cmd *cobra.Command, args []string) {
	cfg := server.DefaultConfig()
	cfg.Host = serveHost
	cfg.Port = servePort

	srv := server.New(cfg, buildScanOptions())
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed starting server")
	}

	system.RegisterGracefulShutdownHandler(func() {
		if err := srv.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed stopping server")
		}
	})

	// keyboard shortcuts stay available while serving
	go logging.ShortcutListeners(nil)
	select {}
}
