package system

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

type ShutdownHandler func()

// RegisterGracefulShutdownHandler runs handler once on SIGINT/SIGTERM and
// then exits. Used by the serve command to drain the HTTP server.
func RegisterGracefulShutdownHandler(handler ShutdownHandler) {
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChannel
		log.Info().Msg("Received interrupt signal, shutting down gracefully...")
		handler()
		os.Exit(0)
	}()
}
