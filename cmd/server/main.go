package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomcast-server/internal/app"
	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/log"
)

var (
	flagConfig   string
	flagAddr     string
	flagLogLevel string
	flagNoTLS    bool
)

func main() {
	root := &cobra.Command{
		Use:           "roomcast-server",
		Short:         "Room/group relay server with remote-gated admission",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVar(&flagConfig, "config", "", "path to server config file")
	root.Flags().StringVar(&flagAddr, "addr", "", "listen address override")
	root.Flags().StringVar(&flagLogLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	root.Flags().BoolVar(&flagNoTLS, "no-tls", false, "serve plain ws even when a certificate is configured")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	bootLog := log.New("info")

	cfg, path, err := config.Load(bootLog, flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagNoTLS {
		cfg.TLSCert, cfg.TLSKey = "", ""
	}

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", path).Msg("configuration loaded")

	rooms, err := config.LoadRooms(logger, cfg.RoomsConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, rooms, logger)

	scheme := "ws"
	if cfg.TLSEnabled() {
		scheme = "wss"
	}
	logger.Info().Str("addr", cfg.Addr).Str("scheme", scheme).Int("rooms", len(rooms)).Msg("starting roomcast server")

	if err := application.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
