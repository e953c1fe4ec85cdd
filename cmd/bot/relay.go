package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Answer prefixed chat messages delivered by a relay",
	Long: `relay connects to RELAY_WS_URL, answers every message that starts with
BOT_PREFIX and posts the reply to RELAY_BASE_URL/reply.`,
	Args: cobra.NoArgs,
	RunE: runRelay,
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

func runRelay(_ *cobra.Command, _ []string) error {
	container, err := setup()
	if err != nil {
		return err
	}
	logger := container.Logger
	defer func() { _ = logger.Sync() }()

	relayBot, err := container.NewRelayBot()
	if err != nil {
		logger.Error("Failed to initialize relay bot", zap.Error(err))
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	container.StartMetrics(ctx)

	logger.Info("Relay bot starting",
		zap.String("ws_url", container.Config.Relay.WSURL),
		zap.String("prefix", container.Config.Bot.Prefix),
	)
	if err := relayBot.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := relayBot.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
