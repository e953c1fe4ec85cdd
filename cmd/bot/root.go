package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapu/wiki-answer-bot-go/internal/app"
	"github.com/kapu/wiki-answer-bot-go/internal/config"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	apiURL   string
	limit    int
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "wikibot",
	Short: "Answer questions from Wikipedia",
	Long: `wikibot answers natural-language questions with Wikipedia articles.
Without a subcommand it starts an interactive conversation on the terminal.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "MediaWiki API endpoint")
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0, "number of search results to consider")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// setup loads config, applies flag overrides and assembles the container.
func setup() (*app.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := app.Build(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to assemble application services: %w", err)
	}
	return container, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if apiURL != "" {
		cfg.Wiki.APIURL = apiURL
	}
	if limit > 0 {
		cfg.Resolver.SearchLimit = limit
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	container, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = container.Logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()
	container.StartMetrics(ctx)

	container.Logger.Info("Interactive session starting", zap.String("api_url", container.Config.Wiki.APIURL))
	return container.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}
