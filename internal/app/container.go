package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/kapu/wiki-answer-bot-go/internal/bot"
	"github.com/kapu/wiki-answer-bot-go/internal/config"
	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/lexicon"
	"github.com/kapu/wiki-answer-bot-go/internal/metrics"
	"github.com/kapu/wiki-answer-bot-go/internal/relay"
	"github.com/kapu/wiki-answer-bot-go/internal/service/resolver"
	"github.com/kapu/wiki-answer-bot-go/internal/service/wiki"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"go.uber.org/zap"
)

// Container holds the assembled services shared by the console, one-shot and relay modes.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Resolver *resolver.Resolver
	Wiki     *wiki.Client
}

// Build wires the MediaWiki client, resolver and metrics from cfg.
func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	m := metrics.New()

	breaker := util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		logger,
	)
	requester := wiki.NewAPIClient(wiki.APIClientConfig{
		BaseURL:     cfg.Wiki.APIURL,
		UserAgent:   cfg.Wiki.UserAgent,
		HTTPClient:  &http.Client{Timeout: cfg.Wiki.HTTPTimeout},
		Breaker:     breaker,
		Observer:    m,
		MaxAttempts: constants.RetryConfig.MaxAttempts,
		BaseDelay:   constants.RetryConfig.BaseDelay,
		Jitter:      constants.RetryConfig.Jitter,
	}, logger)
	wikiClient := wiki.NewClient(requester, cfg.Wiki.APIURL, logger)

	opts := resolver.DefaultOptions()
	opts.SearchLimit = cfg.Resolver.SearchLimit
	opts.SummarySentences = cfg.Resolver.SummarySentences
	opts.CallTimeout = cfg.Resolver.CallTimeout
	opts.MaxAmbiguity = cfg.Resolver.MaxAmbiguity
	opts.MaxRelated = cfg.Resolver.MaxRelated

	res := resolver.New(wikiClient, lexicon.Default(), opts, m, logger)

	logger.Debug("Application services assembled",
		zap.String("api_url", cfg.Wiki.APIURL),
		zap.Int("search_limit", opts.SearchLimit),
		zap.Duration("call_timeout", opts.CallTimeout),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Resolver: res,
		Wiki:     wikiClient,
	}, nil
}

// NewConsole returns the interactive loop reading from in and writing to out.
func (c *Container) NewConsole(in io.Reader, out io.Writer) *bot.Console {
	return bot.NewConsole(in, out, c.Resolver, c.Logger)
}

// NewRelayBot returns a bot connected to the configured chat relay.
func (c *Container) NewRelayBot() (*bot.Bot, error) {
	if err := c.Config.ValidateRelay(); err != nil {
		return nil, err
	}
	return bot.NewBot(&bot.Dependencies{
		Resolver:       c.Resolver,
		MessageAdapter: adapter.NewMessageAdapter(c.Config.Bot.Prefix),
		Formatter:      adapter.NewResponseFormatter(c.Config.Bot.Prefix),
		RelayClient:    relay.NewClient(c.Config.Relay.BaseURL, c.Logger),
		RelaySource: relay.NewWebSocket(
			c.Config.Relay.WSURL,
			c.Config.Relay.MaxReconnectAttempts,
			c.Config.Relay.ReconnectDelay,
			c.Logger,
		),
		TurnTimeout: turnBudget(c.Config),
		Logger:      c.Logger,
	})
}

// StartMetrics serves /metrics in the background when an address is configured.
func (c *Container) StartMetrics(ctx context.Context) {
	addr := c.Config.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := c.Metrics.Serve(ctx, addr, c.Logger); err != nil {
			c.Logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()
}

// turnBudget covers a search plus a summary and a page call per candidate, with
// room left for posting the reply.
func turnBudget(cfg *config.Config) time.Duration {
	calls := 1 + 2*cfg.Resolver.SearchLimit
	return time.Duration(calls)*cfg.Resolver.CallTimeout + cfg.Wiki.HTTPTimeout
}
