// Package bot runs conversation turns, either from a console or from a chat relay.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/kapu/wiki-answer-bot-go/internal/command"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/relay"
	"go.uber.org/zap"
)

// ReplySender delivers a reply to a relay room.
type ReplySender interface {
	SendMessage(ctx context.Context, room, message string) error
}

// MessageSource pushes relay messages to registered handlers.
type MessageSource interface {
	Connect(ctx context.Context) error
	OnMessage(handler relay.MessageHandler) func()
	Disconnect() error
}

type Dependencies struct {
	Resolver       command.Answerer
	MessageAdapter *adapter.MessageAdapter
	Formatter      *adapter.ResponseFormatter
	RelayClient    ReplySender
	RelaySource    MessageSource
	// TurnTimeout bounds one relay turn including the reply post.
	TurnTimeout time.Duration
	Logger      *zap.Logger
}

// Bot answers questions arriving through the relay. Turns are handled one at a time.
type Bot struct {
	deps       *Dependencies
	logger     *zap.Logger
	dispatcher command.Dispatcher

	turnMu sync.Mutex
	// current is the context of the turn holding turnMu.
	current     context.Context
	unsubscribe func()
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil {
		return nil, fmt.Errorf("bot dependencies are nil")
	}
	if deps.Resolver == nil || deps.MessageAdapter == nil || deps.Formatter == nil {
		return nil, fmt.Errorf("bot requires resolver, message adapter and formatter")
	}
	if deps.RelayClient == nil || deps.RelaySource == nil {
		return nil, fmt.Errorf("bot requires relay client and source")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Bot{deps: deps, logger: logger}
	b.dispatcher = newDispatcher(&command.Dependencies{
		Resolver:  deps.Resolver,
		Formatter: deps.Formatter,
		SendMessage: func(room, message string) error {
			return deps.RelayClient.SendMessage(b.turnContext(), room, message)
		},
		Logger: logger,
	})
	return b, nil
}

// Start connects to the relay and returns once the connection is up. Messages are
// handled until ctx is cancelled or Shutdown is called.
func (b *Bot) Start(ctx context.Context) error {
	b.unsubscribe = b.deps.RelaySource.OnMessage(func(message *relay.Message) {
		b.HandleMessage(ctx, message)
	})

	if err := b.deps.RelaySource.Connect(ctx); err != nil {
		b.unsubscribe()
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	b.logger.Info("Relay bot started", zap.String("prefix", b.deps.MessageAdapter.Prefix()))
	return nil
}

// HandleMessage runs one turn for a relay message. Messages without the prefix are ignored.
func (b *Bot) HandleMessage(ctx context.Context, message *relay.Message) {
	if message == nil || message.Room == "" {
		return
	}

	parsed := b.deps.MessageAdapter.ParseMessage(message.Msg)
	if parsed.Type == domain.CommandUnknown {
		return
	}

	b.turnMu.Lock()
	defer b.turnMu.Unlock()

	turnCtx := ctx
	if b.deps.TurnTimeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithTimeout(ctx, b.deps.TurnTimeout)
		defer cancel()
	}
	b.current = turnCtx

	cmdCtx := domain.NewCommandContext(message.Room, message.SenderName(), message.Msg)
	logger := b.logger.With(zap.String("turn_id", cmdCtx.TurnID), zap.String("room", cmdCtx.Room))

	if parsed.Type == domain.CommandEmpty {
		if err := b.deps.RelayClient.SendMessage(turnCtx, message.Room, b.deps.Formatter.EmptyInput()); err != nil {
			logger.Warn("Failed to send empty-input reply", zap.Error(err))
		}
		return
	}

	if _, err := b.dispatcher.Publish(turnCtx, cmdCtx, command.EventFromParsed(parsed)); err != nil {
		logger.Error("Relay turn failed", zap.String("command", parsed.Type.String()), zap.Error(err))
	}
}

func (b *Bot) turnContext() context.Context {
	if b.current == nil {
		return context.Background()
	}
	return b.current
}

// Shutdown disconnects from the relay and waits for the turn in progress.
func (b *Bot) Shutdown(ctx context.Context) error {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	err := b.deps.RelaySource.Disconnect()

	done := make(chan struct{})
	go func() {
		b.turnMu.Lock()
		defer b.turnMu.Unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func newDispatcher(deps *command.Dependencies) command.Dispatcher {
	registry := command.NewRegistry()
	registry.Register(command.NewAskCommand(deps), "q")
	registry.Register(command.NewHelpCommand(deps), "commands")
	return command.NewDispatcher(registry, command.DefaultRoute)
}
