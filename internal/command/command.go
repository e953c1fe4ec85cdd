package command

import (
	"context"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"go.uber.org/zap"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// Answerer turns a free-text question into a finished answer. It never fails;
// problems come back as error answers.
type Answerer interface {
	Resolve(ctx context.Context, raw string) *domain.Answer
}

type Dependencies struct {
	Resolver    Answerer
	Formatter   *adapter.ResponseFormatter
	SendMessage func(room, message string) error
	// Interactive selects the console wording of the help text.
	Interactive bool
	Logger      *zap.Logger
}

// CommandEvent is a parsed command queued for execution.
type CommandEvent struct {
	Type   domain.CommandType
	Params map[string]any
}

// Dispatcher executes command events and reports how many ran.
type Dispatcher interface {
	Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error)
}

// EventFromParsed converts the adapter's output into a dispatchable event.
func EventFromParsed(parsed *domain.ParsedCommand) CommandEvent {
	if parsed == nil {
		return CommandEvent{Type: domain.CommandUnknown}
	}
	return CommandEvent{Type: parsed.Type, Params: parsed.Params}
}

// DefaultRoute uses the command type itself as the registry key.
func DefaultRoute(cmdType domain.CommandType, params map[string]any) (string, map[string]any) {
	return cmdType.String(), params
}
