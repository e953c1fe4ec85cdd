package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"go.uber.org/zap"
)

type AskCommand struct {
	deps *Dependencies
}

func NewAskCommand(deps *Dependencies) *AskCommand {
	return &AskCommand{deps: deps}
}

func (c *AskCommand) Name() string {
	return "ask"
}

func (c *AskCommand) Description() string {
	return "Answer a question from the encyclopedia"
}

func (c *AskCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Resolver == nil || c.deps.Formatter == nil || c.deps.SendMessage == nil {
		return fmt.Errorf("ask command dependencies not configured")
	}
	if cmdCtx == nil {
		return fmt.Errorf("command context is nil")
	}
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	logger := c.deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rawQuestion, _ := params["question"].(string)
	question := strings.TrimSpace(rawQuestion)
	if question == "" {
		return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.EmptyInput())
	}

	logger.Debug("Processing question",
		zap.String("turn_id", cmdCtx.TurnID),
		zap.String("room", cmdCtx.Room),
		zap.String("question", question),
	)

	answer := c.deps.Resolver.Resolve(ctx, question)
	if answer != nil && answer.IsError() {
		logger.Info("Question produced an error answer",
			zap.String("turn_id", cmdCtx.TurnID),
			zap.String("code", answer.Code),
		)
	}

	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatAnswer(answer))
}
