package command

import (
	"context"
	"fmt"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Show usage and example questions"
}

func (c *HelpCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	if c.deps == nil || c.deps.Formatter == nil || c.deps.SendMessage == nil {
		return fmt.Errorf("help command dependencies not configured")
	}
	return c.deps.SendMessage(cmdCtx.Room, c.deps.Formatter.FormatHelp(c.deps.Interactive))
}
