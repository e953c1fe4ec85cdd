package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/kapu/wiki-answer-bot-go/internal/command"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"go.uber.org/zap"
)

const (
	promptText  = "You: "
	replyPrefix = "Bot: "
	consoleRoom = "console"
	maxLineSize = 64 * 1024
)

// Console is the interactive turn loop over a line-oriented reader and writer.
type Console struct {
	in         io.Reader
	out        io.Writer
	adapter    *adapter.MessageAdapter
	formatter  *adapter.ResponseFormatter
	dispatcher command.Dispatcher
	logger     *zap.Logger
}

func NewConsole(in io.Reader, out io.Writer, resolver command.Answerer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	formatter := adapter.NewResponseFormatter("")
	c := &Console{
		in:        in,
		out:       out,
		adapter:   adapter.NewMessageAdapter(""),
		formatter: formatter,
		logger:    logger,
	}
	c.dispatcher = newDispatcher(&command.Dependencies{
		Resolver:    resolver,
		Formatter:   formatter,
		SendMessage: func(_, message string) error { return c.reply(message) },
		Interactive: true,
		Logger:      logger,
	})
	return c
}

// Run greets the user and answers lines until exit, end of input or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(c.out, c.formatter.Greeting()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprint(c.out, "\n"+promptText); err != nil {
			return err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			_, err := fmt.Fprintln(c.out, "\n"+c.formatter.Goodbye())
			return err
		}

		done, err := c.Turn(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Turn handles one input line and reports whether the conversation is over.
func (c *Console) Turn(ctx context.Context, line string) (bool, error) {
	parsed := c.adapter.ParseLine(line)

	switch parsed.Type {
	case domain.CommandExit:
		_, err := fmt.Fprintln(c.out, c.formatter.Goodbye())
		return true, err
	case domain.CommandEmpty:
		_, err := fmt.Fprintln(c.out, c.formatter.EmptyInput())
		return false, err
	}

	cmdCtx := domain.NewCommandContext(consoleRoom, "", line)
	if _, err := c.dispatcher.Publish(ctx, cmdCtx, command.EventFromParsed(parsed)); err != nil {
		c.logger.Error("Console turn failed", zap.String("turn_id", cmdCtx.TurnID), zap.Error(err))
		return false, c.reply(c.formatter.FormatError(err.Error()))
	}
	return false, nil
}

func (c *Console) reply(message string) error {
	_, err := fmt.Fprintf(c.out, "\n%s%s\n", replyPrefix, message)
	return err
}
