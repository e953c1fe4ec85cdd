package adapter

import (
	"regexp"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// MessageAdapter converts console lines and relay messages into commands.
type MessageAdapter struct {
	prefix string
}

func NewMessageAdapter(prefix string) *MessageAdapter {
	return &MessageAdapter{prefix: prefix}
}

func (ma *MessageAdapter) Prefix() string {
	return ma.prefix
}

// ParseLine handles one line typed at the console, where no prefix is needed.
func (ma *MessageAdapter) ParseLine(line string) *domain.ParsedCommand {
	text := sanitize(line)
	if text == "" {
		return ma.command(domain.CommandEmpty, nil, line)
	}

	word := strings.ToLower(text)
	if ma.isExitCommand(word) {
		return ma.command(domain.CommandExit, nil, text)
	}
	if ma.isHelpCommand(word) {
		return ma.command(domain.CommandHelp, nil, text)
	}

	return ma.ask(text, text)
}

// ParseMessage handles a chat message, which must start with the configured prefix.
func (ma *MessageAdapter) ParseMessage(message string) *domain.ParsedCommand {
	text := strings.TrimSpace(message)
	if text != "" && text == strings.TrimSpace(ma.prefix) {
		return ma.command(domain.CommandEmpty, nil, text)
	}
	if text == "" || !strings.HasPrefix(text, ma.prefix) {
		return ma.command(domain.CommandUnknown, nil, text)
	}

	commandText := sanitize(text[len(ma.prefix):])
	if commandText == "" {
		return ma.command(domain.CommandEmpty, nil, text)
	}

	parts := strings.Fields(commandText)
	first := strings.ToLower(parts[0])

	if len(parts) == 1 && ma.isHelpCommand(first) {
		return ma.command(domain.CommandHelp, nil, text)
	}
	if ma.isAskCommand(first) && len(parts) > 1 {
		return ma.ask(strings.Join(parts[1:], " "), text)
	}

	return ma.ask(commandText, text)
}

func (ma *MessageAdapter) isExitCommand(cmd string) bool {
	return util.Contains([]string{"exit", "quit", "bye"}, cmd)
}

func (ma *MessageAdapter) isHelpCommand(cmd string) bool {
	return util.Contains([]string{"help", "/help", "commands"}, cmd)
}

func (ma *MessageAdapter) isAskCommand(cmd string) bool {
	return util.Contains([]string{"ask", "q"}, cmd)
}

func (ma *MessageAdapter) ask(question, raw string) *domain.ParsedCommand {
	return ma.command(domain.CommandAsk, map[string]any{"question": question}, raw)
}

func (ma *MessageAdapter) command(t domain.CommandType, params map[string]any, raw string) *domain.ParsedCommand {
	if params == nil {
		params = make(map[string]any)
	}
	return &domain.ParsedCommand{
		Type:       t,
		Params:     params,
		RawMessage: raw,
	}
}

func sanitize(input string) string {
	withoutControl := controlCharsPattern.ReplaceAllString(input, " ")
	normalized := strings.TrimSpace(whitespacePattern.ReplaceAllString(withoutControl, " "))
	return util.PrefixRunes(normalized, constants.InputLimits.MaxQueryLength)
}
