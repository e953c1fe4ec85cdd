package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
)

const (
	greetingTitle = "Wikipedia answer bot"
	greetingHint  = "Ask me anything! Type 'exit' to quit."
	goodbyeText   = "Goodbye!"
	emptyLineText = "Please type a question!"
)

var helpExamples = []string{
	"What is the tallest mountain?",
	"Who invented the telephone?",
	"When was the Eiffel Tower built?",
	"How tall is Mount Everest?",
}

// ResponseFormatter renders answers and fixed bot replies as text.
type ResponseFormatter struct {
	prefix string
}

// NewResponseFormatter creates a formatter. prefix is shown in help examples; the
// interactive console uses an empty prefix.
func NewResponseFormatter(prefix string) *ResponseFormatter {
	return &ResponseFormatter{prefix: prefix}
}

// FormatAnswer renders the Topic/Confidence block. Error answers are rendered as their message only.
func (f *ResponseFormatter) FormatAnswer(answer *domain.Answer) string {
	if answer == nil {
		return f.FormatError("no answer was produced")
	}
	if answer.IsError() {
		return answer.Body
	}

	rendered, err := render("answer", answer)
	if err != nil {
		return f.fallbackAnswer(answer)
	}
	return rendered
}

// FormatHelp lists usage examples.
func (f *ResponseFormatter) FormatHelp(interactive bool) string {
	rendered, err := render("help", struct {
		Prefix      string
		Examples    []string
		Interactive bool
	}{
		Prefix:      f.prefix,
		Examples:    helpExamples,
		Interactive: interactive,
	})
	if err != nil {
		return greetingHint
	}
	return rendered
}

func (f *ResponseFormatter) FormatError(message string) string {
	return fmt.Sprintf("An error occurred: %s", message)
}

func (f *ResponseFormatter) Greeting() string {
	return greetingTitle + "\n" + greetingHint
}

func (f *ResponseFormatter) Goodbye() string {
	return goodbyeText
}

func (f *ResponseFormatter) EmptyInput() string {
	return emptyLineText
}

func (f *ResponseFormatter) fallbackAnswer(answer *domain.Answer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\nConfidence: %s\n\n%s", answer.Title, answer.Confidence, answer.Body)
	if answer.SourceURL != "" {
		fmt.Fprintf(&sb, "\n\nSource: %s", answer.SourceURL)
	}
	if len(answer.Related) > 0 {
		if answer.SourceURL == "" {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "\nRelated topics: %s", strings.Join(answer.Related, ", "))
	}
	return sb.String()
}
