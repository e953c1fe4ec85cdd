package bot

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	mu     sync.Mutex
	answer *domain.Answer
	calls  []string
}

func (s *stubResolver) Resolve(_ context.Context, raw string) *domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, raw)
	return s.answer
}

func (s *stubResolver) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func everestAnswer() *domain.Answer {
	return &domain.Answer{
		Title:      "Mount Everest",
		Body:       "Mount Everest is Earth's highest mountain above sea level.",
		Confidence: domain.ConfidenceHigh,
		SourceURL:  "https://en.wikipedia.org/wiki/Mount_Everest",
	}
}

func TestConsoleConversation(t *testing.T) {
	resolver := &stubResolver{answer: everestAnswer()}
	in := strings.NewReader("what is mount everest\n\n   \nEXIT\nnever read\n")
	var out bytes.Buffer

	console := NewConsole(in, &out, resolver, zap.NewNop())
	require.NoError(t, console.Run(context.Background()))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Wikipedia answer bot\nAsk me anything! Type 'exit' to quit.\n"))
	assert.Contains(t, text, "\nYou: \nBot: Topic: Mount Everest\nConfidence: High\n\n")
	assert.Contains(t, text, "Source: https://en.wikipedia.org/wiki/Mount_Everest\n")
	assert.Equal(t, 2, strings.Count(text, "Please type a question!\n"))
	assert.True(t, strings.HasSuffix(text, "You: Goodbye!\n"))
	assert.Equal(t, []string{"what is mount everest"}, resolver.Calls())
}

func TestConsoleEndOfInputSaysGoodbye(t *testing.T) {
	resolver := &stubResolver{answer: everestAnswer()}
	var out bytes.Buffer

	require.NoError(t, NewConsole(strings.NewReader(""), &out, resolver, nil).Run(context.Background()))
	assert.True(t, strings.HasSuffix(out.String(), "You: \nGoodbye!\n"))
	assert.Empty(t, resolver.Calls())
}

func TestConsoleTurn(t *testing.T) {
	cases := []struct {
		line     string
		done     bool
		contains string
		asked    bool
	}{
		{line: "quit", done: true, contains: "Goodbye!"},
		{line: "Bye", done: true, contains: "Goodbye!"},
		{line: "", contains: "Please type a question!"},
		{line: "help", contains: "exit, quit, bye"},
		{line: "who is ada lovelace", contains: "Bot: I couldn't find anything related to that query.", asked: true},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			resolver := &stubResolver{answer: domain.NewErrorAnswer("NO_RESULTS", "I couldn't find anything related to that query.")}
			var out bytes.Buffer
			console := NewConsole(strings.NewReader(""), &out, resolver, zap.NewNop())

			done, err := console.Turn(context.Background(), tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.done, done)
			assert.Contains(t, out.String(), tc.contains)
			assert.Equal(t, tc.asked, len(resolver.Calls()) == 1)
		})
	}
}

func TestConsoleStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewConsole(strings.NewReader("what is python\n"), &out, &stubResolver{}, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
