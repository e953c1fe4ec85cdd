package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kapu/wiki-answer-bot-go/internal/adapter"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"go.uber.org/zap"
)

type fakeResolver struct {
	answer *domain.Answer
	calls  []string
}

func (f *fakeResolver) Resolve(_ context.Context, raw string) *domain.Answer {
	f.calls = append(f.calls, raw)
	return f.answer
}

type sentMessage struct {
	room    string
	message string
}

func newTestDeps(resolver Answerer) (*Dependencies, *[]sentMessage) {
	sent := []sentMessage{}
	deps := &Dependencies{
		Resolver:  resolver,
		Formatter: adapter.NewResponseFormatter("!wiki "),
		SendMessage: func(room, message string) error {
			sent = append(sent, sentMessage{room: room, message: message})
			return nil
		},
		Logger: zap.NewNop(),
	}
	return deps, &sent
}

func TestAskCommandSendsFormattedAnswer(t *testing.T) {
	resolver := &fakeResolver{answer: &domain.Answer{
		Title:      "Mount Everest",
		Body:       "Mount Everest is Earth's highest mountain above sea level.",
		Confidence: domain.ConfidenceHigh,
		SourceURL:  "https://en.wikipedia.org/wiki/Mount_Everest",
	}}
	deps, sent := newTestDeps(resolver)
	cmd := NewAskCommand(deps)

	cmdCtx := domain.NewCommandContext("room-1", "alice", "!wiki what is mount everest")
	if err := cmd.Execute(context.Background(), cmdCtx, map[string]any{"question": "  what is mount everest  "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolver.calls) != 1 || resolver.calls[0] != "what is mount everest" {
		t.Fatalf("expected trimmed question forwarded once, got %#v", resolver.calls)
	}
	if len(*sent) != 1 {
		t.Fatalf("expected one message, got %d", len(*sent))
	}
	msg := (*sent)[0]
	if msg.room != "room-1" {
		t.Fatalf("expected reply to room-1, got %q", msg.room)
	}
	if !strings.HasPrefix(msg.message, "Topic: Mount Everest\nConfidence: High\n\n") {
		t.Fatalf("unexpected answer layout: %q", msg.message)
	}
	if !strings.HasSuffix(msg.message, "Source: https://en.wikipedia.org/wiki/Mount_Everest") {
		t.Fatalf("expected source line at the end, got %q", msg.message)
	}
}

func TestAskCommandSendsErrorBodyOnly(t *testing.T) {
	resolver := &fakeResolver{answer: domain.NewErrorAnswer("no_results", "I couldn't find any information about that.")}
	deps, sent := newTestDeps(resolver)

	err := NewAskCommand(deps).Execute(context.Background(), domain.NewCommandContext("r", "s", "q"), map[string]any{"question": "zzzz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := (*sent)[0].message; got != "I couldn't find any information about that." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestAskCommandEmptyQuestion(t *testing.T) {
	resolver := &fakeResolver{}
	deps, sent := newTestDeps(resolver)

	err := NewAskCommand(deps).Execute(context.Background(), domain.NewCommandContext("r", "s", ""), map[string]any{"question": "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolver.calls) != 0 {
		t.Fatalf("resolver should not be called for blank input")
	}
	if got := (*sent)[0].message; got != "Please type a question!" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestAskCommandRequiresDependencies(t *testing.T) {
	err := NewAskCommand(&Dependencies{}).Execute(context.Background(), domain.NewCommandContext("r", "s", "q"), map[string]any{"question": "q"})
	if err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestHelpCommandUsesInteractiveWording(t *testing.T) {
	deps, sent := newTestDeps(&fakeResolver{})
	deps.Interactive = true

	if err := NewHelpCommand(deps).Execute(context.Background(), domain.NewCommandContext("r", "s", "help"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains((*sent)[0].message, "exit, quit, bye") {
		t.Fatalf("interactive help should list exit words: %q", (*sent)[0].message)
	}
}

func TestDispatcherRoutesParsedCommands(t *testing.T) {
	resolver := &fakeResolver{answer: &domain.Answer{Title: "Python", Body: "b", Confidence: domain.ConfidenceMedium}}
	deps, sent := newTestDeps(resolver)

	registry := NewRegistry()
	registry.Register(NewAskCommand(deps), "question")
	registry.Register(NewHelpCommand(deps), "?")
	dispatcher := NewDispatcher(registry, nil)

	adapt := adapter.NewMessageAdapter("!wiki ")
	events := []CommandEvent{
		EventFromParsed(adapt.ParseMessage("!wiki what is python")),
		EventFromParsed(adapt.ParseMessage("!wiki help")),
		EventFromParsed(adapt.ParseMessage("hello there")),
		EventFromParsed(nil),
	}

	executed, err := dispatcher.Publish(context.Background(), domain.NewCommandContext("r", "s", ""), events...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if executed != 2 {
		t.Fatalf("expected 2 executed commands, got %d", executed)
	}
	if len(*sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(*sent))
	}
	if len(resolver.calls) != 1 || resolver.calls[0] != "what is python" {
		t.Fatalf("unexpected resolver calls: %#v", resolver.calls)
	}
}

func TestDispatcherDoesNotShareParams(t *testing.T) {
	params := map[string]any{"question": "what is python"}
	mutating := &mutatingCommand{}
	registry := NewRegistry()
	registry.Register(mutating)

	dispatcher := NewDispatcher(registry, func(_ domain.CommandType, p map[string]any) (string, map[string]any) {
		return "mutate", p
	})
	_, err := dispatcher.Publish(context.Background(), domain.NewCommandContext("r", "s", ""), CommandEvent{Type: domain.CommandAsk, Params: params})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := params["__mutated__"]; ok {
		t.Fatalf("caller params were mutated")
	}
	if !mutating.called {
		t.Fatalf("command was not executed")
	}
}

func TestRegistryUnknownAndAliases(t *testing.T) {
	registry := NewRegistry()
	deps, _ := newTestDeps(&fakeResolver{})
	registry.Register(NewHelpCommand(deps), "?", "HELP")
	registry.Register(nil)

	if registry.Count() != 1 {
		t.Fatalf("expected one handler, got %d", registry.Count())
	}
	if names := registry.Names(); len(names) != 1 || names[0] != "help" {
		t.Fatalf("unexpected names: %#v", names)
	}
	if err := registry.Execute(context.Background(), domain.NewCommandContext("r", "s", ""), "?", nil); err != nil {
		t.Fatalf("alias should resolve: %v", err)
	}

	err := registry.Execute(context.Background(), domain.NewCommandContext("r", "s", ""), "nope", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestDispatcherStopsAtFirstFailure(t *testing.T) {
	resolver := &fakeResolver{answer: &domain.Answer{Title: "Python", Body: "b", Confidence: domain.ConfidenceMedium}}
	deps, sent := newTestDeps(resolver)

	registry := NewRegistry()
	registry.Register(NewHelpCommand(deps))
	registry.Register(NewAskCommand(deps))
	dispatcher := NewDispatcher(registry, func(ct domain.CommandType, p map[string]any) (string, map[string]any) {
		if ct == domain.CommandAsk {
			return "nowhere", p
		}
		return string(ct), p
	})

	executed, err := dispatcher.Publish(context.Background(), domain.NewCommandContext("r", "s", ""),
		CommandEvent{Type: domain.CommandHelp},
		CommandEvent{Type: domain.CommandExit},
		CommandEvent{Type: domain.CommandAsk, Params: map[string]any{"question": "python"}},
		CommandEvent{Type: domain.CommandHelp},
	)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected 1 executed command before the failure, got %d", executed)
	}
	if len(*sent) != 1 || len(resolver.calls) != 0 {
		t.Fatalf("unexpected side effects: sent=%d calls=%d", len(*sent), len(resolver.calls))
	}
}

type mutatingCommand struct {
	called bool
}

func (*mutatingCommand) Name() string        { return "mutate" }
func (*mutatingCommand) Description() string { return "test" }
func (m *mutatingCommand) Execute(_ context.Context, _ *domain.CommandContext, params map[string]any) error {
	m.called = true
	params["__mutated__"] = true
	return nil
}
