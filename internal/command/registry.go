package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
)

// ErrUnknownCommand is returned when dispatch targets an unregistered key.
var ErrUnknownCommand = errors.New("unknown command")

// Registry stores command handlers keyed by lowercase name. Aliases resolve to
// a canonical name.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[string]Command
	aliasKeys map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[string]Command),
		aliasKeys: make(map[string]string),
	}
}

func (r *Registry) Register(handler Command, aliases ...string) {
	if handler == nil {
		return
	}

	name := strings.ToLower(handler.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" && alias != name {
			r.aliasKeys[alias] = name
		}
	}
}

func (r *Registry) Execute(ctx context.Context, cmdCtx *domain.CommandContext, key string, params map[string]any) error {
	if r == nil {
		return fmt.Errorf("command registry is nil")
	}

	handler := r.getHandler(key)
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}

	return handler.Execute(ctx, cmdCtx, params)
}

func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Names lists canonical command names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) getHandler(key string) Command {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if handler, ok := r.handlers[key]; ok {
		return handler
	}
	if canonical, ok := r.aliasKeys[key]; ok {
		return r.handlers[canonical]
	}
	return nil
}
