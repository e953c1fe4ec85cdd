package command

import (
	"context"
	"maps"

	"github.com/kapu/wiki-answer-bot-go/internal/domain"
)

// RouteFunc picks the registry key for an event and may rewrite its params.
type RouteFunc func(domain.CommandType, map[string]any) (string, map[string]any)

// inOrderDispatcher hands each event to the registry one after another. Control
// events (exit, empty, unknown) belong to the caller's loop and are passed over.
type inOrderDispatcher struct {
	registry *Registry
	route    RouteFunc
}

// NewDispatcher returns a Dispatcher over registry. A nil route uses DefaultRoute.
func NewDispatcher(registry *Registry, route RouteFunc) Dispatcher {
	if route == nil {
		route = DefaultRoute
	}
	return &inOrderDispatcher{registry: registry, route: route}
}

// Publish stops at the first failing command and reports how many ran before it.
func (d *inOrderDispatcher) Publish(ctx context.Context, cmdCtx *domain.CommandContext, events ...CommandEvent) (int, error) {
	if d == nil || d.registry == nil {
		return 0, nil
	}

	ran := 0
	for _, event := range events {
		if isControl(event.Type) {
			continue
		}
		// handlers get their own copy so they cannot leak edits back to the caller
		key, params := d.route(event.Type, ownParams(event.Params))
		if err := d.registry.Execute(ctx, cmdCtx, key, params); err != nil {
			return ran, err
		}
		ran++
	}
	return ran, nil
}

func isControl(t domain.CommandType) bool {
	return t == domain.CommandUnknown || t == domain.CommandEmpty || t == domain.CommandExit
}

func ownParams(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	maps.Copy(dst, src)
	return dst
}
