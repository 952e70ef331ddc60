package render

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/vango-dev/domrender/pkg/dom"
)

// DefaultTag is the element kind used when a vnode names none.
const DefaultTag = "div"

// RenderHook observes each element after its content and listeners are in
// place. The hook must not block; rendering waits for it.
type RenderHook interface {
	OnRender(ref any, el dom.Element)
}

// RenderHookFunc adapts a function to RenderHook.
type RenderHookFunc func(ref any, el dom.Element)

// OnRender implements RenderHook.
func (f RenderHookFunc) OnRender(ref any, el dom.Element) {
	f(ref, el)
}

// Config configures a Renderer.
type Config struct {
	// Hooks is called once per rendered element. Optional.
	Hooks RenderHook

	// DefaultTag replaces an empty vnode tag. Defaults to "div".
	DefaultTag string

	// Logger receives handler warnings.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Clock drives the debounce and throttle adapters.
	// If nil, the wall clock is used.
	Clock clock.Clock

	// Metrics records render counters. Optional.
	Metrics *Metrics

	// Context is the parent of every signal the renderer creates.
	// If nil, context.Background() is used.
	Context context.Context
}

func (c Config) withDefaults() Config {
	if c.DefaultTag == "" {
		c.DefaultTag = DefaultTag
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Context == nil {
		c.Context = context.Background()
	}
	return c
}
