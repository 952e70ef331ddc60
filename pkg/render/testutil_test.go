package render

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/domrender/pkg/dom"
	"github.com/vango-dev/domrender/pkg/dom/memdom"
)

// syncBuffer is a log sink safe for handlers running on timer goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestRenderer(t *testing.T, config Config) (*Renderer, *memdom.Document, *syncBuffer) {
	t.Helper()
	logs := &syncBuffer{}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	doc := memdom.New()
	return New(doc, config), doc, logs
}

func single(t *testing.T, nodes []dom.Node) dom.Node {
	t.Helper()
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	return nodes[0]
}

func element(t *testing.T, nodes []dom.Node) *memdom.Element {
	t.Helper()
	el, ok := single(t, nodes).(*memdom.Element)
	if !ok {
		t.Fatalf("expected an element, got %T", nodes[0])
	}
	return el
}

func htmlOf(nodes []dom.Node) string {
	return memdom.RenderHTML(nodes...)
}

// events records handler calls that may arrive on timer goroutines.
type events struct {
	mu   sync.Mutex
	seen []any
}

func (e *events) handler(ev dom.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var detail any
	if me, ok := ev.(*memdom.Event); ok {
		detail = me.Detail
	}
	e.seen = append(e.seen, detail)
}

func (e *events) all() []any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]any(nil), e.seen...)
}

func (e *events) waitFor(t *testing.T, n int) []any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := e.all(); len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d handler calls; got %v", n, e.all())
	return nil
}

// settle gives timer goroutines a chance to run before asserting absence.
func settle() { time.Sleep(20 * time.Millisecond) }

func click(detail any) *memdom.Event {
	return memdom.NewEvent("click", detail)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
