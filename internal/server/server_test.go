package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/domrender/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(cfg,
		WithLogger(logger),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
	)
	return s, &logs
}

func post(t *testing.T, h http.Handler, target, contentType string, body []byte, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected ok, got %s", rec.Body.String())
	}
}

func TestRenderJSONDocument(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := []byte(`{"tag": "ul", "class": " menu ", "children": [{"tag": "li", "text": "a & b"}, "c", 2]}`)

	rec := post(t, s.Handler(), "/render", "application/json", body, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	want := `<ul class="menu"><li>a &amp; b</li>c2</ul>`
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestRenderTopLevelList(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := post(t, s.Handler(), "/render", "", []byte(`["x", {"text": "y"}, [1, 2]]`), "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Nodes != 3 {
		t.Errorf("Nodes = %d, want 3", resp.Nodes)
	}
	if resp.HTML != `x<div>y</div><div>12</div>` {
		t.Errorf("HTML = %q", resp.HTML)
	}
}

func TestRenderYAMLAndMsgPack(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := post(t, s.Handler(), "/render?defaultTag=section", "application/yaml",
		[]byte("text: hi\nattr:\n  hidden: true\n  title: t\n"), "")
	if want := `<section hidden="" title="t">hi</section>`; rec.Body.String() != want {
		t.Errorf("yaml body = %q, want %q", rec.Body.String(), want)
	}

	packed, err := msgpack.Marshal(map[string]any{"tag": "b", "text": "packed"})
	if err != nil {
		t.Fatal(err)
	}
	rec = post(t, s.Handler(), "/render?format=msgpack", "application/octet-stream", packed, "")
	if want := `<b>packed</b>`; rec.Body.String() != want {
		t.Errorf("msgpack body = %q, want %q", rec.Body.String(), want)
	}
}

func TestRenderDocumentHandlersWarn(t *testing.T) {
	s, logs := newTestServer(t, nil)

	rec := post(t, s.Handler(), "/render", "application/json",
		[]byte(`{"tag": "button", "text": "go", "on": {"click": "save"}}`), "")
	if rec.Code != http.StatusOK || rec.Body.String() != `<button>go</button>` {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(logs.String(), "invalid event handler") {
		t.Errorf("expected a handler warning, logs: %s", logs.String())
	}
}

func TestRenderErrors(t *testing.T) {
	cfg := config.New()
	cfg.Server.MaxBodyBytes = 64
	s, _ := newTestServer(t, cfg)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad json", "/render", "application/json", `{"tag": `, http.StatusBadRequest, "E102"},
		{"unsupported type", "/render", "text/html", `<p>`, http.StatusUnsupportedMediaType, "E101"},
		{"unsupported format", "/render?format=toml", "", `x`, http.StatusUnsupportedMediaType, "E101"},
		{"too large", "/render", "application/json", `"` + strings.Repeat("x", 100) + `"`, http.StatusRequestEntityTooLarge, "E201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s.Handler(), tt.target, tt.contentType, []byte(tt.body), "")
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			var body struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %q", rec.Body.String())
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestRenderErrorLogged(t *testing.T) {
	s, logs := newTestServer(t, nil)

	rec := post(t, s.Handler(), "/render?format=toml", "", []byte(`x`), "")
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", rec.Code)
	}

	out := logs.String()
	for _, want := range []string{
		`msg="render request rejected"`,
		"code=E101",
		`error="E101: Unsupported document format`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/render", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	s := New(nil, WithRegistry(registry), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	post(t, s.Handler(), "/render", "application/json", []byte(`{"tag": "p", "children": ["a", "b"]}`), "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`domrender_render_nodes_total{kind="element"} 1`,
		`domrender_render_nodes_total{kind="text"} 2`,
		`domrender_render_aborts_total 1`,
		`domrender_http_request_duration_seconds_count{code="200",handler="render",method="post"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false
	s, _ := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if rec := post(t, s.Handler(), "/render", "", []byte(`"x"`), ""); rec.Body.String() != "x" {
		t.Errorf("render without metrics = %q", rec.Body.String())
	}
}

func TestRequestLogging(t *testing.T) {
	s, logs := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	for _, want := range []string{"component=server", "method=GET", "path=/healthz", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("request log missing %s: %s", want, out)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
