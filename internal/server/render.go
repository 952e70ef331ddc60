package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/domrender/internal/errors"
	"github.com/vango-dev/domrender/internal/loader"
	"github.com/vango-dev/domrender/pkg/dom/memdom"
	"github.com/vango-dev/domrender/pkg/render"
)

// renderResponse is the JSON form of a /render result.
type renderResponse struct {
	HTML  string `json:"html"`
	Nodes int    `json:"nodes"`
}

// handleRender decodes the posted document, renders it into a fresh
// in-memory document and writes the resulting markup.
//
// The format comes from the ?format= query or the Content-Type header.
// ?defaultTag= overrides the configured default element kind. Clients
// asking for application/json get {"html", "nodes"}; everyone else gets
// text/html.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "domrender.render",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", "/render"),
		),
	)
	defer span.End()

	fail := func(err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, err)
	}

	format, err := requestFormat(r)
	if err != nil {
		fail(err)
		return
	}
	span.SetAttributes(attribute.String("domrender.format", string(format)))

	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	doc, err := loader.Decode(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err = errors.New("E201").Wrap(err)
		} else if errors.HasCode(err, "E100") {
			err = errors.New("E200").Wrap(errors.FromError(err, "E100").Wrapped)
		}
		fail(err)
		return
	}

	defaultTag := s.cfg.Render.DefaultTag
	if tag := r.URL.Query().Get("defaultTag"); tag != "" {
		defaultTag = tag
	}

	mem := memdom.New()
	renderer := render.New(mem, render.Config{
		DefaultTag: defaultTag,
		Logger:     s.logger,
		Metrics:    s.metrics,
		Context:    ctx,
	})
	defer renderer.Abort()

	nodes := renderer.Render(doc)
	markup := memdom.RenderHTML(nodes...)
	span.SetAttributes(attribute.Int("domrender.nodes", len(nodes)))
	span.SetStatus(codes.Ok, "")

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, renderResponse{HTML: markup, Nodes: len(nodes)})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markup))
}

func requestFormat(r *http.Request) (loader.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return loader.ParseFormat(name)
	}
	return loader.FormatFromContentType(r.Header.Get("Content-Type"))
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeError writes err as a coded JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	re := errors.FromError(err, "E200")
	status := errors.StatusCode(re)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render request failed", "code", re.Code, "error", re.FormatCompact())
	} else {
		s.logger.Debug("render request rejected", "code", re.Code, "error", re.FormatCompact())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(re.FormatJSON()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
