// Package loader decodes vnode documents into the generic values accepted
// by vnode.From: maps with the descriptor keys, lists, strings, numbers,
// booleans and null.
package loader

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domrender/internal/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgPack Format = "msgpack"
)

// ParseFormat resolves a format name or file extension.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk", "mp":
		return FormatMsgPack, nil
	}
	return "", errors.New("E101").
		WithDetail(fmt.Sprintf("%q is not json, yaml or msgpack", name))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New("E101").
			WithDetail(path + " has no file extension").
			WithSuggestion("Pass --format json, yaml or msgpack")
	}
	return ParseFormat(ext)
}

// FormatFromContentType picks the format from an HTTP Content-Type. An
// empty content type means JSON.
func FormatFromContentType(contentType string) (Format, error) {
	if contentType == "" {
		return FormatJSON, nil
	}
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.New("E101").Wrap(err)
	}
	switch media {
	case "application/json", "text/json":
		return FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return FormatMsgPack, nil
	}
	return "", errors.New("E101").
		WithDetail(fmt.Sprintf("content type %q is not supported", media))
}

// LoadFile reads and decodes the document at path. An empty format is
// taken from the extension.
func LoadFile(path string, format Format) (any, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}

	doc, err := DecodeBytes(data, format)
	if err != nil {
		var re *errors.RenderError
		if stderrors.As(err, &re) {
			if line, col, ok := errorPosition(data, re.Wrapped); ok {
				re.WithLocation(path, line, col)
			}
		}
		return nil, err
	}
	return doc, nil
}

// Decode reads one document from r.
func Decode(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}
	return DecodeBytes(data, format)
}

// DecodeBytes decodes one document. Map keys are normalized to strings
// and nested values to []any and map[string]any.
func DecodeBytes(data []byte, format Format) (any, error) {
	var (
		doc any
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatMsgPack:
		doc, err = decodeMsgPack(data)
	default:
		_, err = ParseFormat(string(format))
		return nil, err
	}
	if err != nil {
		return nil, errors.New("E102").
			WithDetail(fmt.Sprintf("The document is not valid %s.", format)).
			Wrap(err)
	}
	return normalize(doc), nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stderrors.New("unexpected data after the document")
	}
	return doc, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeMsgPack(data []byte) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	doc, err := dec.DecodeInterface()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// normalize rewrites decoder-specific containers into the shapes vnode
// descriptors use.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalize(item)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range x {
			x[i] = normalize(item)
		}
		return x
	}
	return v
}

// errorPosition reports the 1-based line and column a decode error points at.
func errorPosition(data []byte, err error) (int, int, bool) {
	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		line, col := offsetPosition(data, syntax.Offset)
		return line, col, true
	}
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		line, col := offsetPosition(data, typeErr.Offset)
		return line, col, true
	}
	if err != nil {
		var line int
		if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil && line > 0 {
			return line, 0, true
		}
	}
	return 0, 0, false
}

func offsetPosition(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
