package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Render.DefaultTag != DefaultTag {
		t.Errorf("Render.DefaultTag = %q, want %q", cfg.Render.DefaultTag, DefaultTag)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Server.MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, DefaultMaxBodyBytes)
	}
	if cfg.Server.ReadTimeout.Std() != DefaultTimeout {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, DefaultTimeout)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != DefaultNamespace || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domrender.yaml")
	content := `# preview settings
render:
  defaultTag: section
server:
  addr: "127.0.0.1:9090"
  readTimeout: 2s
  writeTimeout: 1500
log:
  level: debug
metrics:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}

	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Render.DefaultTag != "section" {
		t.Errorf("Render.DefaultTag = %q", cfg.Render.DefaultTag)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Std() != 2*time.Second {
		t.Errorf("Server.ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout.Std() != 1500*time.Millisecond {
		t.Errorf("Server.WriteTimeout = %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("omitted Server.MaxBodyBytes should keep its default, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", level, err)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domrender.json")
	content := `{"server": {"maxBodyBytes": 2048, "readTimeout": "250ms"}, "log": {"format": "json"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Server.MaxBodyBytes != 2048 {
		t.Errorf("Server.MaxBodyBytes = %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Server.ReadTimeout.Std() != 250*time.Millisecond {
		t.Errorf("Server.ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "E141"},
		{"invalid json", write("bad.json", "not valid json"), "E120"},
		{"invalid yaml", write("bad.yaml", "server: [unclosed"), "E120"},
		{"unknown yaml field", write("unknown.yaml", "server:\n  port: 80\n"), "E120"},
		{"unknown json field", write("unknown.json", `{"dev": {}}`), "E120"},
		{"bad duration", write("dur.yaml", "server:\n  readTimeout: soon\n"), "E120"},
		{"bad level", write("level.yaml", "log:\n  level: loud\n"), "E121"},
		{"bad format", write("format.yaml", "log:\n  format: xml\n"), "E121"},
		{"negative body", write("body.yaml", "server:\n  maxBodyBytes: -1\n"), "E121"},
		{"bad metrics path", write("path.yaml", "metrics:\n  path: metrics\n"), "E121"},
		{"bad tag", write("tag.yaml", "render:\n  defaultTag: \"<div>\"\n"), "E121"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.HasPrefix(err.Error(), tt.code) {
				t.Errorf("expected %s error, got: %v", tt.code, err)
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domrender.yaml")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if err == nil || !strings.HasPrefix(err.Error(), "E141") {
		t.Fatalf("Load(empty dir) = %v, want E141", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "domrender.json"), []byte(`{"server": {"addr": ":1"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "domrender.yaml"), []byte("server:\n  addr: \":2\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":2" {
		t.Errorf("Load should prefer domrender.yaml, got addr %q", cfg.Server.Addr)
	}
}

func TestClearedValuesTakeDefaults(t *testing.T) {
	cfg, err := Parse([]byte("render:\n  defaultTag: \"\"\nmetrics:\n  path: \"\"\n"), false)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Render.DefaultTag != DefaultTag || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{`"10s"`, 10 * time.Second, false},
		{`"1m30s"`, 90 * time.Second, false},
		{`250`, 250 * time.Millisecond, false},
		{`"250"`, 250 * time.Millisecond, false},
		{`""`, 0, false},
		{`"later"`, 0, true},
		{`1.5`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && d.Std() != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, d, tt.want)
			}
		})
	}

	out, err := json.Marshal(Duration(3 * time.Second))
	if err != nil || string(out) != `"3s"` {
		t.Errorf("Marshal = %s, %v", out, err)
	}
}
