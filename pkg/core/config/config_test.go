package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "300ms", 300 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Extract.IncludeBib {
		t.Error("Extract.IncludeBib = true, want false")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.Path != "" {
		t.Errorf("Output.Path = %q, want empty", cfg.Output.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Watch.Debounce.Duration != 300*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 300ms", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "texrefs.toml", `
[extract]
include_bib = true

[output]
path = "refs.json"

[watch]
debounce = "1s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Extract.IncludeBib {
		t.Error("Extract.IncludeBib = false, want true")
	}
	if cfg.Output.Path != "refs.json" {
		t.Errorf("Output.Path = %q, want refs.json", cfg.Output.Path)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want default json", cfg.Output.Format)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}
	if cfg.Source() != path {
		t.Errorf("Source() = %q, want %q", cfg.Source(), path)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "texrefs.yaml", `
extract:
  include_bib: true
output:
  format: yaml
log:
  level: debug
watch:
  debounce: 50ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Extract.IncludeBib || cfg.Output.Format != "yaml" || cfg.Log.Level != "debug" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Watch.Debounce.Duration != 50*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 50ms", cfg.Watch.Debounce)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		path     string
		wantCode mdwerror.Code
	}{
		{"missing", filepath.Join(dir, "none.toml"), mdwerror.CodeNotFound},
		{"bad toml", writeFile(t, dir, "bad.toml", "[extract\n"), mdwerror.CodeInvalidConfig},
		{"unknown toml key", writeFile(t, dir, "unknown.toml", "[output]\ncolour = \"red\"\n"), mdwerror.CodeInvalidConfig},
		{"unknown yaml key", writeFile(t, dir, "unknown.yaml", "output:\n  colour: red\n"), mdwerror.CodeInvalidConfig},
		{"bad duration", writeFile(t, dir, "dur.toml", "[watch]\ndebounce = \"soon\"\n"), mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("Load() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TEXREFS_INCLUDE_BIB":    "true",
		"TEXREFS_OUTPUT":         "out.yaml",
		"TEXREFS_FORMAT":         "yaml",
		"TEXREFS_LOG_LEVEL":      "debug",
		"TEXREFS_LOG_FORMAT":     "json",
		"TEXREFS_WATCH_DEBOUNCE": "2s",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if !cfg.Extract.IncludeBib || cfg.Output.Path != "out.yaml" || cfg.Output.Format != "yaml" ||
		cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Watch.Debounce.Duration != 2*time.Second {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, key := range []string{"TEXREFS_INCLUDE_BIB", "TEXREFS_WATCH_DEBOUNCE"} {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return "maybe", true
				}
				return "", false
			}
			err := Default().ApplyEnv(lookup)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("ApplyEnv() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"yaml", func(c *Config) { c.Output.Format = "YAML" }, false},
		{"sqlite with path", func(c *Config) { c.Output.Format = "sqlite"; c.Output.Path = "refs.db" }, false},
		{"sqlite without path", func(c *Config) { c.Output.Format = "sqlite" }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "csv" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce.Duration = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()

	if got := Discover(work, home); got != "" {
		t.Errorf("Discover() = %q, want empty", got)
	}

	homeCfg := filepath.Join(home, ".config", "texrefs", "config.toml")
	if err := os.MkdirAll(filepath.Dir(homeCfg), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Dir(homeCfg), "config.toml", "")
	if got := Discover(work, home); got != homeCfg {
		t.Errorf("Discover() = %q, want %q", got, homeCfg)
	}

	yamlCfg := writeFile(t, work, "texrefs.yaml", "")
	if got := Discover(work, home); got != yamlCfg {
		t.Errorf("Discover() = %q, want %q", got, yamlCfg)
	}

	tomlCfg := writeFile(t, work, "texrefs.toml", "")
	if got := Discover(work, home); got != tomlCfg {
		t.Errorf("Discover() = %q, want %q", got, tomlCfg)
	}
}

func TestLoadDefaultExplicit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.toml", "[log]\nlevel = \"error\"\n")
	t.Setenv("TEXREFS_LOG_LEVEL", "info")

	cfg, err := LoadDefault(path)
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want env override info", cfg.Log.Level)
	}
}

func TestLoadDefaultFromEnvPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "env.toml", "[extract]\ninclude_bib = true\n")
	t.Setenv("TEXREFS_CONFIG", path)

	cfg, err := LoadDefault("")
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if !cfg.Extract.IncludeBib {
		t.Error("Extract.IncludeBib = false, want true from TEXREFS_CONFIG file")
	}
}

func TestLoadDefaultMissingExplicit(t *testing.T) {
	if _, err := LoadDefault(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadDefault() with a missing explicit file returned no error")
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(written) error = %v", err)
	}
	if cfg.Watch.Debounce.Duration != 300*time.Millisecond || cfg.Output.Format != "json" {
		t.Errorf("written config = %+v", cfg)
	}

	if _, err := WriteDefault(dir, false); err == nil {
		t.Error("WriteDefault() over an existing file returned no error")
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Errorf("WriteDefault(force) error = %v", err)
	}
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML() error = %v", err)
	}
	out := buf.String()
	for _, s := range []string{"[extract]", "include_bib = false", `format = "json"`, `debounce = "300ms"`} {
		if !strings.Contains(out, s) {
			t.Errorf("WriteTOML() missing %q:\n%s", s, out)
		}
	}
}
