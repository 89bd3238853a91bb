// ============================================================================
// texrefs - LaTeX Cross-Reference Extractor
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration with environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/texrefs/foundation/core/error"
	mdwlog "github.com/msto63/texrefs/foundation/core/log"
)

// FileName is the configuration file written by "texrefs init"
const FileName = "texrefs.toml"

// EnvPrefix prefixes all environment overrides
const EnvPrefix = "TEXREFS_"

// Config holds the complete application configuration
type Config struct {
	Extract ExtractConfig `toml:"extract" yaml:"extract"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`

	source string
}

// ExtractConfig controls which directives produce records
type ExtractConfig struct {
	IncludeBib bool `toml:"include_bib" yaml:"include_bib"`
}

// OutputConfig selects where and how records are written
type OutputConfig struct {
	Path   string `toml:"path" yaml:"path" comment:"empty writes to standard output"`
	Format string `toml:"format" yaml:"format" comment:"json, yaml or sqlite"`
}

// LogConfig configures the diagnostic log on stderr
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" comment:"trace, debug, info, warn, error or off"`
	Format string `toml:"format" yaml:"format" comment:"text, console, json or logfmt"`
}

// WatchConfig configures "texrefs watch"
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

var validFormats = []string{"json", "yaml", "sqlite"}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}

// Source returns the file the configuration was loaded from, "" for defaults
func (c *Config) Source() string {
	return c.source
}

// Load reads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "reading config file").
			WithCode(code).
			WithOperation("config").
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return nil, parseError(err, path)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, parseError(err, path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, mdwerror.Newf("unknown config key %q", undecoded[0].String()).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config").
				WithDetail("path", path)
		}
	}

	cfg.applyDefaults()
	cfg.source = path
	return &cfg, nil
}

func parseError(err error, path string) *mdwerror.Error {
	return mdwerror.Wrap(err, "parsing config file").
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config").
		WithDetail("path", path)
}

// SearchPaths returns the candidate config files in discovery order
func SearchPaths(workDir, homeDir string) []string {
	paths := []string{
		filepath.Join(workDir, FileName),
		filepath.Join(workDir, "texrefs.yaml"),
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".config", "texrefs", "config.toml"))
	}
	return paths
}

// Discover returns the first existing file of SearchPaths, or ""
func Discover(workDir, homeDir string) string {
	for _, p := range SearchPaths(workDir, homeDir) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LoadDefault resolves the configuration file and applies environment
// overrides. An explicit path must exist. Without one TEXREFS_CONFIG is
// used, then the search paths. No file at all yields the defaults.
// Callers apply their own overrides and then call Validate.
func LoadDefault(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		wd, _ := os.Getwd()
		home, _ := os.UserHomeDir()
		path = Discover(wd, home)
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values from TEXREFS_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "INCLUDE_BIB"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvPrefix+"INCLUDE_BIB", v, err)
		}
		c.Extract.IncludeBib = b
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT"); ok {
		c.Output.Path = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		c.Output.Format = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "WATCH_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(EnvPrefix+"WATCH_DEBOUNCE", v, err)
		}
		c.Watch.Debounce.Duration = d
	}
	return nil
}

func envError(name, value string, err error) *mdwerror.Error {
	return mdwerror.Wrap(err, fmt.Sprintf("invalid value for %s", name)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config").
		WithDetail("variable", name).
		WithDetail("value", value)
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	format := strings.ToLower(c.Output.Format)
	valid := false
	for _, f := range validFormats {
		if format == f {
			valid = true
			break
		}
	}
	if !valid {
		return invalid("output.format", c.Output.Format, "want one of "+strings.Join(validFormats, ", "))
	}
	if format == "sqlite" && c.Output.Path == "" {
		return invalid("output.path", "", "sqlite output needs a database path")
	}
	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format, err.Error())
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	return nil
}

func invalid(key, value, reason string) *mdwerror.Error {
	return mdwerror.Newf("invalid %s %q: %s", key, value, reason).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config").
		WithDetail("key", key)
}

// WriteTOML encodes the configuration as TOML
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return mdwerror.Wrap(err, "encoding config").
			WithCode(mdwerror.CodeWriteFailed).
			WithOperation("config")
	}
	return nil
}

// WriteDefault writes the default configuration to dir/texrefs.toml.
// An existing file is only replaced when force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, mdwerror.Newf("%s already exists", path).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config").
			WithDetail("path", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, mdwerror.Wrap(err, "creating config directory").
			WithCode(mdwerror.CodeWriteFailed).
			WithDetail("path", dir)
	}

	var buf bytes.Buffer
	buf.WriteString("# texrefs configuration\n\n")
	if err := Default().WriteTOML(&buf); err != nil {
		return path, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, mdwerror.Wrap(err, "writing config file").
			WithCode(mdwerror.CodeWriteFailed).
			WithDetail("path", path)
	}
	return path, nil
}
