// Package config loads the settings shared by the postformat binaries.
// Values come from defaults, then an optional YAML file, then POSTFORMAT_*
// environment variables; command-line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POSTFORMAT_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full binary configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Registry  RegistryConfig  `yaml:"registry"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Media     MediaConfig     `yaml:"media"`
	Server    ServerConfig    `yaml:"server"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// RegistryConfig points at extra content-type definitions merged over the
// built-ins. Path may be a file or a directory.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

type ClipboardConfig struct {
	AckDelay time.Duration `yaml:"ackDelay"`
}

type MediaConfig struct {
	MaxBytes int64 `yaml:"maxBytes"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	BasePath       string   `yaml:"basePath"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info"},
		Clipboard: ClipboardConfig{AckDelay: clipboard.DefaultAckDelay},
		Media:     MediaConfig{MaxBytes: session.DefaultMaxMediaBytes},
		Server: ServerConfig{
			Addr:           ":8080",
			BasePath:       "/api",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overlays POSTFORMAT_* variables resolved through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sLOG_DEVELOPMENT: %w", EnvPrefix, err)
		}
		cfg.Log.Development = b
	}
	if v, ok := lookup(EnvPrefix + "REGISTRY_PATH"); ok {
		cfg.Registry.Path = v
	}
	if v, ok := lookup(EnvPrefix + "CLIPBOARD_ACK_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sCLIPBOARD_ACK_DELAY: %w", EnvPrefix, err)
		}
		cfg.Clipboard.AckDelay = d
	}
	if v, ok := lookup(EnvPrefix + "MEDIA_MAX_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sMEDIA_MAX_BYTES: %w", EnvPrefix, err)
		}
		cfg.Media.MaxBytes = n
	}
	if v, ok := lookup(EnvPrefix + "SERVER_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvPrefix + "SERVER_BASE_PATH"); ok {
		cfg.Server.BasePath = v
	}
	if v, ok := lookup(EnvPrefix + "SERVER_ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = SplitList(v)
	}
	return nil
}

// Validate checks the values the binaries cannot recover from.
func (c Config) Validate() error {
	var problems []string
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q", c.Log.Level))
	}
	if c.Clipboard.AckDelay <= 0 {
		problems = append(problems, "clipboard.ackDelay must be positive")
	}
	if c.Media.MaxBytes <= 0 {
		problems = append(problems, "media.maxBytes must be positive")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
