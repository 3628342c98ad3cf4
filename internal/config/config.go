package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oukeidos/tunelate/internal/files"
)

//go:embed sample_config.toml
var sampleConfig string

// API points at the primary lyrics backend.
type API struct {
	BaseURL string `toml:"base_url" yaml:"base_url"`
}

type Google struct {
	APIKey   string `toml:"api_key" yaml:"api_key"`
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
}

type Libre struct {
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	APIKey   string `toml:"api_key" yaml:"api_key"`
}

// LLM holds the settings shared by the model-backed providers.
type LLM struct {
	APIKey string `toml:"api_key" yaml:"api_key"`
	Model  string `toml:"model" yaml:"model"`
}

// Providers lists the translation providers in fallback order and their
// settings.
type Providers struct {
	Order  []string `toml:"order" yaml:"order"`
	Google Google   `toml:"google" yaml:"google"`
	Libre  Libre    `toml:"libre" yaml:"libre"`
	Gemini LLM      `toml:"gemini" yaml:"gemini"`
	OpenAI LLM      `toml:"openai" yaml:"openai"`
}

// Limits are measured in characters (Unicode code points).
type Limits struct {
	MaxTextLength int `toml:"max_text_length" yaml:"max_text_length"`
	MaxChunkSize  int `toml:"max_chunk_size" yaml:"max_chunk_size"`
}

type Timeouts struct {
	TranslateSeconds int `toml:"translate_seconds" yaml:"translate_seconds"`
	ExtractSeconds   int `toml:"extract_seconds" yaml:"extract_seconds"`
}

type Retry struct {
	MaxRetries     int `toml:"max_retries" yaml:"max_retries"`
	InitialDelayMS int `toml:"initial_delay_ms" yaml:"initial_delay_ms"`
}

type Logging struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Config encapsulates all configuration values for tunelate.
//
// Configuration sections:
//   - API: lyrics backend base URL
//   - Providers: fallback order plus per-provider credentials and endpoints
//   - Limits: request and chunk sizes
//   - Timeouts: per-call network deadlines
//   - Retry: extraction retry policy
//   - Logging: level and optional JSONL file
type Config struct {
	API       API       `toml:"api" yaml:"api"`
	Providers Providers `toml:"providers" yaml:"providers"`
	Limits    Limits    `toml:"limits" yaml:"limits"`
	Timeouts  Timeouts  `toml:"timeouts" yaml:"timeouts"`
	Retry     Retry     `toml:"retry" yaml:"retry"`
	Logging   Logging   `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/tunelate/config.toml")
}

// Load locates and parses a configuration file, overlays the process
// environment, then normalizes and validates the result. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		if err := decodeFile(resolvedPath, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, "", false, err
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse config: %w", err)
		}
	default:
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	candidates := []string{defaultPath}
	for _, name := range []string{"tunelate.toml", "tunelate.yaml", "tunelate.yml"} {
		projectPath, err := filepath.Abs(name)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, projectPath)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}

	return defaultPath, false, nil
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location,
// replacing any existing file.
func CreateSample(path string) error {
	if err := files.AtomicWrite(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// TranslateTimeout is the deadline for one provider call.
func (c *Config) TranslateTimeout() time.Duration {
	return time.Duration(c.Timeouts.TranslateSeconds) * time.Second
}

// ExtractTimeout is the deadline for one lyrics extraction call.
func (c *Config) ExtractTimeout() time.Duration {
	return time.Duration(c.Timeouts.ExtractSeconds) * time.Second
}

func (c *Config) RetryInitialDelay() time.Duration {
	return time.Duration(c.Retry.InitialDelayMS) * time.Millisecond
}

// Redacted returns a copy with credentials masked, for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.Providers.Order = append([]string(nil), c.Providers.Order...)
	c.Providers.Google.APIKey = mask(c.Providers.Google.APIKey)
	c.Providers.Libre.APIKey = mask(c.Providers.Libre.APIKey)
	c.Providers.Gemini.APIKey = mask(c.Providers.Gemini.APIKey)
	c.Providers.OpenAI.APIKey = mask(c.Providers.OpenAI.APIKey)
	return c
}

// EncodeTOML renders c as TOML.
func (c Config) EncodeTOML() ([]byte, error) {
	return toml.Marshal(c)
}

// EncodeYAML renders c as YAML.
func (c Config) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
