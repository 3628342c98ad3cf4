package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oukeidos/tunelate/internal/config"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	cfg, resolved, exists, err := config.LoadWithEnv("", envMap(nil))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if !strings.HasSuffix(resolved, filepath.Join(".config", "tunelate", "config.toml")) {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.API.BaseURL != "http://localhost:3001" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if got := strings.Join(cfg.Providers.Order, ","); got != "backend,google,libre" {
		t.Fatalf("unexpected provider order %q", got)
	}
	if cfg.Limits.MaxTextLength != 5000 || cfg.Limits.MaxChunkSize != 4000 {
		t.Fatalf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.TranslateTimeout() != 15*time.Second || cfg.ExtractTimeout() != 30*time.Second {
		t.Fatalf("unexpected timeouts %+v", cfg.Timeouts)
	}
	if cfg.Retry.MaxRetries != 3 || cfg.RetryInitialDelay() != time.Second {
		t.Fatalf("unexpected retry %+v", cfg.Retry)
	}
	if cfg.Providers.Libre.Endpoint != "https://libretranslate.com" {
		t.Fatalf("unexpected libre endpoint %q", cfg.Providers.Libre.Endpoint)
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunelate.toml")
	content := `
[api]
base_url = "https://lyrics.example.com/"

[providers]
order = ["Google", "libre", "google"]

[providers.google]
api_key = "file-key"

[limits]
max_chunk_size = 1200
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.LoadWithEnv(path, envMap(nil))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.API.BaseURL != "https://lyrics.example.com" {
		t.Fatalf("base url not normalized: %q", cfg.API.BaseURL)
	}
	if got := strings.Join(cfg.Providers.Order, ","); got != "google,libre" {
		t.Fatalf("order not normalized: %q", got)
	}
	if cfg.Providers.Google.APIKey != "file-key" {
		t.Fatalf("api key = %q", cfg.Providers.Google.APIKey)
	}
	if cfg.Limits.MaxChunkSize != 1200 || cfg.Limits.MaxTextLength != 5000 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunelate.yaml")
	content := `
providers:
  order: [libre, backend]
  libre:
    endpoint: http://localhost:5000/
timeouts:
  translate_seconds: 5
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.LoadWithEnv(path, envMap(nil))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := strings.Join(cfg.Providers.Order, ","); got != "libre,backend" {
		t.Fatalf("order = %q", got)
	}
	if cfg.Providers.Libre.Endpoint != "http://localhost:5000" {
		t.Fatalf("endpoint = %q", cfg.Providers.Libre.Endpoint)
	}
	if cfg.TranslateTimeout() != 5*time.Second || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad.toml": "[api]\nbase_urll = \"http://x\"\n",
		"bad.yaml": "api:\n  base_urll: http://x\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, _, _, err := config.LoadWithEnv(path, envMap(nil)); err == nil {
			t.Fatalf("%s: expected parse error for unknown field", name)
		}
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunelate.toml")
	if err := os.WriteFile(path, []byte("[providers.google]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.LoadWithEnv(path, envMap(map[string]string{
		"TUNELATE_API_BASE_URL":    "https://api.example.com",
		"TUNELATE_PROVIDERS":       "libre, google",
		"GOOGLE_TRANSLATE_API_KEY": "env-key",
		"LIBRETRANSLATE_URL":       "https://libre.example.com",
		"LIBRETRANSLATE_API_KEY":   "libre-key",
		"GEMINI_API_KEY":           "gem-key",
		"OPENAI_API_KEY":           "oai-key",
		"TUNELATE_TIMEOUT_SECONDS": "20",
		"TUNELATE_MAX_TEXT_LENGTH": "8000",
		"TUNELATE_MAX_CHUNK_SIZE":  "2000",
		"TUNELATE_LOG_LEVEL":       "warn",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Providers.Google.APIKey != "env-key" {
		t.Fatalf("expected env to win, got %q", cfg.Providers.Google.APIKey)
	}
	if got := strings.Join(cfg.Providers.Order, ","); got != "libre,google" {
		t.Fatalf("order = %q", got)
	}
	if cfg.API.BaseURL != "https://api.example.com" || cfg.Providers.Libre.Endpoint != "https://libre.example.com" {
		t.Fatalf("urls = %q %q", cfg.API.BaseURL, cfg.Providers.Libre.Endpoint)
	}
	if cfg.Providers.Libre.APIKey != "libre-key" || cfg.Providers.Gemini.APIKey != "gem-key" || cfg.Providers.OpenAI.APIKey != "oai-key" {
		t.Fatalf("keys not applied: %+v", cfg.Providers)
	}
	if cfg.Timeouts.TranslateSeconds != 20 || cfg.Limits.MaxTextLength != 8000 || cfg.Limits.MaxChunkSize != 2000 {
		t.Fatalf("numbers not applied: %+v %+v", cfg.Timeouts, cfg.Limits)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestEnvRejectsBadNumber(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"TUNELATE_MAX_CHUNK_SIZE": "big"}))
	if err == nil || !strings.Contains(err.Error(), "TUNELATE_MAX_CHUNK_SIZE") {
		t.Fatalf("expected named error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"unknown provider", func(c *config.Config) { c.Providers.Order = []string{"backend", "deepl"} }, "unknown provider"},
		{"bad base url", func(c *config.Config) { c.API.BaseURL = "localhost:3001" }, "api.base_url"},
		{"bad google endpoint", func(c *config.Config) { c.Providers.Google.Endpoint = "ftp://x" }, "providers.google.endpoint"},
		{"negative limit", func(c *config.Config) { c.Limits.MaxChunkSize = -1 }, "limits.max_chunk_size"},
		{"negative retries", func(c *config.Config) { c.Retry.MaxRetries = -2 }, "retry.max_retries"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if parsed.API.BaseURL != config.Default().API.BaseURL {
		t.Fatalf("sample base url = %q", parsed.API.BaseURL)
	}
	if _, _, _, err := config.LoadWithEnv(path, envMap(nil)); err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
}

func TestRedactedMasksKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Google.APIKey = "AIzaSecret"
	cfg.Providers.OpenAI.APIKey = "sk-secret"

	red := cfg.Redacted()
	out, err := red.EncodeYAML()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "AIzaSecret") || strings.Contains(string(out), "sk-secret") {
		t.Fatalf("keys leaked: %s", out)
	}
	var back config.Config
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	if back.Providers.Gemini.APIKey != "" {
		t.Fatalf("unset key should stay empty, got %q", back.Providers.Gemini.APIKey)
	}
	if cfg.Providers.Google.APIKey != "AIzaSecret" {
		t.Fatal("Redacted mutated the original")
	}
}
