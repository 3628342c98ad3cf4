package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/oukeidos/tunelate/internal/prompt"
)

var envKeys = []string{
	"TUNELATE_API_BASE_URL",
	"TUNELATE_PROVIDERS",
	"GOOGLE_TRANSLATE_API_KEY",
	"GOOGLE_TRANSLATE_ENDPOINT",
	"LIBRETRANSLATE_URL",
	"LIBRETRANSLATE_API_KEY",
	"GEMINI_API_KEY",
	"OPENAI_API_KEY",
	"TUNELATE_TIMEOUT_SECONDS",
	"TUNELATE_MAX_TEXT_LENGTH",
	"TUNELATE_MAX_CHUNK_SIZE",
	"TUNELATE_LOG_LEVEL",
}

// isolate clears the environment overlay, stubs the keychain and the
// overwrite prompt, and returns a config path inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TUNELATE_LOG_LEVEL", "error")

	prevGetKey := getKey
	prevConfirmer := confirmer
	getKey = func(string) (string, error) { return "", nil }
	confirmer = func() prompt.Confirmer {
		return prompt.Confirmer{In: strings.NewReader(""), IsInteractive: func() bool { return false }}
	}
	t.Cleanup(func() {
		getKey = prevGetKey
		confirmer = prevConfirmer
	})

	return filepath.Join(t.TempDir(), "tunelate.toml")
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// fakeAPI serves the lyrics backend endpoints.
type fakeAPI struct {
	server        *httptest.Server
	translateHits atomic.Int32
	extractHits   atomic.Int32

	translate func(w http.ResponseWriter, body map[string]string)
	extract   func(w http.ResponseWriter, hit int32)
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		translate: func(w http.ResponseWriter, body map[string]string) {
			writeEnvelope(w, http.StatusOK, map[string]any{
				"translatedText":   "[" + body["targetLanguage"] + "] " + body["text"],
				"detectedLanguage": "en",
			})
		},
		extract: func(w http.ResponseWriter, _ int32) {
			writeEnvelope(w, http.StatusOK, map[string]any{
				"lyrics":   "Hello world",
				"title":    "Song",
				"artist":   "Band",
				"duration": 200,
				"videoId":  "dQw4w9WgXcQ",
			})
		},
	}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(data, &body)
		switch r.URL.Path {
		case "/api/translate":
			api.translateHits.Add(1)
			api.translate(w, body)
		case "/api/lyrics/extract":
			api.extract(w, api.extractHits.Add(1))
		case "/libre/translate":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"translatedText": "libre:" + body["q"]})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.server.Close)
	t.Setenv("TUNELATE_API_BASE_URL", api.server.URL)
	t.Setenv("TUNELATE_PROVIDERS", "backend")
	return api
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeAPIError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"message": "upstream detail", "type": kind},
	})
}
