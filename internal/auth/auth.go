// Package auth stores provider API keys in the OS keychain and resolves
// them against environment variables.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const serviceName = "tunelate"

// Key sources reported by Resolve.
const (
	SourceKeychain = "Keychain"
	SourceEnv      = "Environment Variable"
	SourceConfig   = "Config"
)

type credential struct {
	account string
	envVar  string
	label   string
}

var credentials = map[string]credential{
	"google": {account: "google-translate-api-key", envVar: "GOOGLE_TRANSLATE_API_KEY", label: "Google Translate"},
	"libre":  {account: "libretranslate-api-key", envVar: "LIBRETRANSLATE_API_KEY", label: "LibreTranslate"},
	"gemini": {account: "gemini-api-key", envVar: "GEMINI_API_KEY", label: "Gemini"},
	"openai": {account: "openai-api-key", envVar: "OPENAI_API_KEY", label: "OpenAI"},
}

// Keychain access, replaceable in tests.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// Services lists the services whose keys can be managed.
func Services() []string {
	return []string{"google", "libre", "gemini", "openai"}
}

func lookup(service string) (credential, error) {
	c, ok := credentials[strings.ToLower(strings.TrimSpace(service))]
	if !ok {
		return credential{}, fmt.Errorf("invalid service %q (must be one of: %s)", service, strings.Join(Services(), ", "))
	}
	return c, nil
}

// Label returns the display name for service.
func Label(service string) string {
	if c, err := lookup(service); err == nil {
		return c.label
	}
	return service
}

// EnvVar returns the environment variable consulted for service.
func EnvVar(service string) string {
	if c, err := lookup(service); err == nil {
		return c.envVar
	}
	return ""
}

// GetKey retrieves the keychain key for service. The empty string means no
// key is stored or the keychain is unavailable.
func GetKey(service string) (string, error) {
	c, err := lookup(service)
	if err != nil {
		return "", err
	}
	key, err := keyringGet(serviceName, c.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// Resolve picks the key for service: the keychain first, then fallback (the
// value already merged from config file and environment). The second return
// names the source.
func Resolve(service, fallback string, fromEnv bool) (string, string) {
	if key, err := GetKey(service); err == nil && key != "" {
		return key, SourceKeychain
	}
	if key := strings.TrimSpace(fallback); key != "" {
		if fromEnv {
			return key, SourceEnv
		}
		return key, SourceConfig
	}
	return "", ""
}

// SaveKey saves the key for service to the OS keychain.
func SaveKey(service, key string) error {
	c, err := lookup(service)
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}
	return keyringSet(serviceName, c.account, key)
}

// DeleteKey removes the key for service from the OS keychain.
func DeleteKey(service string) error {
	c, err := lookup(service)
	if err != nil {
		return err
	}
	return keyringDelete(serviceName, c.account)
}

// GetStatus reports whether a key for service exists in the keychain.
func GetStatus(service string) bool {
	key, err := GetKey(service)
	return err == nil && key != ""
}

// GetEnvKey retrieves the key from environment variables only.
func GetEnvKey(service string) (string, bool) {
	c, err := lookup(service)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(os.Getenv(c.envVar))
	if key == "" {
		return "", false
	}
	return key, true
}

// PromptForAPIKey securely prompts the user for their API key on stderr.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(bytePassword)), nil
}
