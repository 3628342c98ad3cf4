package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	prev := Version
	Version = "9.9.9"
	t.Cleanup(func() { Version = prev })

	info := Info()
	if !strings.HasPrefix(info, "tunelate 9.9.9\n") {
		t.Fatalf("Info() = %q", info)
	}
	if !strings.Contains(info, "commit: ") || !strings.Contains(info, "build: ") {
		t.Fatalf("Info() missing build metadata: %q", info)
	}
}
