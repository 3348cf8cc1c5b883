package version

import "testing"

func TestString(t *testing.T) {
	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	defer func() { Version, Commit, BuildDate = "dev", "unknown", "unknown" }()

	want := "1.2.3 (commit: abc123, built: 2026-01-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
