package buildinfo

import "testing"

func TestShortPrefersVersionThenCommit(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("expected dev, got %q", got)
	}

	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("expected commit, got %q", got)
	}

	Version = "v1.2.0"
	if got := UserAgent(); got != "calcboard/v1.2.0" {
		t.Fatalf("expected versioned user agent, got %q", got)
	}
}
