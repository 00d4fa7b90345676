package version

import (
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if got := Collect().Version; got != Version {
		t.Errorf("Collect().Version = %q, want %q", got, Version)
	}
}

func TestCollectTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "  "
	GitCommit = " abc123 \n"
	info := Collect()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q, want abc123", info.GitCommit)
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0.1.0-dev", want: "0.1.0-dev"},
		{in: "1.2.3+build.7", want: "1.2.3+build.7"},
		{in: "dev", want: "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Colored(tt.in, false); got != tt.want {
				t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	colored := Colored("1.2.3", true)
	if colored == "1.2.3" {
		t.Error("expected escape sequences when color is enabled")
	}
}
