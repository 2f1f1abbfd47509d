package buildinfo

import "testing"

func TestShort(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "v0.3.0", "0123456789abcdef"
	if got := Short(); got != "v0.3.0" {
		t.Fatalf("Short() = %q, want release version", got)
	}
	Version = "dev"
	if got := Short(); got != "0123456" {
		t.Fatalf("Short() = %q, want abbreviated commit", got)
	}
	Commit = ""
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q, want dev", got)
	}
}

func TestString(t *testing.T) {
	v, c, d := Version, Commit, Date
	defer func() { Version, Commit, Date = v, c, d }()

	Version, Commit, Date = "v1", "abc", "2026-01-02"
	if got, want := String(), "regis3d v1 (abc) built 2026-01-02"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
