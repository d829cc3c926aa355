package buildinfo

import "testing"

func TestStrings(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "v0.3.0", "abc123", "2026-01-02T03:04:05Z"

	if got, want := String(), "version: v0.3.0\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Template(), "{{.Name}} version v0.3.0\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
