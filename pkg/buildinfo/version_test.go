package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	embedded := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}
	missing := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name                  string
		version, commit, date string
		read                  func() (*debug.BuildInfo, bool)
		want                  Info
	}{
		{
			name: "ldflags win", version: "v1.0.0", commit: "abc", date: "today", read: embedded,
			want: Info{Version: "v1.0.0", Commit: "abc", Date: "today", Dirty: true},
		},
		{
			name: "embedded fallback", version: "dev", commit: "none", date: "unknown", read: embedded,
			want: Info{Version: "v0.4.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", Dirty: true},
		},
		{
			name: "no build info", version: "dev", commit: "none", date: "unknown", read: missing,
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.version, tt.commit, tt.date, tt.read); got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShortCommit(t *testing.T) {
	if got := (Info{Commit: "0123456789"}).ShortCommit(); got != "0123456" {
		t.Errorf("ShortCommit() = %q", got)
	}
	if got := (Info{Commit: "none"}).ShortCommit(); got != "none" {
		t.Errorf("ShortCommit() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if tmpl := Template(); !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
