package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestFromBuildInfo_Defaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := fromBuildInfo(nil)
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease() {
		t.Error("dev should not be a release")
	}
	if info.Short() != "dev" {
		t.Errorf("expected short 'dev', got %q", info.Short())
	}
}

func TestFromBuildInfo_VCS(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Path: "github.com/kbukum/lego", Version: "v0.3.1"},
		Deps: []*debug.Module{
			{Path: "github.com/rs/zerolog", Version: "v1.34.0"},
			{Path: "example.com/old", Version: "v1.0.0", Replace: &debug.Module{Path: "example.com/new", Version: "v2.0.0"}},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	info := fromBuildInfo(bi)
	if info.Version != "v0.3.1" {
		t.Errorf("expected module version, got %q", info.Version)
	}
	if info.GitCommit != "0123456" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if !info.Dirty || info.IsRelease() {
		t.Error("modified tree should be dirty and not a release")
	}
	if info.Short() != "v0.3.1-0123456-dirty" {
		t.Errorf("unexpected short version %q", info.Short())
	}
	if !info.BuildDate.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected build date %v", info.BuildDate)
	}
	if len(info.Deps) != 2 || info.Deps[1].Path != "example.com/new" {
		t.Errorf("unexpected deps %+v", info.Deps)
	}
	if !strings.Contains(info.String(), "go1.26.0") {
		t.Errorf("expected go version in %q", info.String())
	}
}

func TestFromBuildInfo_LinkerFlagsWin(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "v1.0.0", "fedcba9876", "2025-06-01T00:00:00Z"

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	info := fromBuildInfo(bi)
	if info.Version != "v1.0.0" || info.GitCommit != "fedcba9" {
		t.Errorf("linker values should win, got %+v", info)
	}
	if info.BuildDate.Year() != 2025 {
		t.Errorf("expected linker build time, got %v", info.BuildDate)
	}
	if !info.IsRelease() {
		t.Error("expected a release build")
	}
}

func TestGet(t *testing.T) {
	if Get().Version == "" {
		t.Error("expected a version")
	}
}
