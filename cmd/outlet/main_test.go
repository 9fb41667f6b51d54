package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/outlet/internal/demo"
	outleterrors "github.com/vango-dev/outlet/internal/errors"
)

func TestResolveLayoutChain(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, demo.Routes(), "", "/app/settings/general/"); err != nil {
		t.Fatalf("runResolve() error: %v", err)
	}
	want := `/app/settings/general -> /app/settings/general (depth 3)
  1. outlet /app at /app (depth 1)
  2. outlet /app/settings at /app/settings (depth 2)
`
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestResolveCapture(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"/app", "/app/settings/general", "capture: /app"},
		{"/app/settings/general", "/app/settings/profile", "capture: /app/settings"},
		{"/app/projects/1", "/app/projects/2", "capture: /app"},
		{"/app/projects/1", "/app/projects/1/activity", "capture: /app/projects/1"},
		{"/", "/app", "capture: none"},
		{"/app", "/app", "capture: none"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			var out bytes.Buffer
			if err := runResolve(&out, demo.Routes(), tt.from, tt.to); err != nil {
				t.Fatalf("runResolve() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want+"\n") {
				t.Errorf("output =\n%s\nwant line %q", out.String(), tt.want)
			}
		})
	}
}

func TestResolveListsRegisteredOutlets(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, demo.Routes(), "/app/settings/general", "/app/settings/profile"); err != nil {
		t.Fatalf("runResolve() error: %v", err)
	}
	want := `/app/settings/profile -> /app/settings/profile (depth 3)
  1. outlet /app at /app (depth 1)
  2. outlet /app/settings at /app/settings (depth 2)
registered from /app/settings/general:
  /app
  /app/settings
capture: /app/settings
`
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestResolveNoRoute(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, demo.Routes(), "", "/missing"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "/missing: no route\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestResolveRejectsEscapingPath(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, demo.Routes(), "", "/../etc"); err == nil {
		t.Error("runResolve() error = nil, want rejection")
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig("", t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
}

func TestLoadConfigNamedFileMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "outlet.yaml"), "")
	if !outleterrors.IsCode(err, "E141") {
		t.Errorf("loadConfig() error = %v, want E141", err)
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	data := "name: shop\nserver:\n  port: 8123\n"
	if err := os.WriteFile(filepath.Join(dir, "outlet.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "shop" || cfg.Server.Port != 8123 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestVersionShort(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if out.String() != version+"\n" {
		t.Errorf("output = %q, want %q", out.String(), version+"\n")
	}
}

func TestResolveCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resolve", "/app/projects/9", "--from", "/app"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"-> /app/projects/:id", "outlet /app/projects/:id at /app/projects/9", "capture: /app"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
