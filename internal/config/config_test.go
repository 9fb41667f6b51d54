package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/transition"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Address() != "localhost:3000" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.WriteTimeout() != 10*time.Second {
		t.Errorf("WriteTimeout() = %v", cfg.WriteTimeout())
	}
	if cfg.DuplicatePolicy() != transition.DuplicateFail {
		t.Error("default duplicate policy should be fail")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, `
name: demo
server:
  port: 8080
log:
  level: debug
  format: json
transitions:
  duplicates: replace
  default:
    duration: 200ms
    easing: ease-out
  routes:
    /app/settings/:
      preset: slide-left
      mode: move
      exitTimeout: "off"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "demo" || cfg.Server.Port != 8080 || cfg.Server.Host != DefaultHost {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Path() != filepath.Join(dir, YAMLFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.DuplicatePolicy() != transition.DuplicateReplace {
		t.Error("duplicates: replace not applied")
	}

	def, err := cfg.TransitionFor("/app")
	if err != nil {
		t.Fatal(err)
	}
	if def.Transition.Duration != 200*time.Millisecond || def.Transition.Easing != transition.EaseOut {
		t.Errorf("default transition = %+v", def.Transition)
	}

	settings, err := cfg.TransitionFor("/app/settings")
	if err != nil {
		t.Fatal(err)
	}
	if settings.Mode != transition.ModeMove {
		t.Errorf("Mode = %v", settings.Mode)
	}
	if settings.ExitTimeout != -1 {
		t.Errorf("ExitTimeout = %v, want disabled", settings.ExitTimeout)
	}
	if settings.Transition.Duration != 200*time.Millisecond {
		t.Errorf("route should inherit default duration, got %v", settings.Transition.Duration)
	}
	if settings.Enter.Initial["transform"] == "" {
		t.Error("slide-left preset not applied")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONFileName, `{
  "server": {"port": 4000},
  "transitions": {
    "default": {
      "exit": {"initial": {"opacity": "1"}, "animate": {"opacity": "0.2"}}
    }
  }
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	tc, err := cfg.TransitionFor("/anything")
	if err != nil {
		t.Fatal(err)
	}
	if tc.Exit.Animate["opacity"] != "0.2" {
		t.Errorf("exit motion = %+v", tc.Exit)
	}
}

func TestLoadPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, "name: from-yaml\n")
	writeFile(t, dir, JSONFileName, `{"name": "from-json"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "from-yaml" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"missing", "", "", "E141"},
		{"bad yaml", YAMLFileName, "server: [", "E120"},
		{"bad json", JSONFileName, "{", "E120"},
		{"bad port", YAMLFileName, "server:\n  port: 70000\n", "E122"},
		{"bad timeout", YAMLFileName, "server:\n  writeTimeout: soon\n", "E122"},
		{"bad level", YAMLFileName, "log:\n  level: loud\n", "E122"},
		{"bad duplicates", YAMLFileName, "transitions:\n  duplicates: maybe\n", "E122"},
		{"bad preset", YAMLFileName, "transitions:\n  default:\n    preset: spin\n", "E205"},
		{"bad route easing", YAMLFileName, "transitions:\n  routes:\n    /a:\n      easing: wobble\n", "E205"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				writeFile(t, dir, tt.file, tt.content)
			}
			_, err := Load(dir)
			if !errors.IsCode(err, tt.code) {
				t.Fatalf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRouteErrorNamesRoute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFileName, "transitions:\n  routes:\n    /app/x:\n      duration: fast\n")
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "route /app/x") {
		t.Errorf("error should name the route: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "saved"
	cfg.Transitions.Routes = map[string]TransitionSpec{"/app": {Preset: "slide-left"}}

	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(dir, name)
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo(%s) error = %v", name, err)
		}
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) error = %v", name, err)
		}
		if loaded.Name != "saved" || loaded.Transitions.Routes["/app"].Preset != "slide-left" {
			t.Errorf("%s round trip lost data: %+v", name, loaded)
		}
	}
}

func TestLogger(t *testing.T) {
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"app":"outlet"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}
