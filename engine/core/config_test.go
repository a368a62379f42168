package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "nvngx.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	id := uuid.New()
	p := writeConfig(t, t.TempDir(), `
backend = "VULKAN"
project_id = "`+id.String()+`"
engine_version = "2.4.1"
application_data_path = "/var/tmp/ngx"
log_level = "debug"

[super_sampling]
target_width = 2560
target_height = 1440
quality = "quality"
flags = ["hdr"]
`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig:\nhave %v\nwant nil", err)
	}
	if cfg.Backend != BackendVulkan {
		t.Fatalf("Backend:\nhave %q\nwant %q", cfg.Backend, BackendVulkan)
	}
	if cfg.ProjectUUID() != id {
		t.Fatalf("ProjectUUID:\nhave %s\nwant %s", cfg.ProjectUUID(), id)
	}
	if cfg.EngineVersion != "2.4.1" || cfg.ApplicationDataPath != "/var/tmp/ngx" {
		t.Fatalf("engine fields:\nhave %q %q", cfg.EngineVersion, cfg.ApplicationDataPath)
	}
	ss := cfg.SuperSampling
	if ss.TargetWidth != 2560 || ss.TargetHeight != 1440 || ss.Quality != "quality" || len(ss.Flags) != 1 {
		t.Fatalf("SuperSampling:\nhave %+v", ss)
	}
	// Unset keys keep their defaults.
	if cfg.NGXLogging != "off" {
		t.Fatalf("NGXLogging:\nhave %q\nwant off", cfg.NGXLogging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"backend", `backend = "metal"`},
		{"project_id", `project_id = "not-a-uuid"`},
		{"target", "[super_sampling]\ntarget_width = 0"},
		{"syntax", `backend = `},
	}
	for _, c := range cases {
		p := writeConfig(t, dir, c.body)
		if _, err := LoadConfig(p); err == nil {
			t.Fatalf("LoadConfig(%s):\nhave nil\nwant error", c.name)
		}
	}

	p := writeConfig(t, dir, `backend = "opengl"`)
	if _, err := LoadConfig(p); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("LoadConfig(opengl):\nhave %v\nwant %v", err, ErrUnknownBackend)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("LoadConfig(missing):\nhave nil\nwant error")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate():\nhave %v\nwant nil", err)
	}
	if cfg.ProjectUUID() != uuid.Nil {
		t.Fatalf("ProjectUUID:\nhave %s\nwant nil UUID", cfg.ProjectUUID())
	}
	if _, err := cfg.Marshal(); err != nil {
		t.Fatalf("Marshal:\nhave %v\nwant nil", err)
	}
}

func TestSetLogLevel(t *testing.T) {
	prev := GetLogLevel()
	defer SetLogLevel(prev)

	if err := SetLogLevel("WARN"); err != nil {
		t.Fatalf("SetLogLevel(WARN):\nhave %v\nwant nil", err)
	}
	if lvl := GetLogLevel(); lvl != "warn" {
		t.Fatalf("GetLogLevel:\nhave %q\nwant warn", lvl)
	}
	if err := SetLogLevel("chatty"); err == nil {
		t.Fatal("SetLogLevel(chatty):\nhave nil\nwant error")
	}
}

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `log_level = "info"`)

	changes := make(chan *Config, 16)
	cw, err := WatchConfig(p, func(c *Config) {
		select {
		case changes <- c:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchConfig:\nhave %v\nwant nil", err)
	}
	defer cw.Close()

	writeConfig(t, dir, `log_level = "error"`)
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			// A truncated intermediate write may be observed first.
			if c.LogLevel == "error" {
				return
			}
		case <-timeout:
			t.Fatal("WatchConfig: no reload with log_level=error within 5s")
		}
	}
}

func TestConfigWatcherClose(t *testing.T) {
	p := writeConfig(t, t.TempDir(), ``)
	cw, err := WatchConfig(p, func(*Config) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := cw.Close(); err != nil {
		t.Fatalf("first Close:\nhave %v\nwant nil", err)
	}
	if err := cw.Close(); err == nil {
		t.Fatal("second Close:\nhave nil\nwant error")
	}
}
