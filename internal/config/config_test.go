package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EMAILS", "API_KEY", "TIMEOUT", "RETRIES", "WORKERS", "XDG_CONFIG_HOME"} {
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.Timeout != 60*time.Second || d.Retries != 3 || d.Workers != 10 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config.yml present there
	t.Setenv("EMAILS", "a@example.com, b@example.com")
	t.Setenv("API_KEY", "secret")
	t.Setenv("TIMEOUT", "30")
	t.Setenv("RETRIES", "5")
	t.Setenv("WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Retries != 5 {
		t.Errorf("Retries = %d", cfg.Retries)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.EmailsCSV() != "a@example.com,b@example.com" {
		t.Errorf("EmailsCSV() = %q", cfg.EmailsCSV())
	}
}

func TestLoad_FileLayerBeatsDefaultsButEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "emails: [\"file@example.com\"]\napi_key: \"filekey\"\nworkers: 7\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORKERS", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "filekey" {
		t.Errorf("APIKey = %q, want file-layer value", cfg.APIKey)
	}
	if cfg.Workers != 9 {
		t.Errorf("Workers = %d, want env override 9", cfg.Workers)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalConfigPath_HonorsXDGConfigHome(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	got := GlobalConfigPath()
	want := filepath.Join("/tmp/xdg-test", ConfigDir, ConfigFile)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
