package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"), log.Default())
	if err == nil {
		t.Fatal("explicit missing config path should error")
	}
	if cfg.DefaultTheme != "feature_based" {
		t.Errorf("DefaultTheme = %q, want the default", cfg.DefaultTheme)
	}
}

func TestLoadConfigNoFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("", log.Default())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DefaultPaper != "A4" || cfg.DefaultDPI != 300 {
		t.Errorf("defaults = %q/%d, want A4/300", cfg.DefaultPaper, cfg.DefaultDPI)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cityposter.toml")
	data := []byte("default_theme = \"noir_lights\"\nredis_addr = \"localhost:6379\"\ndefault_dpi = 150\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, log.Default())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DefaultTheme != "noir_lights" {
		t.Errorf("DefaultTheme = %q", cfg.DefaultTheme)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.DefaultDPI != 150 {
		t.Errorf("DefaultDPI = %d", cfg.DefaultDPI)
	}
	// Unset keys keep their defaults.
	if cfg.DefaultPaper != "A4" {
		t.Errorf("DefaultPaper = %q, want A4", cfg.DefaultPaper)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cityposter.toml")
	if err := os.WriteFile(path, []byte("default_theme = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path, log.Default()); err == nil {
		t.Fatal("malformed config should error")
	}
}

func TestCacheDir(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		dir, err := cacheDir(Config{CacheDir: "/tmp/custom-cache"})
		if err != nil {
			t.Fatal(err)
		}
		if dir != "/tmp/custom-cache" {
			t.Errorf("dir = %q", dir)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := cacheDir(Config{})
		if err != nil {
			t.Fatal(err)
		}
		if dir != filepath.Join("/tmp/xdg", appName) {
			t.Errorf("dir = %q", dir)
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
