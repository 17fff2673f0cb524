package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the file-configurable settings. Flags override file
// values, file values override the built-in defaults.
type Config struct {
	CacheDir  string `toml:"cache_dir"`
	ThemesDir string `toml:"themes_dir"`
	FontsDir  string `toml:"fonts_dir"`
	OutputDir string `toml:"output_dir"`

	DefaultTheme string `toml:"default_theme"`
	DefaultFont  string `toml:"default_font"`
	DefaultPaper string `toml:"default_paper"`
	DefaultDPI   int    `toml:"default_dpi"`

	// RedisAddr switches the geometry cache from disk to Redis.
	RedisAddr string `toml:"redis_addr"`

	OverpassURL  string `toml:"overpass_url"`
	NominatimURL string `toml:"nominatim_url"`
}

func defaultConfig() Config {
	return Config{
		ThemesDir:    "themes",
		FontsDir:     "fonts",
		OutputDir:    ".",
		DefaultTheme: "feature_based",
		DefaultFont:  "roboto",
		DefaultPaper: "A4",
		DefaultDPI:   300,
	}
}

// loadConfig reads cityposter.toml from path, or when path is empty,
// from the working directory and then the XDG config directory. A
// missing file yields the defaults; a malformed file is an error.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()

	candidates := []string{path}
	if path == "" {
		candidates = []string{appName + ".toml"}
		if configHome, err := os.UserConfigDir(); err == nil {
			candidates = append(candidates, filepath.Join(configHome, appName, appName+".toml"))
		}
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			if path != "" {
				return cfg, err
			}
			continue
		}
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			return cfg, err
		}
		logger.Debugf("Loaded config: %s", candidate)
		return cfg, nil
	}
	return cfg, nil
}

// cacheDir returns the geometry cache directory: the configured one,
// or XDG standard (~/.cache/cityposter/).
func cacheDir(cfg Config) (string, error) {
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
