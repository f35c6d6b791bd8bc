package platform

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds per-platform tunables loaded from the platforms file.
// BaseURL overrides the platform API endpoint; it is primarily useful for
// tests and proxies.
type Settings struct {
	Enabled  bool   `yaml:"enabled"`
	BaseURL  string `yaml:"base_url"`
	Timeout  int    `yaml:"timeout"`   // seconds
	MaxPosts int    `yaml:"max_posts"` // posts fetched per account per scan
}

type settingsFile struct {
	Platforms map[string]Settings `yaml:"platforms"`
}

var defaultBaseURLs = map[string]string{
	PlatformInstagram: "https://graph.instagram.com",
	PlatformTikTok:    "https://open.tiktokapis.com",
	PlatformYouTube:   "https://www.youtube.com",
	PlatformTwitter:   "https://api.twitter.com",
}

// LoadSettings reads platform settings from a YAML file. A missing file is
// not an error: every platform falls back to its defaults.
func LoadSettings(path string) (map[string]Settings, error) {
	settings := defaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Platform settings file not found, using defaults", "path", path)
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for name, s := range file.Platforms {
		if _, ok := defaultBaseURLs[name]; !ok {
			return nil, fmt.Errorf("unknown platform in settings: %s", name)
		}
		if s.BaseURL == "" {
			s.BaseURL = defaultBaseURLs[name]
		}
		if s.Timeout == 0 {
			s.Timeout = 30
		}
		if s.MaxPosts == 0 {
			s.MaxPosts = 25
		}
		if s.Timeout < 0 || s.MaxPosts < 0 {
			return nil, fmt.Errorf("platform %s: timeout and max_posts must be non-negative", name)
		}
		settings[name] = s

		slog.Debug("Platform settings loaded", "platform", name, "enabled", s.Enabled, "max_posts", s.MaxPosts)
	}

	return settings, nil
}

func defaultSettings() map[string]Settings {
	settings := make(map[string]Settings, len(defaultBaseURLs))
	for name, baseURL := range defaultBaseURLs {
		settings[name] = Settings{
			Enabled:  true,
			BaseURL:  baseURL,
			Timeout:  30,
			MaxPosts: 25,
		}
	}
	return settings
}
