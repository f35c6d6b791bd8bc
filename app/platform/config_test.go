package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Missing settings file should not be an error: %v", err)
	}

	if len(settings) != 4 {
		t.Errorf("Expected defaults for 4 platforms, got %d", len(settings))
	}

	for _, name := range []string{PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformTwitter} {
		s, ok := settings[name]
		if !ok {
			t.Errorf("Expected default settings for %s", name)
			continue
		}
		if !s.Enabled {
			t.Errorf("Expected %s enabled by default", name)
		}
		if s.BaseURL == "" {
			t.Errorf("Expected default base URL for %s", name)
		}
		if s.Timeout != 30 {
			t.Errorf("Expected default timeout 30 for %s, got %d", name, s.Timeout)
		}
		if s.MaxPosts != 25 {
			t.Errorf("Expected default max_posts 25 for %s, got %d", name, s.MaxPosts)
		}
	}
}

func TestLoadSettings_FromFile(t *testing.T) {
	content := `platforms:
  instagram:
    enabled: false
  tiktok:
    enabled: true
    base_url: http://localhost:9999
    timeout: 10
    max_posts: 5
`
	path := filepath.Join(t.TempDir(), "platforms.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if settings[PlatformInstagram].Enabled {
		t.Error("Expected instagram to be disabled")
	}
	if settings[PlatformInstagram].BaseURL != "https://graph.instagram.com" {
		t.Errorf("Expected default instagram base URL, got %s", settings[PlatformInstagram].BaseURL)
	}

	tiktok := settings[PlatformTikTok]
	if !tiktok.Enabled {
		t.Error("Expected tiktok to be enabled")
	}
	if tiktok.BaseURL != "http://localhost:9999" {
		t.Errorf("Expected base URL override, got %s", tiktok.BaseURL)
	}
	if tiktok.Timeout != 10 {
		t.Errorf("Expected timeout 10, got %d", tiktok.Timeout)
	}
	if tiktok.MaxPosts != 5 {
		t.Errorf("Expected max_posts 5, got %d", tiktok.MaxPosts)
	}

	// Platforms absent from the file keep their defaults
	if !settings[PlatformYouTube].Enabled {
		t.Error("Expected youtube to keep default enabled state")
	}
}

func TestLoadSettings_UnknownPlatform(t *testing.T) {
	content := `platforms:
  myspace:
    enabled: true
`
	path := filepath.Join(t.TempDir(), "platforms.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected an error for an unknown platform")
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platforms.yml")
	if err := os.WriteFile(path, []byte("platforms: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}
