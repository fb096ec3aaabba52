package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "bop.db" {
			t.Errorf("expected database path bop.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8723 {
			t.Errorf("expected server port 8723, got %d", config.Server.Port)
		}

		if config.Engine.FPS != 60 {
			t.Errorf("expected 60 fps, got %d", config.Engine.FPS)
		}

		if config.Engine.BPM != 120 {
			t.Errorf("expected default bpm 120, got %v", config.Engine.BPM)
		}

		if config.Artwork.Provider != "itunes" {
			t.Errorf("expected artwork provider itunes, got %s", config.Artwork.Provider)
		}

		if config.Stage.Width != 420 || config.Stage.Height != 560 {
			t.Errorf("unexpected stage size %dx%d", config.Stage.Width, config.Stage.Height)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[engine]
fps = 30
seed = 99
bpm = 128.0

[stage]
width = 640
height = 800
base_color = "#ff00aa"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[artwork]
provider = "spotify"

[artwork.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Engine.Seed != 99 {
			t.Errorf("expected seed 99, got %d", config.Engine.Seed)
		}

		if config.Artwork.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Artwork.Spotify.ClientID)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 8723}
		if got := s.Addr(); got != "127.0.0.1:8723" {
			t.Errorf("Addr() = %s", got)
		}
	})
}
