package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	tu "github.com/desertthunder/bop/internal/testing"
	"github.com/urfave/cli/v3"
)

// runFlag runs fn with a parsed command carrying a --config string flag.
func runFlag(t *testing.T, args []string, fn func(cmd *cli.Command)) {
	t.Helper()
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.toml"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), append([]string{"test"}, args...)); err != nil {
		t.Fatalf("failed to run test command: %v", err)
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with empty configPath uses conventional name", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "",
			})

			if runner.configPath != "config.toml" {
				t.Errorf("expected config.toml, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 8 {
			t.Errorf("expected 8 commands, got %d", len(commands))
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "dance", "serve", "still", "demo", "library", "crate", "artwork"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("reloadConfig", func(t *testing.T) {
		t.Run("loads the flagged file and remembers it", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			if err := os.WriteFile(configPath, []byte("[engine]\nfps = 24\n"), 0644); err != nil {
				t.Fatalf("failed to create test config: %v", err)
			}

			runner := NewRunner(RunnerOpts{})
			runFlag(t, []string{"--config", configPath}, func(cmd *cli.Command) {
				config := runner.reloadConfig(cmd)
				if config.Engine.FPS != 24 {
					t.Errorf("expected fps 24 from file, got %d", config.Engine.FPS)
				}
			})

			if runner.configPath != configPath {
				t.Errorf("expected configPath to update, got %s", runner.configPath)
			}
		})

		t.Run("missing file keeps the current config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Engine.BPM = 99

			runner := NewRunner(RunnerOpts{Config: config})
			runFlag(t, []string{"--config", "/nowhere/config.toml"}, func(cmd *cli.Command) {
				got := runner.reloadConfig(cmd)
				if got.Engine.BPM != 99 {
					t.Errorf("expected fallback config, got bpm %v", got.Engine.BPM)
				}
			})
		})

		t.Run("unreadable file keeps the current config", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write bad config: %v", err)
			}

			config := shared.DefaultConfig()
			config.Engine.BPM = 99

			runner := NewRunner(RunnerOpts{Config: config})
			runFlag(t, []string{"--config", configPath}, func(cmd *cli.Command) {
				got := runner.reloadConfig(cmd)
				if got.Engine.BPM != 99 {
					t.Errorf("expected fallback config, got bpm %v", got.Engine.BPM)
				}
			})
		})
	})

	t.Run("openLibrary", func(t *testing.T) {
		t.Run("creates migrates and loads the grid", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "bop.db")

			runner := NewRunner(RunnerOpts{})
			db, grid, err := runner.openLibrary(config)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer db.Close()

			if grid.RowCount() != 0 {
				t.Errorf("expected empty grid, got %d rows", grid.RowCount())
			}
		})

		t.Run("reopening is idempotent", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "bop.db")

			runner := NewRunner(RunnerOpts{})
			db, _, err := runner.openLibrary(config)
			if err != nil {
				t.Fatalf("first open failed: %v", err)
			}
			db.Close()

			db, _, err = runner.openLibrary(config)
			if err != nil {
				t.Fatalf("second open failed: %v", err)
			}
			db.Close()
		})
	})

	t.Run("buildDancer", func(t *testing.T) {
		t.Run("applies config defaults", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Engine.BPM = 100

			runner := NewRunner(RunnerOpts{})
			dancer, err := runner.buildDancer(config, nil, nil, 0, 0, 0)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := dancer.BPM(); got != 100 {
				t.Errorf("expected bpm 100 from config, got %v", got)
			}
		})

		t.Run("flag overrides win", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Engine.BPM = 100

			runner := NewRunner(RunnerOpts{})
			dancer, err := runner.buildDancer(config, nil, nil, 7, 133, 24)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := dancer.BPM(); got != 133 {
				t.Errorf("expected bpm 133 from override, got %v", got)
			}
		})

		t.Run("missing choreography file is an error", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Engine.Choreography = filepath.Join(t.TempDir(), "missing.yaml")

			runner := NewRunner(RunnerOpts{})
			_, err := runner.buildDancer(config, nil, nil, 0, 0, 0)
			if err == nil {
				t.Fatal("expected error for missing choreography")
			}
			if !strings.Contains(err.Error(), "failed to load choreography") {
				t.Errorf("expected choreography error, got %v", err)
			}
		})
	})

	t.Run("buildArtwork", func(t *testing.T) {
		t.Run("provider none yields no loader", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Artwork.Provider = "none"

			runner := NewRunner(RunnerOpts{})
			if loader := runner.buildArtwork(config, nil); loader != nil {
				t.Error("expected nil loader for provider none")
			}
		})

		t.Run("itunes needs no credentials", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Artwork.Provider = "itunes"
			config.Artwork.CacheResults = false

			runner := NewRunner(RunnerOpts{})
			if loader := runner.buildArtwork(config, nil); loader == nil {
				t.Error("expected a loader for the itunes provider")
			}
		})
	})

	t.Run("Still", func(t *testing.T) {
		t.Run("writes an SVG document to output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			app := &cli.Command{Commands: runner.register()}
			err := app.Run(context.Background(), []string{"bop", "still", "--seed", "7"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			doc := output.String()
			if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
				t.Errorf("expected an SVG document, got %q", truncate(doc, 80))
			}
		})

		t.Run("saves to a file when asked", func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "pose.svg")
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			app := &cli.Command{Commands: runner.register()}
			err := app.Run(context.Background(), []string{"bop", "still", "-o", outputPath})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, outputPath)
			if !strings.Contains(output.String(), "Still frame saved") {
				t.Errorf("expected confirmation message, got %q", output.String())
			}
		})
	})

	t.Run("library seed and list roundtrip", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		defer tu.MustChdir(t, wd)
		tu.MustChdir(t, t.TempDir())

		config := shared.DefaultConfig()
		config.Database.Path = "bop.db"

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})
		app := &cli.Command{Commands: runner.register()}

		if err := app.Run(context.Background(), []string{"bop", "library", "seed"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if !strings.Contains(output.String(), "Installed 16 of 16") {
			t.Errorf("expected full seed, got %q", output.String())
		}

		output.Reset()
		if err := app.Run(context.Background(), []string{"bop", "library", "list", "--json"}); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var tracks []models.Track
		if err := json.Unmarshal(output.Bytes(), &tracks); err != nil {
			t.Fatalf("failed to parse list output: %v", err)
		}
		if len(tracks) != 16 {
			t.Errorf("expected 16 tracks, got %d", len(tracks))
		}

		output.Reset()
		if err := app.Run(context.Background(), []string{"bop", "library", "list", "--search", "strings", "--json"}); err != nil {
			t.Fatalf("filtered list failed: %v", err)
		}
		tracks = nil
		if err := json.Unmarshal(output.Bytes(), &tracks); err != nil {
			t.Fatalf("failed to parse filtered output: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Title != "Strings of Life" {
			t.Errorf("expected Strings of Life, got %+v", tracks)
		}
	})

	t.Run("crate lifecycle", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		defer tu.MustChdir(t, wd)
		tu.MustChdir(t, t.TempDir())

		config := shared.DefaultConfig()
		config.Database.Path = "bop.db"

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})
		app := &cli.Command{Commands: runner.register()}
		ctx := context.Background()

		if err := app.Run(ctx, []string{"bop", "library", "seed"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		if err := app.Run(ctx, []string{"bop", "crate", "create", "-d", "After midnight", "Peak Hour"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if !strings.Contains(output.String(), `Created crate "Peak Hour"`) {
			t.Errorf("expected creation message, got %q", output.String())
		}

		if err := app.Run(ctx, []string{
			"bop", "crate", "add", "--crate", "Peak Hour",
			"--artist", "Jeff Mills", "--title", "The Bells",
		}); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		output.Reset()
		if err := app.Run(ctx, []string{"bop", "crate", "show", "--json", "Peak Hour"}); err != nil {
			t.Fatalf("show failed: %v", err)
		}

		var view crateView
		if err := json.Unmarshal(output.Bytes(), &view); err != nil {
			t.Fatalf("failed to parse show output: %v", err)
		}
		if view.Name != "Peak Hour" || view.TrackCount != 1 {
			t.Errorf("expected one track in Peak Hour, got %+v", view)
		}
		if len(view.Tracks) != 1 || view.Tracks[0].Title != "The Bells" {
			t.Errorf("expected The Bells, got %+v", view.Tracks)
		}

		if err := app.Run(ctx, []string{
			"bop", "crate", "remove", "--crate", "Peak Hour",
			"--artist", "Jeff Mills", "--title", "The Bells",
		}); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		if err := app.Run(ctx, []string{"bop", "crate", "delete", "Peak Hour"}); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		output.Reset()
		if err := app.Run(ctx, []string{"bop", "crate", "list"}); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No crates yet") {
			t.Errorf("expected empty crate list, got %q", output.String())
		}
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
