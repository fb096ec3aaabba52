package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bop/internal/choreo"
	"github.com/desertthunder/bop/internal/engine"
	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/services"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, danceCommand, serveCommand, stillCommand, demoCommand, libraryCommand, crateCommand, artworkCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger, e.g. to a file logger while a TUI
// owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// reloadConfig resolves the effective config for a command. A --config flag
// takes priority over the path the runner was built with; a missing or
// unreadable file falls back to the config already loaded.
func (r *Runner) reloadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}

	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current settings", "path", path, "error", err)
		return r.config
	}

	r.config = config
	r.configPath = path
	return config
}

// openLibrary opens the configured database, applies pending migrations and
// wraps the track table in a refreshed [library.Grid]. The caller owns the
// returned handle.
func (r *Runner) openLibrary(config *shared.Config) (*sql.DB, *library.Grid, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	grid := library.NewGrid(library.NewTrackRepository(db))
	if err := grid.Refresh(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load track grid: %w", err)
	}

	return db, grid, nil
}

// buildArtwork wires the configured artwork provider into a rate-limited
// lookup service. Returns nil when the provider is "none" or misconfigured so
// the dancer simply skips cover art.
func (r *Runner) buildArtwork(config *shared.Config, db *sql.DB) engine.ArtworkLoader {
	provider, err := services.NewProvider(config.Artwork)
	if err != nil {
		r.logger.Warn("artwork provider unavailable", "provider", config.Artwork.Provider, "error", err)
		return nil
	}
	if provider == nil {
		return nil
	}

	var cache *library.ArtworkRepository
	if config.Artwork.CacheResults && db != nil {
		cache = library.NewArtworkRepository(db)
	}

	return services.NewArtworkService(provider, cache, config.Artwork.RatePerMinute, r.logger)
}

// buildDancer assembles an engine from config, with per-command seed, bpm and
// fps overrides taking priority when non-zero.
func (r *Runner) buildDancer(config *shared.Config, tracks models.TrackSource, artwork engine.ArtworkLoader, seed int64, bpm float64, fps int) (*engine.Dancer, error) {
	moves := choreo.Default()
	if config.Engine.Choreography != "" {
		loaded, err := choreo.Load(config.Engine.Choreography)
		if err != nil {
			return nil, fmt.Errorf("failed to load choreography: %w", err)
		}
		moves = loaded
	}

	if seed == 0 {
		seed = config.Engine.Seed
	}
	var rng motion.Rand
	if seed != 0 {
		rng = motion.NewSeeded(uint64(seed))
	}

	if bpm == 0 {
		bpm = config.Engine.BPM
	}
	if fps == 0 {
		fps = config.Engine.FPS
	}

	return engine.New(engine.Options{
		Moves:      moves,
		Rand:       rng,
		Logger:     r.logger,
		Tracks:     tracks,
		Artwork:    artwork,
		FPS:        fps,
		BPM:        bpm,
		Width:      config.Stage.Width,
		Height:     config.Stage.Height,
		Background: config.Stage.Background,
		Body:       config.Stage.BodyColor,
		Base:       config.Stage.BaseColor,
	}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
