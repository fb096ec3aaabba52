package engine

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/bop/internal/choreo"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/rig"
	"github.com/desertthunder/bop/internal/scene"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/desertthunder/bop/internal/tune"
)

const (
	defaultFPS    = 30
	defaultWidth  = 420
	defaultHeight = 560

	// maxDT caps a single simulation step after the process was suspended
	// or a tick was delayed, so state machines never integrate a huge gap.
	maxDT = 0.1

	bpmDamping     = 0.9
	artworkTimeout = 10 * time.Second
)

// ArtworkLoader resolves a cover image URL for a track. Implemented by
// services.ArtworkService; the engine treats it as optional.
type ArtworkLoader interface {
	Lookup(ctx context.Context, artist, title string) (string, error)
}

// Options configures a Dancer. Every field has a usable zero value, so
// engine.New(engine.Options{}) yields a working dancer with no
// collaborators.
type Options struct {
	// Params is the live knob set. Nil creates one at defaults.
	Params *tune.Params
	// Moves is the pose library. An empty library uses the built-in one.
	Moves choreo.Library
	// Rand drives every random draw. Nil seeds one from the clock; pass a
	// fixed-seed source for a reproducible dance.
	Rand motion.Rand
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// Tracks feeds key colors and artwork identities. Optional.
	Tracks models.TrackSource
	// Artwork resolves cover URLs. Optional.
	Artwork ArtworkLoader

	// FPS is the tick rate of the frame loop; 0 means 30.
	FPS int
	// BPM overrides the starting tempo when positive.
	BPM float64

	// Stage geometry and palette applied to every attached stage. Zero
	// values fall back to the scene defaults.
	Width, Height          int
	Background, Body, Base string
}

// Update is one rendered tick. Stages maps stage IDs to complete SVG
// documents; subscribers must treat the map and joints as read-only.
type Update struct {
	Clock    float64
	Beat     float64
	BPM      float64
	Joints   rig.Joints
	HeadR    float64
	PoseName string
	Artwork  string
	Stages   map[string]string
}

// Stats summarizes a simulation for status displays and the demo command.
type Stats struct {
	Clock    float64 `json:"clock"`
	Beats    float64 `json:"beats"`
	BPM      float64 `json:"bpm"`
	Steps    int     `json:"steps"`
	Pose     string  `json:"pose"`
	State    string  `json:"state"`
	Stages   int     `json:"stages"`
	Running  bool    `json:"running"`
	Frozen   bool    `json:"frozen"`
	Drifting bool    `json:"drifting"`
}

// Dancer owns one simulation and any number of synchronized stages.
type Dancer struct {
	mu sync.Mutex

	p      *tune.Params
	rng    motion.Rand
	seq    *choreo.Sequencer
	auto   *tune.AutoDrive
	drift  *tune.Drift
	wander *tune.Wander

	skel      rig.Skeleton
	skelScale float64

	logger  *log.Logger
	tracks  models.TrackSource
	artwork ArtworkLoader

	fps      int
	interval time.Duration
	clock    float64
	beats    float64

	// bpm chases the parameter through a spring so tempo changes glide
	// instead of snapping the beat grid.
	bpm        float64
	bpmVel     float64
	spring     harmonica.Spring
	springFreq float64

	colors      map[string]string
	nextShuffle float64

	artURL     string
	artLoading bool

	width, height          int
	background, body, base string
	stages                 map[string]scene.Stage
	stageOrder             []string

	subs []chan Update
	last Update

	running bool
	frozen  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a stopped dancer with one stage ("main", scale 1). Call Start
// to run the frame loop, or drive it manually with Snapshot for headless
// renders.
func New(opts Options) *Dancer {
	p := opts.Params
	if p == nil {
		p = tune.NewParams()
	}
	if opts.BPM > 0 {
		p.Set("bpm", opts.BPM)
	}

	rng := opts.Rand
	if rng == nil {
		rng = motion.NewRand()
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	lib := opts.Moves
	if len(lib.Poses) == 0 {
		lib = choreo.Default()
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	d := &Dancer{
		p:          p,
		rng:        rng,
		seq:        choreo.NewSequencer(lib, rng),
		auto:       tune.NewAutoDrive(p, rng),
		drift:      tune.NewDrift(p, rng),
		wander:     tune.NewWander(rng),
		skel:       rig.NewSkeleton(p.Scale),
		skelScale:  p.Scale,
		logger:     logger,
		tracks:     opts.Tracks,
		artwork:    opts.Artwork,
		fps:        fps,
		interval:   time.Second / time.Duration(fps),
		bpm:        p.BPM,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), p.BPMSpring, bpmDamping),
		springFreq: p.BPMSpring,
		width:      opts.Width,
		height:     opts.Height,
		background: opts.Background,
		body:       opts.Body,
		base:       opts.Base,
		stages:     make(map[string]scene.Stage),
	}
	if d.width <= 0 {
		d.width = defaultWidth
	}
	if d.height <= 0 {
		d.height = defaultHeight
	}
	d.attachStage("main", 1)
	return d
}

// Start launches the frame loop, or unfreezes a dancer parked by Still.
// Returns shared.ErrEngineRunning if the loop is already live and moving.
func (d *Dancer) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		if !d.frozen {
			return shared.ErrEngineRunning
		}
		d.frozen = false
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true
	d.frozen = false
	go d.loop(ctx)
	d.logger.Debug("dancer started", "fps", d.fps, "bpm", d.p.BPM)
	return nil
}

// Stop cancels the frame loop and waits for it to exit. Simulation state is
// kept, so a later Start resumes mid-dance.
func (d *Dancer) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return shared.ErrEngineStopped
	}
	d.running = false
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	cancel()
	<-done
	d.logger.Debug("dancer stopped")
	return nil
}

// Running reports whether the frame loop is live.
func (d *Dancer) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Dancer) loop(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			d.mu.Lock()
			if !d.frozen {
				u := d.step(dt)
				d.publish(u)
			}
			d.mu.Unlock()
		}
	}
}

// step advances the simulation by dt seconds and renders every stage. Caller
// holds the mutex.
func (d *Dancer) step(dt float64) Update {
	if dt > maxDT {
		dt = maxDT
	}
	if dt < 0 {
		dt = 0
	}
	d.clock += dt

	if d.p.Scale != d.skelScale {
		d.skel = rig.NewSkeleton(d.p.Scale)
		d.skelScale = d.p.Scale
	}
	if d.p.BPMSpring != d.springFreq {
		d.spring = harmonica.NewSpring(harmonica.FPS(d.fps), d.p.BPMSpring, bpmDamping)
		d.springFreq = d.p.BPMSpring
	}

	d.bpm, d.bpmVel = d.spring.Update(d.bpm, d.bpmVel, d.p.BPM)
	d.beats += dt * d.bpm / 60
	pulse := motion.PulseShape(d.beats - math.Floor(d.beats))

	d.auto.Advance(d.clock)
	d.drift.Advance(d.clock)
	d.wander.Advance(dt, d.p.BobAmount, d.p.SwayAmount)

	pose := d.seq.Advance(dt, d.timing())

	if d.clock >= d.nextShuffle {
		d.shuffleColors()
	}

	u := d.compose(pose, pulse)
	d.last = u

	d.rollArtwork(false)
	return u
}

func (d *Dancer) timing() choreo.Timing {
	return choreo.Timing{
		HoldBase:   d.p.HoldBase,
		TransBase:  d.p.TransBase,
		DurJitter:  d.p.DurJitter,
		PoseJitter: d.p.PoseJitter,
		Tempo:      d.bpm / 120,
	}
}

// compose runs FK for the given pose and pulse at the current clock and
// renders every stage. Caller holds the mutex.
func (d *Dancer) compose(pose rig.Pose, pulse float64) Update {
	bob, sway := d.wander.Offsets()
	origin := motion.Point{X: sway, Y: bob - pulse*d.p.BounceAmp}

	joints := d.skel.Forward(origin, pose)
	f := scene.Frame{
		Joints:  joints,
		Parts:   d.skel.Parts(joints),
		HeadR:   d.skel.HeadRadius,
		Beat:    pulse,
		Clock:   d.clock,
		Colors:  d.colors,
		Artwork: d.artURL,
		P:       d.p,
	}

	docs := make(map[string]string, len(d.stageOrder))
	for _, id := range d.stageOrder {
		docs[id] = d.stages[id].Document(f, d.rng)
	}

	return Update{
		Clock:    d.clock,
		Beat:     pulse,
		BPM:      d.bpm,
		Joints:   joints,
		HeadR:    d.skel.HeadRadius,
		PoseName: d.seq.PoseName(),
		Artwork:  d.artURL,
		Stages:   docs,
	}
}

// shuffleColors reassigns a random track key color to every body part and
// schedules the next shuffle. Caller holds the mutex.
func (d *Dancer) shuffleColors() {
	d.nextShuffle = d.clock + d.p.KeyShuffle*(0.6+0.8*d.rng.Float64())
	if d.tracks == nil {
		return
	}
	n := d.tracks.RowCount()
	if n <= 0 {
		return
	}

	colors := make(map[string]string)
	for _, name := range rig.PartNames() {
		row, ok := d.tracks.RowAt(d.rng.IntN(n))
		if !ok || row.Key == "" {
			continue
		}
		key, err := models.ParseKey(string(row.Key))
		if err != nil {
			continue
		}
		colors[name] = key.Color()
	}
	d.colors = colors
}

// rollArtwork maybe kicks off a cover lookup for a random track. Only one
// lookup runs at a time. Caller holds the mutex.
func (d *Dancer) rollArtwork(force bool) {
	if d.artwork == nil || d.tracks == nil || d.artLoading {
		return
	}
	if !force && d.rng.Float64() >= d.p.ArtOdds {
		return
	}

	n := d.tracks.RowCount()
	if n <= 0 {
		return
	}
	row, ok := d.tracks.RowAt(d.rng.IntN(n))
	if !ok || row.Artist == "" || row.Title == "" {
		return
	}

	d.artLoading = true
	go d.fetchArtwork(row.Artist, row.Title)
}

// fetchArtwork resolves a cover URL off the frame loop. A failed or stale
// lookup changes nothing but the displayed image.
func (d *Dancer) fetchArtwork(artist, title string) {
	ctx, cancel := context.WithTimeout(context.Background(), artworkTimeout)
	defer cancel()

	url, err := d.artwork.Lookup(ctx, artist, title)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.artLoading = false
	if err != nil {
		d.logger.Debug("artwork lookup failed", "artist", artist, "title", title, "error", err)
		return
	}
	d.artURL = url
}

// publish fans an update out without blocking; slow subscribers drop frames.
// Caller holds the mutex.
func (d *Dancer) publish(u Update) {
	for _, ch := range d.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
