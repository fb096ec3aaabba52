package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/desertthunder/bop/internal/motion"
	"github.com/desertthunder/bop/internal/rig"
	"github.com/desertthunder/bop/internal/tune"
)

func testFrame() Frame {
	sk := rig.NewSkeleton(1)
	j := sk.Forward(motion.Point{}, rig.Pose{})
	return Frame{
		Joints: j,
		Parts:  sk.Parts(j),
		HeadR:  sk.HeadRadius,
		Beat:   0.5,
		Clock:  1.25,
		Colors: map[string]string{"torso": "#ff0050"},
		P:      tune.NewParams(),
	}
}

func TestDocument(t *testing.T) {
	stage := NewStage("main", 420, 560, 1)

	t.Run("emits a complete svg document", func(t *testing.T) {
		doc := stage.Document(testFrame(), motion.NewSeeded(1))
		if !strings.HasPrefix(doc, "<svg ") || !strings.HasSuffix(doc, "</svg>") {
			t.Fatal("document is not a closed svg element")
		}
		if !strings.Contains(doc, `viewBox="0 0 420 560"`) {
			t.Error("missing viewBox")
		}
		if !strings.Contains(doc, `url(#glow-main)`) {
			t.Error("figure group not wired to the glow filter")
		}
	})

	t.Run("renders every part and the head", func(t *testing.T) {
		doc := stage.Document(testFrame(), motion.NewSeeded(1))
		if got := strings.Count(doc, "rotate("); got != 12 {
			t.Errorf("got %d rotated part rects, want 12", got)
		}
		if got := strings.Count(doc, "<circle"); got != 1 {
			t.Errorf("got %d circles, want 1 head", got)
		}
	})

	t.Run("wave path count follows the layer setting", func(t *testing.T) {
		for _, layers := range []float64{1, 3, 5} {
			f := testFrame()
			f.P.WaveLayers = layers
			doc := stage.Document(f, motion.NewSeeded(1))
			want := 5 * int(layers)
			if got := strings.Count(doc, "<path"); got != want {
				t.Errorf("layers=%v: got %d paths, want %d", layers, got, want)
			}
		}
	})

	t.Run("zeroed visual params drop their elements", func(t *testing.T) {
		f := testFrame()
		f.P.WaveAmp = 0
		f.P.EqGain = 0
		doc := stage.Document(f, motion.NewSeeded(1))
		if strings.Contains(doc, "<path") {
			t.Error("waves drawn with zero amplitude")
		}
		if strings.Contains(doc, `rx="1"`) {
			t.Error("eq bars drawn with zero gain")
		}
	})

	t.Run("draws five bars per anchor", func(t *testing.T) {
		f := testFrame()
		f.P.WaveAmp = 0
		doc := stage.Document(f, motion.NewSeeded(1))
		if got := strings.Count(doc, `rx="1"`); got != 4*barCount {
			t.Errorf("got %d bars, want %d", got, 4*barCount)
		}
	})

	t.Run("artwork card escapes the url", func(t *testing.T) {
		f := testFrame()
		f.Artwork = "https://img.example/a.jpg?w=64&h=64"
		doc := stage.Document(f, motion.NewSeeded(1))
		if !strings.Contains(doc, "<image href=") {
			t.Fatal("artwork image missing")
		}
		if !strings.Contains(doc, "w=64&amp;h=64") {
			t.Error("ampersand not escaped in href")
		}
		f.Artwork = ""
		if strings.Contains(stage.Document(f, motion.NewSeeded(1)), "<image") {
			t.Error("artwork drawn with no url set")
		}
	})

	t.Run("stage scale lands in the world transform", func(t *testing.T) {
		zoomed := NewStage("b", 420, 560, 1.5)
		doc := zoomed.Document(testFrame(), motion.NewSeeded(1))
		if !strings.Contains(doc, "scale(1.5)") {
			t.Error("missing stage zoom transform")
		}
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		a := stage.Document(testFrame(), motion.NewSeeded(7))
		b := stage.Document(testFrame(), motion.NewSeeded(7))
		if a != b {
			t.Error("same frame and seed produced different markup")
		}
		c := stage.Document(testFrame(), motion.NewSeeded(8))
		if a == c {
			t.Error("wave jitter ignored the rng")
		}
	})

	t.Run("glow follows the beat", func(t *testing.T) {
		quiet, loud := testFrame(), testFrame()
		quiet.Beat, loud.Beat = 0, 1
		a := stage.Document(quiet, motion.NewSeeded(1))
		b := stage.Document(loud, motion.NewSeeded(1))
		if a == b {
			t.Error("beat value had no effect on the document")
		}
	})
}

func TestPartColor(t *testing.T) {
	stage := NewStage("main", 420, 560, 1)

	t.Run("unassigned parts use the body color", func(t *testing.T) {
		f := testFrame()
		if got := stage.partColor(f, "thigh-l"); got != stage.Body {
			t.Errorf("got %q, want body color", got)
		}
	})

	t.Run("mix interpolates body toward key color", func(t *testing.T) {
		f := testFrame()
		f.P.ColorMix = 0
		if got := stage.partColor(f, "torso"); got != stage.Body {
			t.Errorf("mix 0: got %q, want body color", got)
		}
		f.P.ColorMix = 1
		if got := stage.partColor(f, "torso"); got != "#ff0050" {
			t.Errorf("mix 1: got %q, want key color", got)
		}
	})
}

func TestDisplaceChain(t *testing.T) {
	chain := []motion.Point{{X: 0, Y: 0}, {X: 0, Y: 40}, {X: 0, Y: 80}}

	t.Run("zero amplitude is the identity", func(t *testing.T) {
		out := displaceChain(chain, 0, 1, 2.5, 0, motion.NewSeeded(3))
		for i := range chain {
			if out[i] != chain[i] {
				t.Fatalf("point %d moved with zero amplitude", i)
			}
		}
	})

	t.Run("displacement stays near the amplitude", func(t *testing.T) {
		const amp = 10.0
		out := displaceChain(chain, amp, 1, 2.5, 0, motion.NewSeeded(3))
		if len(out) != len(chain) {
			t.Fatalf("got %d points, want %d", len(out), len(chain))
		}
		for i := range chain {
			d := math.Hypot(out[i].X-chain[i].X, out[i].Y-chain[i].Y)
			if d > amp*(1+5*waveJitter) {
				t.Errorf("point %d displaced %v, beyond the jitter envelope", i, d)
			}
		}
	})

	t.Run("vertical chain displaces horizontally", func(t *testing.T) {
		out := displaceChain(chain, 8, 1, 0.1, 0, motion.NewSeeded(3))
		for i := range chain {
			if out[i].Y != chain[i].Y {
				t.Errorf("point %d moved along the chain, not across it", i)
			}
		}
	})
}

func TestNewStage(t *testing.T) {
	s := NewStage("x", 100, 200, 0)
	if s.Scale != 1 {
		t.Errorf("non-positive scale should normalize to 1, got %v", s.Scale)
	}
	if s.Background == "" || s.Body == "" || s.Base == "" {
		t.Error("default palette not filled")
	}
}
