package tune

import (
	"math"
	"testing"

	"github.com/desertthunder/bop/internal/motion"
)

func TestWander(t *testing.T) {
	dt := 1.0 / 60

	t.Run("offsets stay inside the amount-scaled bounds", func(t *testing.T) {
		w := NewWander(motion.NewSeeded(1))
		for i := 0; i < 10000; i++ {
			w.Advance(dt, 0.5, 0.5)
			bob, sway := w.Offsets()
			if math.Abs(bob) > bobBound*0.5+1e-9 {
				t.Fatalf("bob %v outside ±%v", bob, bobBound*0.5)
			}
			if math.Abs(sway) > swayBound*0.5+1e-9 {
				t.Fatalf("sway %v outside ±%v", sway, swayBound*0.5)
			}
		}
	})

	t.Run("zero amount pins the walk", func(t *testing.T) {
		w := NewWander(motion.NewSeeded(2))
		for i := 0; i < 600; i++ {
			w.Advance(dt, 0, 0)
		}
		bob, sway := w.Offsets()
		if bob != 0 || sway != 0 {
			t.Errorf("offsets %v, %v with zero amounts", bob, sway)
		}
	})

	t.Run("walk actually wanders", func(t *testing.T) {
		w := NewWander(motion.NewSeeded(3))
		var maxBob, maxSway float64
		for i := 0; i < 3600; i++ {
			w.Advance(dt, 1, 1)
			bob, sway := w.Offsets()
			maxBob = math.Max(maxBob, math.Abs(bob))
			maxSway = math.Max(maxSway, math.Abs(sway))
		}
		if maxBob < 1 || maxSway < 1 {
			t.Errorf("a minute of wander peaked at bob=%v sway=%v", maxBob, maxSway)
		}
	})

	t.Run("mean reversion pulls home", func(t *testing.T) {
		// Zero sigma isolates the pull toward zero.
		rng := motion.NewSeeded(4)
		x := 20.0
		for i := 0; i < 120; i++ {
			x = ouStep(rng, x, dt, 1, 0, 100)
		}
		if math.Abs(x) > 1 {
			t.Errorf("offset still at %v after 2s of pure reversion", x)
		}
	})

	t.Run("reset zeroes both walks", func(t *testing.T) {
		w := NewWander(motion.NewSeeded(5))
		for i := 0; i < 120; i++ {
			w.Advance(dt, 1, 1)
		}
		w.Reset()
		bob, sway := w.Offsets()
		if bob != 0 || sway != 0 {
			t.Error("reset left offsets in place")
		}
	})

	t.Run("negative dt is ignored", func(t *testing.T) {
		w := NewWander(motion.NewSeeded(6))
		w.Advance(dt, 1, 1)
		bob, _ := w.Offsets()
		w.Advance(-1, 1, 1)
		if b, _ := w.Offsets(); b != bob {
			t.Error("negative dt moved the walk")
		}
	})
}
