package motion

import (
	"math"
	"testing"
)

func TestLerpAngle(t *testing.T) {
	t.Run("takes the shorter arc across zero", func(t *testing.T) {
		got := LerpAngle(350, 10, 0.5)
		if want := 360.0; math.Abs(got-want) > 1e-9 {
			t.Errorf("LerpAngle(350, 10, 0.5) = %v, want %v", got, want)
		}
		if norm := Wrap360(got); math.Abs(norm-0) > 1e-9 {
			t.Errorf("normalized midpoint = %v, want 0", norm)
		}
	})

	t.Run("endpoints", func(t *testing.T) {
		if got := LerpAngle(350, 10, 0); got != 350 {
			t.Errorf("t=0: got %v, want 350", got)
		}
		got := Wrap360(LerpAngle(350, 10, 1))
		if math.Abs(got-10) > 1e-9 {
			t.Errorf("t=1: got %v, want 10", got)
		}
	})

	t.Run("never sweeps more than 180 degrees", func(t *testing.T) {
		cases := [][2]float64{{0, 170}, {0, 190}, {90, -90}, {-170, 170}, {10, 350}}
		for _, c := range cases {
			d := AngleDelta(c[0], c[1])
			if math.Abs(d) > 180 {
				t.Errorf("AngleDelta(%v, %v) = %v, |delta| > 180", c[0], c[1], d)
			}
		}
	})

	t.Run("monotone in t", func(t *testing.T) {
		prev := math.Inf(-1)
		for i := 0; i <= 10; i++ {
			v := LerpAngle(350, 10, float64(i)/10)
			if v < prev {
				t.Fatalf("LerpAngle not monotone at t=%v: %v < %v", float64(i)/10, v, prev)
			}
			prev = v
		}
	})
}

func TestAngleDelta(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 10, 10},
		{10, 0, -10},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := AngleDelta(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("AngleDelta(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	t.Run("fixed points", func(t *testing.T) {
		for _, c := range []struct{ in, want float64 }{{0, 0}, {0.5, 0.5}, {1, 1}} {
			if got := EaseInOutCubic(c.in); math.Abs(got-c.want) > 1e-9 {
				t.Errorf("EaseInOutCubic(%v) = %v, want %v", c.in, got, c.want)
			}
		}
	})

	t.Run("monotone and bounded", func(t *testing.T) {
		prev := -1.0
		for i := 0; i <= 100; i++ {
			v := EaseInOutCubic(float64(i) / 100)
			if v < prev {
				t.Fatalf("not monotone at %v: %v < %v", float64(i)/100, v, prev)
			}
			if v < 0 || v > 1 {
				t.Fatalf("out of bounds at %v: %v", float64(i)/100, v)
			}
			prev = v
		}
	})

	t.Run("clamps outside the unit interval", func(t *testing.T) {
		if got := EaseInOutCubic(-3); got != 0 {
			t.Errorf("EaseInOutCubic(-3) = %v, want 0", got)
		}
		if got := EaseInOutCubic(2); got != 1 {
			t.Errorf("EaseInOutCubic(2) = %v, want 1", got)
		}
	})
}

func TestHexLerp(t *testing.T) {
	t.Run("endpoints return the operands", func(t *testing.T) {
		if got := HexLerp("#ff0000", "#0000ff", 0); got != "#ff0000" {
			t.Errorf("t=0: got %s", got)
		}
		if got := HexLerp("#ff0000", "#0000ff", 1); got != "#0000ff" {
			t.Errorf("t=1: got %s", got)
		}
	})

	t.Run("midpoint blends channels", func(t *testing.T) {
		got := HexLerp("#000000", "#ffffff", 0.5)
		if got != "#808080" && got != "#7f7f7f" {
			t.Errorf("midpoint gray = %s", got)
		}
	})

	t.Run("equal operands are a fixed point", func(t *testing.T) {
		for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if got := HexLerp("#8ab4f8", "#8ab4f8", frac); got != "#8ab4f8" {
				t.Errorf("t=%v: got %s", frac, got)
			}
		}
	})

	t.Run("bad input falls back", func(t *testing.T) {
		if got := HexLerp("nope", "#336699", 0.5); got != "#336699" {
			t.Errorf("fallback = %s, want #336699", got)
		}
		if got := HexLerp("nope", "also nope", 0.5); got != "#000000" {
			t.Errorf("double fallback = %s, want #000000", got)
		}
	})
}

func TestWrap360(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {-30, 330}, {725, 5}, {-360, 0},
	}
	for _, c := range cases {
		if got := Wrap360(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Wrap360(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5,0,1) = %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5,0,1) = %v", got)
	}
	if got := Clamp(0.4, 0, 1); got != 0.4 {
		t.Errorf("Clamp(0.4,0,1) = %v", got)
	}
}
