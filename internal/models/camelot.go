package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/desertthunder/bop/internal/shared"
)

// Key is a harmonic wheel code: a number 1-12 plus ring letter, minor on A
// and major on B ("8A", "12B"). The canonical form has no leading zero and
// an uppercase letter.
type Key string

// ParseKey normalizes and validates a wheel code. "08a" parses to "8A".
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return "", fmt.Errorf("%w: key %q too short", shared.ErrInvalidInput, s)
	}
	letter := s[len(s)-1]
	if letter != 'A' && letter != 'B' {
		return "", fmt.Errorf("%w: key %q must end in A or B", shared.ErrInvalidInput, s)
	}
	num, err := strconv.Atoi(strings.TrimLeft(s[:len(s)-1], "0"))
	if err != nil || num < 1 || num > 12 {
		return "", fmt.Errorf("%w: key %q hour must be 1-12", shared.ErrInvalidInput, s)
	}
	return Key(strconv.Itoa(num) + string(letter)), nil
}

// Valid reports whether k is a canonical wheel code.
func (k Key) Valid() bool {
	parsed, err := ParseKey(string(k))
	return err == nil && parsed == k
}

// Number returns the wheel hour 1-12, or 0 for invalid keys.
func (k Key) Number() int {
	if len(k) < 2 {
		return 0
	}
	n, err := strconv.Atoi(string(k[:len(k)-1]))
	if err != nil || n < 1 || n > 12 {
		return 0
	}
	return n
}

// Minor reports whether k sits on the inner (A) ring.
func (k Key) Minor() bool {
	return len(k) >= 2 && k[len(k)-1] == 'A'
}

// Hue maps the wheel hour onto the color circle, 30 degrees per hour.
func (k Key) Hue() float64 {
	n := k.Number()
	if n == 0 {
		return 0
	}
	return float64(n-1) * 30
}

// Color returns the key's display color as a hex string. The minor ring is
// muted, the major ring saturated; invalid keys render gray.
func (k Key) Color() string {
	n := k.Number()
	if n == 0 || !k.Valid() {
		return "#8a8f98"
	}
	if k.Minor() {
		return colorful.Hsv(k.Hue(), 0.55, 0.82).Hex()
	}
	return colorful.Hsv(k.Hue(), 0.75, 0.95).Hex()
}

// WheelDistance measures mixing distance: steps around the ring plus one
// for crossing between rings. Invalid keys are infinitely far (returns 99).
func WheelDistance(a, b Key) int {
	if !a.Valid() || !b.Valid() {
		return 99
	}
	d := a.Number() - b.Number()
	if d < 0 {
		d = -d
	}
	if 12-d < d {
		d = 12 - d
	}
	if a.Minor() != b.Minor() {
		d++
	}
	return d
}

// Compatible reports whether two keys mix cleanly: the same key, one hour
// around the ring, or the relative major/minor.
func Compatible(a, b Key) bool {
	return WheelDistance(a, b) <= 1
}

// AllKeys returns the 24 wheel codes, minor ring first.
func AllKeys() []Key {
	keys := make([]Key, 0, 24)
	for _, letter := range []string{"A", "B"} {
		for n := 1; n <= 12; n++ {
			keys = append(keys, Key(strconv.Itoa(n)+letter))
		}
	}
	return keys
}
