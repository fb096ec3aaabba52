// Package choreo drives the dance: a [Library] of named base poses with a
// cyclic visit order, and the [Sequencer] state machine that alternates
// between holding a pose and easing toward the next one.
//
// Each time the sequencer picks the next pose it perturbs every angle with
// independent uniform noise, so no two visits to the same library entry look
// alike. Hold and transition lengths are randomized with two deliberately
// different distributions: holds follow a power-law skew that clusters short
// at low strength and spreads toward the full base length as the knob rises,
// transitions widen symmetrically around their base length.
//
// Libraries can be replaced at startup from a YAML file via [Load].
package choreo
