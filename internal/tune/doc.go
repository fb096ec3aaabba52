// Package tune owns the live parameter set and the three engines that move
// it without user input.
//
// [Params] is a flat struct of float64 knobs. The registry ([Fields],
// [FieldByName]) describes each knob's range, step, default, whether the
// drift engine may touch it, and the weighted regimes auto-drive samples
// targets from. Everything that reads or writes a knob by name goes through
// the registry, so the UI sliders, the HTTP control surface, and the engines
// all agree on bounds.
//
// The engines:
//   - [AutoDrive] gives each enabled parameter its own hold/move cycle,
//     easing toward targets drawn from weighted regimes.
//   - [Drift] slowly walks the whitelisted parameters away from their
//     defaults and home again in a four-phase cycle. Stopping restores every
//     whitelisted parameter to exactly its default.
//   - [Wander] is a mean-reverting random walk (Ornstein-Uhlenbeck) feeding
//     the figure's bob and sway offsets.
package tune
