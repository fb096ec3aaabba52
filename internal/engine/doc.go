// package engine runs the dancer simulation and fans rendered frames out to
// stages.
//
// [New] builds a [Dancer] from an [Options] struct whose collaborator fields
// are all optional: a nil [models.TrackSource] means no key colors or artwork
// identities flow in, a nil [ArtworkLoader] disables cover lookups. The
// dancer never reaches for globals.
//
// One goroutine owns the simulation. Each tick advances the modulation
// engines, the pose sequencer and the beat clock, runs forward kinematics
// once, then renders every attached stage from the same frame. Control
// methods serialize with the tick through a single mutex and never block on
// I/O; artwork lookups run in fire-and-forget goroutines whose results only
// ever replace the displayed image URL.
package engine
