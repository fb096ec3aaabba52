// Package ui implements an interactive terminal stage using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow around a running dancer:
//  1. [DanceView] : Watch the figure, beat meter and equalizer strip, and drive the engine with single keys
//  2. [LibraryView] : Browse the track library and push a row's tempo at the dancer
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Frames flow through a channel from the engine's Subscribe stream, so rendering never blocks the simulation loop.
//
// The figure itself is rasterized by [Canvas], which projects the engine's joint
// positions from stage coordinates onto a character cell grid.
//
// Keyboard control uses single-key bindings (space, s, r, d, a, w, +/-, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
