// Package scene renders one simulation frame into a standalone SVG document.
//
// A [Stage] is a view onto the shared simulation: it owns a canvas size, a
// zoom factor, and a color scheme, nothing else. The engine computes joints
// and parts once per tick and hands every stage the same [Frame]; stages
// differ only in how they project it. Markup is assembled as a string, which
// keeps the renderer dependency-free and trivially serializable over SSE.
package scene
