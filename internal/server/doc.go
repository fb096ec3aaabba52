// Package server provides HTTP routing, middleware, and the web stage for
// the dancer.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method-qualified patterns.
//
// # Web Stage
//
// [DanceServer] owns the route table:
//
//	GET    /                 → HTML shell page
//	GET    /events           → SSE frame stream (one JSON event per tick)
//	GET    /health           → liveness probe
//	GET    /api/params       → parameter snapshot
//	POST   /api/params       → set one parameter by registry name
//	POST   /api/bpm          → retarget the tempo spring
//	POST   /api/control      → start/stop/still/reset/drift/auto/artwork
//	GET    /api/stats        → simulation counters
//	POST   /api/stages       → attach a synchronized stage
//	DELETE /api/stages/{id}  → detach a stage
//	GET    /api/tracks       → rows of the backing grid
//
// Every stage in a frame event carries a complete SVG document; the shell
// page swaps them into the DOM as they arrive. Physics runs once per tick in
// the engine regardless of how many stages or SSE clients are attached.
package server
