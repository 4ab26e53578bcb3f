// Package engine runs one background animation per Handle.
//
// A Handle owns its simulation state, pointer tracker and subscriptions. It
// is driven entirely by its Host: the host calls back once per requested
// frame, reports surface resizes and pointer moves, and the engine never
// spawns goroutines of its own.
//
// Lifecycle:
//
//	Idle --Start--> Running --Stop--> Idle
//	Running --frame/resize--> Running
//
// Stop waits for an in-flight frame, cancels the pending request and
// releases every subscription before returning. A frame callback the host
// had already queued finds the handle stopped and returns without drawing.
package engine
