// Package control drives one background interactively.
//
// A [Session] owns the engine handle behind a front-end and turns the
// shared key commands into configuration changes:
//
//   - v: next variant
//   - e: next pointer effect (none included)
//   - i: next intensity
//   - t: next theme mode (light, dark, system)
//   - r: reseed
//   - space: stop or start the loop
//   - q: quit
//
// Variant, effect and intensity changes recreate the handle on the same
// host; theme changes go through the shared resolver so the running
// handle recolors in place.
package control
