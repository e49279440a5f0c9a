// Package viz provides the terminal view of a binary phase diagram.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: canvas plus readout panel, driven by a diagram.Dragger
//   - [Canvas]: Braille-based pixel canvas; [Layers] stacks several with colors
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Mouse  - Press on the point, drag, release
//	Arrows - Nudge the point
//	R      - Reset to the start point
//	P      - Cycle lever-arm policy
//	L      - Cycle equilibrium locator
//	T      - Cycle color themes
//	?      - Show help overlay
//
// Mouse reporting requires a terminal with cell-motion tracking; [Run] enables
// it together with the alternate screen.
package viz
