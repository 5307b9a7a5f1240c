// Package viz renders the circuit in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, drawn in world coordinates
//     through a [Viewport]
//   - [CircuitShape]: wire loop with capacitor and inductor symbols
//   - [CircuitGraphs] and [PlotGraph]: scrolling asciigraph panels
//   - [Model]: the bubbletea live view
//
// # Key Bindings
//
//	Space - Start/Stop the circuit clock
//	R     - Reset time and charges
//	S     - Single step while stopped
//	T     - Cycle color themes
//	G     - Cycle graph panels
//	?     - Show help overlay
package viz
