// Package viz draws running models in the terminal using Bubble Tea.
//
//   - [Viewer]: plays one model, drawing bodies and trails in the x-z plane
//   - [Menu]: lists the presets and opens the chosen one in a Viewer
//   - [Canvas]: Braille-based pixel canvas, with [Viewport] for world
//     coordinates and [Camera] for rotated views
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Restart the scene
//	W/A/S/D - Kick the player body
//	L       - Launch a satellite from the player
//	T       - Cycle color themes
//	?       - Show help overlay
package viz
