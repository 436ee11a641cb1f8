// package plugin defines the hook surface the render loop drives each frame
// and compositions of plugins: a stack where the top plugin sees input first,
// and a side-by-side multi-plugin that splits the viewport.
package plugin

import (
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// Plugin receives the per-frame and input callbacks of a visualizer session.
// The scene registry is itself a Plugin; user plugins wrap or stack on it.
type Plugin interface {
	// Initialize prepares the plugin for use.
	//
	// Returns:
	//   - bool: false to abort session startup
	Initialize() bool

	// Display draws the plugin's content for the current frame.
	//
	// Parameters:
	//   - ctx: the drawing context
	Display(ctx *render.Context)

	// Idle advances plugin state between frames.
	//
	// Parameters:
	//   - dt: seconds since the previous idle tick
	Idle(dt float64)

	// Keyboard handles a key press.
	//
	// Parameters:
	//   - key: the pressed key
	//   - x, y: pointer position in window coordinates
	//
	// Returns:
	//   - bool: true when the event was consumed
	Keyboard(key rune, x, y int) bool
}
