// package window wraps platform windowing behind a small interface the render
// loop drives: non-blocking event polling, show/hide for the visualizer's
// window mode state machine, and a WebGPU surface descriptor for backend
// creation.
package window

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button in input callbacks.
type MouseButton uint8

const (
	// MouseLeft is the left (primary) button.
	MouseLeft MouseButton = iota
	// MouseMiddle is the middle button or wheel click.
	MouseMiddle
	// MouseRight is the right (secondary) button.
	MouseRight
)

// Window provides platform windowing and input event handling for one
// visualizer session. Windows are created, polled, and closed on the render
// thread only.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is
	// resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetKeyCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the pressed key and pointer position
	SetKeyCallback(callback func(key rune, x, y int))

	// SetMouseButtonCallback sets the callback for mouse button transitions.
	//
	// Parameters:
	//   - callback: function receiving the button, pressed state, and position
	SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int))

	// SetMouseMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer position
	SetMouseMoveCallback(callback func(x, y int))

	// SetCloseCallback sets the function called when the user requests the
	// window to close. The visualizer uses it to end dialog sessions.
	//
	// Parameters:
	//   - callback: function to call on a close request
	SetCloseCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface over this window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor, nil if the
	//     window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Show makes the window visible.
	Show()

	// Hide removes the window from the screen without destroying it. A hidden
	// window keeps its surface and can be shown again.
	Hide()

	// SetTitle changes the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Title returns the current title bar text.
	Title() string

	// Poll processes pending window events without blocking.
	//
	// Returns:
	//   - bool: false once the window has been closed or asked to close
	Poll() bool

	// Close destroys the window and releases its platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// visWindow is the implementation of the Window interface. Holds window
// configuration, platform state, and event callbacks.
type visWindow struct {
	title  string
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKey         func(key rune, x, y int)
	onMouseButton func(button MouseButton, pressed bool, x, y int)
	onMouseMove   func(x, y int)
	onClose       func()
}

var _ Window = &visWindow{}

// NewWindow creates a window with the specified options. Applies each option
// in order, then fills fields left unset with defaults.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &visWindow{}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, "vista")
	w.width = common.Coalesce(w.width, 1280)
	w.height = common.Coalesce(w.height, 720)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *visWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *visWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *visWindow) SetKeyCallback(callback func(key rune, x, y int)) {
	w.onKey = callback
}

func (w *visWindow) SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y int)) {
	w.onMouseButton = callback
}

func (w *visWindow) SetMouseMoveCallback(callback func(x, y int)) {
	w.onMouseMove = callback
}

func (w *visWindow) SetCloseCallback(callback func()) {
	w.onClose = callback
}

func (w *visWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *visWindow) Show() {
	platformShowWindow(w, true)
}

func (w *visWindow) Hide() {
	platformShowWindow(w, false)
}

func (w *visWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *visWindow) Title() string {
	return w.title
}

func (w *visWindow) Poll() bool {
	return platformPoll(w)
}

func (w *visWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *visWindow) Width() int {
	return w.width
}

func (w *visWindow) Height() int {
	return w.height
}
