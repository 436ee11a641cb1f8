// package render provides the immediate-mode drawing surface the visualizer
// draws through: a Backend that consumes world-space primitives, a Context
// that composes rigid transforms and records replayable command lists, and a
// CacheObject that caches compiled drawings keyed by a parameter fingerprint.
package render

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// Backend is the opaque immediate-mode rendering sink. Primitives arrive in
// world coordinates; the backend owns camera, surface, and presentation state.
type Backend interface {
	// DrawPoint draws a single screen-aligned point marker.
	//
	// Parameters:
	//   - p: world-space position
	//   - size: marker size in pixels
	//   - c: marker color
	DrawPoint(p common.Vec3, size float32, c common.Color)

	// DrawLine draws a line segment between two world-space points.
	//
	// Parameters:
	//   - a: segment start in world space
	//   - b: segment end in world space
	//   - width: line width in pixels
	//   - c: line color
	DrawLine(a, b common.Vec3, width float32, c common.Color)

	// DrawText draws a floating text overlay anchored at a world-space point.
	//
	// Parameters:
	//   - p: world-space anchor
	//   - text: the string to display
	//   - height: text height in points
	//   - c: text color
	DrawText(p common.Vec3, text string, height float32, c common.Color)

	// BeginFrame prepares the backend for a new frame.
	//
	// Returns:
	//   - error: error if the frame target could not be acquired
	BeginFrame() error

	// EndFrame flushes all primitives batched since BeginFrame.
	EndFrame()

	// Present displays the finished frame. Must be called after EndFrame.
	Present()

	// Resize reconfigures the backend's render target.
	//
	// Parameters:
	//   - width, height: new target size in pixels
	Resize(width, height int)

	// Destroy releases all backend resources. Safe to call multiple times.
	Destroy()
}

type cmdOp uint8

const (
	opPoint cmdOp = iota
	opLine
	opText
	opPush
	opPop
)

// command is one recorded primitive or transform-stack operation. Vertices
// are stored in the coordinates they were issued in; the transform stack is
// applied at execution time, so a recorded list can be replayed under a
// different stack top.
type command struct {
	op        cmdOp
	a, b      common.Vec3
	size      float32
	color     common.Color
	text      string
	transform common.RigidTransform
}

// commandList is a compiled, replayable recording of drawing commands.
type commandList struct {
	name string
	cmds []command
}

// Context is the drawing surface handed to draw functions. It maintains a
// rigid-transform stack (composed onto every primitive) and an optional
// active recording that captures commands while also executing them.
//
// A Context is confined to the render thread; it performs no locking.
type Context struct {
	backend   Backend
	stack     []common.RigidTransform
	recording *commandList
}

// NewContext creates a drawing context over the given backend with an
// identity transform stack.
//
// Parameters:
//   - backend: the primitive sink (must not be nil)
//
// Returns:
//   - *Context: the new context
func NewContext(backend Backend) *Context {
	return &Context{
		backend: backend,
		stack:   []common.RigidTransform{common.IdentityTransform()},
	}
}

// Backend returns the underlying primitive sink.
func (c *Context) Backend() Backend {
	return c.backend
}

// PushTransform composes t onto the current transform and pushes the result.
//
// Parameters:
//   - t: the transform to pre-multiply
func (c *Context) PushTransform(t common.RigidTransform) {
	if c.recording != nil {
		c.recording.cmds = append(c.recording.cmds, command{op: opPush, transform: t})
	}
	c.stack = append(c.stack, c.current().Mul(t))
}

// PopTransform removes the top of the transform stack. Popping the root
// identity entry is a no-op.
func (c *Context) PopTransform() {
	if c.recording != nil {
		c.recording.cmds = append(c.recording.cmds, command{op: opPop})
	}
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// current returns the composed transform at the top of the stack.
func (c *Context) current() common.RigidTransform {
	return c.stack[len(c.stack)-1]
}

// Point draws a point marker at p under the current transform.
//
// Parameters:
//   - p: position in the current frame
//   - size: marker size in pixels
//   - col: marker color
func (c *Context) Point(p common.Vec3, size float32, col common.Color) {
	if c.recording != nil {
		c.recording.cmds = append(c.recording.cmds, command{op: opPoint, a: p, size: size, color: col})
	}
	c.backend.DrawPoint(c.current().Apply(p), size, col)
}

// Line draws a segment from a to b under the current transform.
//
// Parameters:
//   - a, b: segment endpoints in the current frame
//   - width: line width in pixels
//   - col: line color
func (c *Context) Line(a, b common.Vec3, width float32, col common.Color) {
	if c.recording != nil {
		c.recording.cmds = append(c.recording.cmds, command{op: opLine, a: a, b: b, size: width, color: col})
	}
	t := c.current()
	c.backend.DrawLine(t.Apply(a), t.Apply(b), width, col)
}

// Text draws a text overlay anchored at p under the current transform.
//
// Parameters:
//   - p: anchor in the current frame
//   - text: the string to display
//   - height: text height in points
//   - col: text color
func (c *Context) Text(p common.Vec3, text string, height float32, col common.Color) {
	if c.recording != nil {
		c.recording.cmds = append(c.recording.cmds, command{op: opText, a: p, size: height, color: col, text: text})
	}
	c.backend.DrawText(c.current().Apply(p), text, height, col)
}

// HermiteCurve draws a cubic Hermite curve as a polyline under the current
// transform, sampled at a fixed resolution.
//
// Parameters:
//   - p1, v1: start point and tangent
//   - p2, v2: end point and tangent
//   - width: line width in pixels
//   - col: curve color
func (c *Context) HermiteCurve(p1, v1, p2, v2 common.Vec3, width float32, col common.Color) {
	const segments = 16
	prev := p1
	for i := 1; i <= segments; i++ {
		u := float32(i) / segments
		next := common.HermiteEval(p1, v1, p2, v2, u)
		c.Line(prev, next, width, col)
		prev = next
	}
}

// Recording reports whether the context is currently compiling a command
// list. Draw functions issued while true are being captured.
func (c *Context) Recording() bool {
	return c.recording != nil
}

// Reset abandons any active recording and unwinds the transform stack to the
// root identity. Called after a draw function panics, so one item's failure
// cannot corrupt the stack seen by the next item.
func (c *Context) Reset() {
	c.recording = nil
	c.stack = c.stack[:1]
}

// replay executes a compiled command list under the current transform stack.
// Push/pop pairs recorded in the list nest below the stack top at call time.
func (c *Context) replay(list *commandList) {
	depth := 0
	for i := range list.cmds {
		cmd := &list.cmds[i]
		switch cmd.op {
		case opPush:
			c.stack = append(c.stack, c.current().Mul(cmd.transform))
			depth++
		case opPop:
			if depth > 0 && len(c.stack) > 1 {
				c.stack = c.stack[:len(c.stack)-1]
				depth--
			}
		case opPoint:
			c.backend.DrawPoint(c.current().Apply(cmd.a), cmd.size, cmd.color)
		case opLine:
			t := c.current()
			c.backend.DrawLine(t.Apply(cmd.a), t.Apply(cmd.b), cmd.size, cmd.color)
		case opText:
			c.backend.DrawText(c.current().Apply(cmd.a), cmd.text, cmd.size, cmd.color)
		}
	}
	// Unbalanced push/pop inside a recorded list must not corrupt the stack.
	for depth > 0 && len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
		depth--
	}
}
