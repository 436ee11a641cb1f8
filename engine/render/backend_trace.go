package render

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// TraceOp identifies the kind of a recorded backend call.
type TraceOp uint8

const (
	// TracePoint records a DrawPoint call.
	TracePoint TraceOp = iota
	// TraceLine records a DrawLine call.
	TraceLine
	// TraceText records a DrawText call.
	TraceText
)

// TraceCall is one recorded primitive call with its resolved world-space
// arguments.
type TraceCall struct {
	// Op is the call kind.
	Op TraceOp

	// A is the primary position (point, line start, or text anchor).
	A common.Vec3

	// B is the line end position (TraceLine only).
	B common.Vec3

	// Size is the point size, line width, or text height.
	Size float32

	// Color is the primitive color.
	Color common.Color

	// Text is the text string (TraceText only).
	Text string
}

// TraceBackend is a Backend that records every primitive call instead of
// rendering. It backs headless sessions and lets tests assert on resolved
// primitive traces rather than pixels.
type TraceBackend struct {
	calls  []TraceCall
	frames int
}

var _ Backend = &TraceBackend{}

// NewTraceBackend creates an empty recording backend.
//
// Returns:
//   - *TraceBackend: the new backend
func NewTraceBackend() *TraceBackend {
	return &TraceBackend{}
}

// Calls returns all primitive calls recorded since the last Reset.
//
// Returns:
//   - []TraceCall: the recorded calls in issue order
func (t *TraceBackend) Calls() []TraceCall {
	return t.calls
}

// Frames returns the number of completed BeginFrame/EndFrame cycles.
func (t *TraceBackend) Frames() int {
	return t.frames
}

// Reset discards all recorded calls.
func (t *TraceBackend) Reset() {
	t.calls = t.calls[:0]
}

func (t *TraceBackend) DrawPoint(p common.Vec3, size float32, c common.Color) {
	t.calls = append(t.calls, TraceCall{Op: TracePoint, A: p, Size: size, Color: c})
}

func (t *TraceBackend) DrawLine(a, b common.Vec3, width float32, c common.Color) {
	t.calls = append(t.calls, TraceCall{Op: TraceLine, A: a, B: b, Size: width, Color: c})
}

func (t *TraceBackend) DrawText(p common.Vec3, text string, height float32, c common.Color) {
	t.calls = append(t.calls, TraceCall{Op: TraceText, A: p, Size: height, Color: c, Text: text})
}

func (t *TraceBackend) BeginFrame() error {
	return nil
}

func (t *TraceBackend) EndFrame() {
	t.frames++
}

func (t *TraceBackend) Present() {}

func (t *TraceBackend) Resize(width, height int) {}

func (t *TraceBackend) Destroy() {}
