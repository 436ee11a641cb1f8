package appearance

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// labelMergeDistance is the world-space radius within which same-colored
// labels collapse into one multi-line entry.
const labelMergeDistance = 0.1

// LabelSink collects the floating text labels emitted while drawing a frame.
// Labels closer than the merge distance with the same color are merged into a
// single multi-line entry so dense scenes stay readable.
//
// A sink lives for one frame; the registry resets it before each render pass.
type LabelSink struct {
	labels []common.Label
}

// NewLabelSink creates an empty sink.
//
// Returns:
//   - *LabelSink: the new sink
func NewLabelSink() *LabelSink {
	return &LabelSink{}
}

// Add emits one label line, merging it into an existing nearby entry of the
// same color when possible.
//
// Parameters:
//   - pos: label anchor in world coordinates
//   - text: the label line
//   - color: label color
func (s *LabelSink) Add(pos common.Vec3, text string, color common.Color) {
	for i := range s.labels {
		l := &s.labels[i]
		if l.Color == color && l.Position.Distance(pos) < labelMergeDistance {
			l.Texts = append(l.Texts, text)
			return
		}
	}
	s.labels = append(s.labels, common.Label{
		Position: pos,
		Texts:    []string{text},
		Color:    color,
	})
}

// Labels returns the merged labels collected so far.
//
// Returns:
//   - []common.Label: the labels in emission order
func (s *LabelSink) Labels() []common.Label {
	return s.labels
}

// Reset discards all collected labels, keeping capacity for the next frame.
func (s *LabelSink) Reset() {
	s.labels = s.labels[:0]
}

// Flush draws the merged labels through the context. Multi-line entries stack
// downward from the anchor in fixed steps.
//
// Parameters:
//   - ctx: the drawing context
func (s *LabelSink) Flush(ctx *render.Context) {
	const lineStep = 0.05
	const textHeight = 12
	for i := range s.labels {
		l := &s.labels[i]
		pos := l.Position
		for _, text := range l.Texts {
			ctx.Text(pos, text, textHeight, l.Color)
			pos[2] -= lineStep
		}
	}
}
