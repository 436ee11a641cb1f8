package plugin

import (
	"testing"

	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/stretchr/testify/assert"
)

// orderPlugin appends its tag to a shared trace on each callback.
type orderPlugin struct {
	tag     string
	trace   *[]string
	consume bool
}

func (p *orderPlugin) Initialize() bool {
	*p.trace = append(*p.trace, "init:"+p.tag)
	return true
}

func (p *orderPlugin) Display(ctx *render.Context) {
	*p.trace = append(*p.trace, "display:"+p.tag)
}

func (p *orderPlugin) Idle(dt float64) {
	*p.trace = append(*p.trace, "idle:"+p.tag)
}

func (p *orderPlugin) Keyboard(key rune, x, y int) bool {
	*p.trace = append(*p.trace, "key:"+p.tag)
	return p.consume
}

func TestStackDisplaysBottomUp(t *testing.T) {
	var trace []string
	s := NewStack(
		&orderPlugin{tag: "base", trace: &trace},
		&orderPlugin{tag: "overlay", trace: &trace},
	)

	s.Display(nil)
	assert.Equal(t, []string{"display:base", "display:overlay"}, trace)
}

func TestStackRoutesKeysTopDown(t *testing.T) {
	var trace []string
	base := &orderPlugin{tag: "base", trace: &trace}
	overlay := &orderPlugin{tag: "overlay", trace: &trace, consume: true}
	s := NewStack(base, overlay)

	assert.True(t, s.Keyboard('a', 0, 0))
	assert.Equal(t, []string{"key:overlay"}, trace, "a consuming overlay shadows the base")

	trace = trace[:0]
	overlay.consume = false
	assert.False(t, s.Keyboard('a', 0, 0))
	assert.Equal(t, []string{"key:overlay", "key:base"}, trace)
}

func TestStackPushPopSet(t *testing.T) {
	var trace []string
	base := &orderPlugin{tag: "base", trace: &trace}
	s := NewStack(base)

	overlay := &orderPlugin{tag: "overlay", trace: &trace}
	s.Push(overlay)
	s.Push(nil)
	assert.Equal(t, 2, s.Len())

	assert.Same(t, overlay, s.Pop())
	assert.Same(t, base, s.Pop())
	assert.Nil(t, s.Pop())

	s.Set(base)
	assert.Equal(t, 1, s.Len())
	s.Set(nil)
	assert.Equal(t, 0, s.Len())
}

func TestSnapshotUnaffectedByMutation(t *testing.T) {
	var trace []string
	base := &orderPlugin{tag: "base", trace: &trace}
	overlay := &orderPlugin{tag: "overlay", trace: &trace}
	s := NewStack(base, overlay)

	snap := s.Snapshot()
	s.Pop()
	s.Set(nil)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, snap.Len())

	snap.Display(nil)
	assert.Equal(t, []string{"display:base", "display:overlay"}, trace)

	// Growing the snapshot must not leak into the emptied original.
	snap.Push(&orderPlugin{tag: "extra", trace: &trace})
	assert.Equal(t, 0, s.Len())
}

func TestMultiFansOut(t *testing.T) {
	var trace []string
	m := NewMulti()
	m.Add(&orderPlugin{tag: "a", trace: &trace})
	m.Add(&orderPlugin{tag: "b", trace: &trace, consume: true})
	m.Add(nil)
	assert.Equal(t, 2, m.Len())

	m.Idle(0.1)
	assert.Equal(t, []string{"idle:a", "idle:b"}, trace)

	trace = trace[:0]
	assert.True(t, m.Keyboard('x', 0, 0), "consumption is OR-ed")
	assert.Equal(t, []string{"key:a", "key:b"}, trace, "every plugin still sees the event")
}
