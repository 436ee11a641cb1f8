package plugin

import (
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// Multi composes plugins side by side in one window. Every plugin receives
// every event; drawing runs in registration order.
//
// Viewport splitting is left to the backend camera; Multi only fans out the
// plugin callbacks.
type Multi struct {
	plugins []Plugin
}

var _ Plugin = &Multi{}

// NewMulti creates an empty side-by-side composition.
//
// Returns:
//   - *Multi: the new composition
func NewMulti() *Multi {
	return &Multi{}
}

// Add appends a plugin to the composition.
//
// Parameters:
//   - p: the plugin to add
func (m *Multi) Add(p Plugin) {
	if p != nil {
		m.plugins = append(m.plugins, p)
	}
}

// Len returns the number of composed plugins.
func (m *Multi) Len() int {
	return len(m.plugins)
}

func (m *Multi) Initialize() bool {
	for _, p := range m.plugins {
		if !p.Initialize() {
			return false
		}
	}
	return true
}

func (m *Multi) Display(ctx *render.Context) {
	for _, p := range m.plugins {
		p.Display(ctx)
	}
}

func (m *Multi) Idle(dt float64) {
	for _, p := range m.plugins {
		p.Idle(dt)
	}
}

func (m *Multi) Keyboard(key rune, x, y int) bool {
	consumed := false
	for _, p := range m.plugins {
		if p.Keyboard(key, x, y) {
			consumed = true
		}
	}
	return consumed
}
