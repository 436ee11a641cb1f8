package plugin

import (
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// Stack composes plugins in layers. Input events route from the top of the
// stack down until one plugin consumes them; drawing runs bottom-up so upper
// layers paint over lower ones.
type Stack struct {
	plugins []Plugin
}

var _ Plugin = &Stack{}

// NewStack creates a stack with the given base plugins, bottom first.
//
// Parameters:
//   - base: initial plugins, bottom of the stack first
//
// Returns:
//   - *Stack: the new stack
func NewStack(base ...Plugin) *Stack {
	return &Stack{plugins: base}
}

// Push adds a plugin on top of the stack.
//
// Parameters:
//   - p: the plugin to push
func (s *Stack) Push(p Plugin) {
	if p != nil {
		s.plugins = append(s.plugins, p)
	}
}

// Pop removes and returns the top plugin, nil when the stack is empty.
//
// Returns:
//   - Plugin: the removed plugin
func (s *Stack) Pop() Plugin {
	if len(s.plugins) == 0 {
		return nil
	}
	top := s.plugins[len(s.plugins)-1]
	s.plugins = s.plugins[:len(s.plugins)-1]
	return top
}

// Set replaces the whole stack with a single plugin.
//
// Parameters:
//   - p: the new sole plugin, nil to clear
func (s *Stack) Set(p Plugin) {
	s.plugins = s.plugins[:0]
	if p != nil {
		s.plugins = append(s.plugins, p)
	}
}

// Len returns the number of stacked plugins.
func (s *Stack) Len() int {
	return len(s.plugins)
}

// Snapshot returns a stack over a copy of the current layers. The copy can be
// traversed while the original keeps being mutated, as long as the snapshot
// itself is taken under the caller's lock.
//
// Returns:
//   - *Stack: an independent stack holding the same plugins
func (s *Stack) Snapshot() *Stack {
	cp := make([]Plugin, len(s.plugins))
	copy(cp, s.plugins)
	return &Stack{plugins: cp}
}

// Initialize initializes every plugin bottom-up.
//
// Returns:
//   - bool: false if any plugin refused to initialize
func (s *Stack) Initialize() bool {
	for _, p := range s.plugins {
		if !p.Initialize() {
			return false
		}
	}
	return true
}

// Display draws every plugin bottom-up.
//
// Parameters:
//   - ctx: the drawing context
func (s *Stack) Display(ctx *render.Context) {
	for _, p := range s.plugins {
		p.Display(ctx)
	}
}

// Idle ticks every plugin bottom-up.
//
// Parameters:
//   - dt: seconds since the previous idle tick
func (s *Stack) Idle(dt float64) {
	for _, p := range s.plugins {
		p.Idle(dt)
	}
}

// Keyboard routes a key press top-down until consumed.
//
// Parameters:
//   - key: the pressed key
//   - x, y: pointer position in window coordinates
//
// Returns:
//   - bool: true when some plugin consumed the event
func (s *Stack) Keyboard(key rune, x, y int) bool {
	for i := len(s.plugins) - 1; i >= 0; i-- {
		if s.plugins[i].Keyboard(key, x, y) {
			return true
		}
	}
	return false
}
