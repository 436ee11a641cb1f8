// package world defines the robot-world collaborator surface the visualizer
// draws against: a World holding robots, the Robot kinematic interface, the
// configuration adapter that reads and writes poses on arbitrary item values,
// and kind inference for untyped items.
package world

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// Robot is a kinematic robot: a configuration vector, per-link world
// transforms derived from it, and per-link styling for highlight overrides.
type Robot interface {
	item.Drawable

	// Name returns the robot name.
	Name() string

	// NumLinks returns the number of links.
	NumLinks() int

	// Config returns a copy of the current configuration.
	//
	// Returns:
	//   - []float32: the configuration, one value per link
	Config() []float32

	// SetConfig replaces the configuration.
	//
	// Parameters:
	//   - cfg: the new configuration
	//
	// Returns:
	//   - error: error if len(cfg) does not match NumLinks
	SetConfig(cfg []float32) error

	// LinkTransform returns the world transform of link i at the current
	// configuration.
	//
	// Parameters:
	//   - i: link index
	//
	// Returns:
	//   - common.RigidTransform: the link's world transform
	LinkTransform(i int) common.RigidTransform

	// Link returns the appearance slot of link i.
	//
	// Parameters:
	//   - i: link index
	//
	// Returns:
	//   - item.Styled: the link's style access
	Link(i int) item.Styled
}

// World is a collection of robots the scene draws and resolves
// configurations against.
type World interface {
	item.Drawable

	// NumRobots returns the number of robots.
	NumRobots() int

	// Robot returns robot i.
	//
	// Parameters:
	//   - i: robot index
	//
	// Returns:
	//   - Robot: the robot, nil if out of range
	Robot(i int) Robot
}

type world struct {
	robots []Robot
}

var _ World = &world{}

// NewWorld creates a world from the given options.
//
// Parameters:
//   - options: optional configuration functions
//
// Returns:
//   - World: the new world
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NumRobots returns the number of robots.
//
// Returns:
//   - int: the robot count
func (w *world) NumRobots() int {
	return len(w.robots)
}

// Robot returns robot i.
//
// Parameters:
//   - i: robot index
//
// Returns:
//   - Robot: the robot, nil if out of range
func (w *world) Robot(i int) Robot {
	if i < 0 || i >= len(w.robots) {
		return nil
	}
	return w.robots[i]
}

// DrawSelf draws every robot in the world.
//
// Parameters:
//   - ctx: the drawing context
func (w *world) DrawSelf(ctx *render.Context) {
	for _, r := range w.robots {
		r.DrawSelf(ctx)
	}
}

// FirstRobot returns the world's first robot, the default target for
// configuration items and IK goals without an explicit robot.
//
// Parameters:
//   - w: the world, may be nil
//
// Returns:
//   - Robot: the first robot, nil when the world is nil or empty
func FirstRobot(w World) Robot {
	if w == nil || w.NumRobots() == 0 {
		return nil
	}
	return w.Robot(0)
}
