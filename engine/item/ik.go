package item

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// IKGoal constrains a robot link's position and/or orientation. The
// constraint dimensionality drives how the goal is drawn: a fully constrained
// goal shows two linked axis triads, a point goal two markers, a hinge goal
// two axis segments.
type IKGoal struct {
	link     int
	destLink int
	robot    LinkTransformer

	posDims  int // 0 or 3
	localPos common.Vec3
	worldPos common.Vec3

	rotDims   int // 0 (free), 1 (axis), or 3 (fixed)
	rotation  common.Rotation
	localAxis common.Vec3
	worldAxis common.Vec3
}

// NewPointGoal creates a position-only goal: the link-local point must
// coincide with the world-space target.
//
// Parameters:
//   - link: constrained link index
//   - local: point in link coordinates
//   - world: target point in world coordinates
//
// Returns:
//   - *IKGoal: the new goal
func NewPointGoal(link int, local, world common.Vec3) *IKGoal {
	return &IKGoal{
		link:     link,
		destLink: -1,
		posDims:  3,
		localPos: local,
		worldPos: world,
	}
}

// NewFixedGoal creates a fully constrained 6-DOF goal: position plus a fixed
// target orientation.
//
// Parameters:
//   - link: constrained link index
//   - rotation: target link orientation in world coordinates
//   - local: point in link coordinates
//   - world: target point in world coordinates
//
// Returns:
//   - *IKGoal: the new goal
func NewFixedGoal(link int, rotation common.Rotation, local, world common.Vec3) *IKGoal {
	return &IKGoal{
		link:     link,
		destLink: -1,
		posDims:  3,
		localPos: local,
		worldPos: world,
		rotDims:  3,
		rotation: rotation,
	}
}

// NewHingeGoal creates a goal constraining a point and an axis: the link may
// still spin about the axis.
//
// Parameters:
//   - link: constrained link index
//   - localAxis, worldAxis: the constrained axis in link and world coordinates
//   - local, world: the constrained point in link and world coordinates
//
// Returns:
//   - *IKGoal: the new goal
func NewHingeGoal(link int, localAxis, worldAxis, local, world common.Vec3) *IKGoal {
	return &IKGoal{
		link:      link,
		destLink:  -1,
		posDims:   3,
		localPos:  local,
		worldPos:  world,
		rotDims:   1,
		localAxis: localAxis,
		worldAxis: worldAxis,
	}
}

// NewOrientationGoal creates a rotation-only goal: the link must reach the
// target orientation while its position stays free.
//
// Parameters:
//   - link: constrained link index
//   - rotation: target link orientation in world coordinates
//
// Returns:
//   - *IKGoal: the new goal
func NewOrientationGoal(link int, rotation common.Rotation) *IKGoal {
	return &IKGoal{
		link:     link,
		destLink: -1,
		rotDims:  3,
		rotation: rotation,
	}
}

// Link returns the constrained link index.
func (g *IKGoal) Link() int {
	return g.link
}

// DestLink returns the destination link index, -1 for the world frame.
func (g *IKGoal) DestLink() int {
	return g.destLink
}

// Robot returns the goal's explicit robot reference, or nil if the goal
// should resolve against the scene world's first robot.
func (g *IKGoal) Robot() LinkTransformer {
	return g.robot
}

// SetRobot attaches an explicit robot the goal resolves link transforms from.
//
// Parameters:
//   - r: the robot, may be nil to fall back to the scene world
func (g *IKGoal) SetRobot(r LinkTransformer) {
	g.robot = r
}

// NumPosDims returns the number of constrained positional dimensions (0 or 3).
func (g *IKGoal) NumPosDims() int {
	return g.posDims
}

// NumRotDims returns the number of constrained rotational dimensions
// (0 free, 1 axis, 3 fixed).
func (g *IKGoal) NumRotDims() int {
	return g.rotDims
}

// Position returns the constrained point.
//
// Returns:
//   - common.Vec3: the point in link coordinates
//   - common.Vec3: the target point in world coordinates
func (g *IKGoal) Position() (common.Vec3, common.Vec3) {
	return g.localPos, g.worldPos
}

// Rotation returns the target orientation for fully constrained goals.
//
// Returns:
//   - common.Rotation: the target orientation
//   - bool: false unless NumRotDims is 3
func (g *IKGoal) Rotation() (common.Rotation, bool) {
	if g.rotDims != 3 {
		return common.IdentityRotation(), false
	}
	return g.rotation, true
}

// RotationAxis returns the constrained axis for hinge goals.
//
// Returns:
//   - common.Vec3: the axis in link coordinates
//   - common.Vec3: the axis in world coordinates
//   - bool: false unless NumRotDims is 1
func (g *IKGoal) RotationAxis() (common.Vec3, common.Vec3, bool) {
	if g.rotDims != 1 {
		return common.Vec3{}, common.Vec3{}, false
	}
	return g.localAxis, g.worldAxis, true
}
