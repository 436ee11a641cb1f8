package item

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// Frame is a named coordinate frame, optionally parented to another frame.
// The relative transform is authoritative; world coordinates are derived by
// walking the parent chain.
type Frame struct {
	name     string
	parent   *Frame
	relative common.RigidTransform
}

// NewFrame creates a frame with the given relative transform.
//
// Parameters:
//   - name: frame name
//   - parent: parent frame, nil for a root frame
//   - relative: transform relative to the parent (or world if parent is nil)
//
// Returns:
//   - *Frame: the new frame
func NewFrame(name string, parent *Frame, relative common.RigidTransform) *Frame {
	return &Frame{
		name:     name,
		parent:   parent,
		relative: relative,
	}
}

// Name returns the frame name.
func (f *Frame) Name() string {
	return f.name
}

// Parent returns the parent frame, or nil for a root frame.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// RelativeCoordinates returns the transform relative to the parent frame.
func (f *Frame) RelativeCoordinates() common.RigidTransform {
	return f.relative
}

// SetRelativeCoordinates replaces the transform relative to the parent frame.
//
// Parameters:
//   - t: the new relative transform
func (f *Frame) SetRelativeCoordinates(t common.RigidTransform) {
	f.relative = t
}

// WorldCoordinates returns the frame's transform in world coordinates,
// composing the parent chain.
//
// Returns:
//   - common.RigidTransform: the world transform
func (f *Frame) WorldCoordinates() common.RigidTransform {
	if f.parent == nil {
		return f.relative
	}
	return f.parent.WorldCoordinates().Mul(f.relative)
}

// Point is a position expressed in a frame's local coordinates.
type Point struct {
	local common.Vec3
	frame *Frame
}

// NewPoint creates a point at the given local coordinates.
//
// Parameters:
//   - local: position in the frame's coordinates
//   - frame: owning frame, nil for world coordinates
//
// Returns:
//   - *Point: the new point
func NewPoint(local common.Vec3, frame *Frame) *Point {
	return &Point{local: local, frame: frame}
}

// LocalCoordinates returns the position in the owning frame's coordinates.
func (p *Point) LocalCoordinates() common.Vec3 {
	return p.local
}

// Frame returns the owning frame, or nil for world coordinates.
func (p *Point) Frame() *Frame {
	return p.frame
}

// WorldCoordinates returns the position in world coordinates.
//
// Returns:
//   - common.Vec3: the world position
func (p *Point) WorldCoordinates() common.Vec3 {
	if p.frame == nil {
		return p.local
	}
	return p.frame.WorldCoordinates().Apply(p.local)
}

// Direction is a unit-free direction expressed in a frame's local
// coordinates. Unlike Point, only the rotation of the frame chain applies.
type Direction struct {
	local common.Vec3
	frame *Frame
}

// NewDirection creates a direction in the given frame.
//
// Parameters:
//   - local: direction in the frame's coordinates
//   - frame: owning frame, nil for world coordinates
//
// Returns:
//   - *Direction: the new direction
func NewDirection(local common.Vec3, frame *Frame) *Direction {
	return &Direction{local: local, frame: frame}
}

// LocalCoordinates returns the direction in the owning frame's coordinates.
func (d *Direction) LocalCoordinates() common.Vec3 {
	return d.local
}

// Frame returns the owning frame, or nil for world coordinates.
func (d *Direction) Frame() *Frame {
	return d.frame
}

// WorldCoordinates returns the direction rotated into world coordinates.
//
// Returns:
//   - common.Vec3: the world direction
func (d *Direction) WorldCoordinates() common.Vec3 {
	if d.frame == nil {
		return d.local
	}
	return d.frame.WorldCoordinates().R.Apply(d.local)
}

// Transform relates two frames: the relative transform maps source
// coordinates into destination coordinates.
type Transform struct {
	source *Frame
	dest   *Frame
}

// NewTransform creates a transform between two frames.
//
// Parameters:
//   - source: the source frame
//   - dest: the destination frame, nil for world
//
// Returns:
//   - *Transform: the new transform
func NewTransform(source, dest *Frame) *Transform {
	return &Transform{source: source, dest: dest}
}

// Source returns the source frame.
func (t *Transform) Source() *Frame {
	return t.source
}

// Dest returns the destination frame, or nil for world.
func (t *Transform) Dest() *Frame {
	return t.dest
}

// RelativeCoordinates returns the transform mapping source coordinates into
// destination coordinates.
//
// Returns:
//   - common.RigidTransform: dest^-1 * source, or source's world transform
//     when dest is nil
func (t *Transform) RelativeCoordinates() common.RigidTransform {
	src := t.source.WorldCoordinates()
	if t.dest == nil {
		return src
	}
	return t.dest.WorldCoordinates().Inverse().Mul(src)
}

// Group is a named collection of coordinate-model sub-items. Groups may nest.
type Group struct {
	frames     map[string]*Frame
	points     map[string]*Point
	directions map[string]*Direction
	subgroups  map[string]*Group
}

// NewGroup creates an empty group.
//
// Returns:
//   - *Group: the new group
func NewGroup() *Group {
	return &Group{
		frames:     map[string]*Frame{},
		points:     map[string]*Point{},
		directions: map[string]*Direction{},
		subgroups:  map[string]*Group{},
	}
}

// AddFrame registers a frame under the given name.
func (g *Group) AddFrame(name string, f *Frame) {
	g.frames[name] = f
}

// AddPoint registers a point under the given name.
func (g *Group) AddPoint(name string, p *Point) {
	g.points[name] = p
}

// AddDirection registers a direction under the given name.
func (g *Group) AddDirection(name string, d *Direction) {
	g.directions[name] = d
}

// AddSubgroup registers a nested group under the given name.
func (g *Group) AddSubgroup(name string, sub *Group) {
	g.subgroups[name] = sub
}

// Frames returns the named frames.
func (g *Group) Frames() map[string]*Frame {
	return g.frames
}

// Points returns the named points.
func (g *Group) Points() map[string]*Point {
	return g.points
}

// Directions returns the named directions.
func (g *Group) Directions() map[string]*Direction {
	return g.directions
}

// Subgroups returns the named nested groups.
func (g *Group) Subgroups() map[string]*Group {
	return g.subgroups
}
