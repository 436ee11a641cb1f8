// package item defines the closed set of value kinds the visualizer knows how
// to draw, the capability interfaces items may implement, and the coordinate
// model types (frames, points, directions, transforms, groups) used by
// composite scenes.
package item

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/render"
)

// Kind identifies the drawing strategy for a scene item. The set is closed:
// drawing dispatches over these kinds, and values that match none of them are
// skipped with a diagnostic.
type Kind uint8

const (
	// KindUnknown is the zero value; items of unknown kind are not drawn.
	KindUnknown Kind = iota
	// KindPoint is a coordinates-model point attached to a frame.
	KindPoint
	// KindDirection is a coordinates-model direction attached to a frame.
	KindDirection
	// KindFrame is a coordinates-model frame (drawn as an axis triad).
	KindFrame
	// KindTransform is a coordinates-model transform between two frames.
	KindTransform
	// KindGroup is a named collection of coordinate-model sub-items.
	KindGroup
	// KindContactPoint is a contact point with a normal.
	KindContactPoint
	// KindHold is an IK constraint plus its contact points.
	KindHold
	// KindConfig is a robot configuration vector.
	KindConfig
	// KindVector3 is a bare 3-vector drawn as a point marker.
	KindVector3
	// KindRigidTransform is a bare rigid transform drawn as an axis triad.
	KindRigidTransform
	// KindIKGoal is an inverse-kinematics goal.
	KindIKGoal
)

// String returns the lowercase kind name used in attribute keys and logs.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindDirection:
		return "direction"
	case KindFrame:
		return "frame"
	case KindTransform:
		return "transform"
	case KindGroup:
		return "group"
	case KindContactPoint:
		return "contact_point"
	case KindHold:
		return "hold"
	case KindConfig:
		return "config"
	case KindVector3:
		return "vector3"
	case KindRigidTransform:
		return "rigid_transform"
	case KindIKGoal:
		return "ik_goal"
	default:
		return "unknown"
	}
}

// Drawable is the capability of items that render themselves. Such items
// bypass the appearance layer's cache and draw directly each frame, managing
// their own caching if they need any.
type Drawable interface {
	// DrawSelf issues the item's draw calls through ctx.
	//
	// Parameters:
	//   - ctx: the drawing context
	DrawSelf(ctx *render.Context)
}

// Styled is the capability of items that expose a mutable appearance slot.
// The appearance layer snapshots and restores the style around temporary
// overrides (custom appearances and color attributes).
type Styled interface {
	// Style returns the item's current style.
	//
	// Returns:
	//   - *common.Style: the style, never nil
	Style() *common.Style

	// SetStyle replaces the item's style.
	//
	// Parameters:
	//   - style: the new style
	SetStyle(style common.Style)
}

// LinkTransformer is the minimal robot surface an IK goal needs to resolve
// link transforms. The world package's Robot satisfies it.
type LinkTransformer interface {
	// NumLinks returns the number of links.
	NumLinks() int

	// LinkTransform returns the world transform of link i.
	//
	// Parameters:
	//   - i: link index
	//
	// Returns:
	//   - common.RigidTransform: the link's world transform
	LinkTransform(i int) common.RigidTransform
}

// Config is a robot configuration vector.
type Config []float32
