package world

import (
	"fmt"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/chewxy/math32"
)

// chainLink is one revolute joint of a chain robot. The style slot is what
// the appearance layer snapshots and overrides.
type chainLink struct {
	length float32
	style  common.Style
}

var _ item.Styled = &chainLink{}

// Style returns the link's current style.
//
// Returns:
//   - *common.Style: the style
func (l *chainLink) Style() *common.Style {
	return &l.style
}

// SetStyle replaces the link's style.
//
// Parameters:
//   - style: the new style
func (l *chainLink) SetStyle(style common.Style) {
	l.style = style
}

// chainRobot is a planar serial chain: each link rotates about the z axis of
// its parent and extends along the rotated x axis. It is the reference Robot
// implementation used by the examples and tests; embedders supply their own
// Robot for real kinematics.
type chainRobot struct {
	name   string
	base   common.RigidTransform
	links  []*chainLink
	config []float32
}

var _ Robot = &chainRobot{}

// NewChainRobot creates a planar chain robot from the given options. At least
// one link length must be supplied.
//
// Parameters:
//   - options: configuration functions (see WithChainName, WithLinkLengths,
//     WithBaseTransform)
//
// Returns:
//   - Robot: the new robot
func NewChainRobot(options ...ChainRobotBuilderOption) Robot {
	r := &chainRobot{
		name: "chain",
		base: common.IdentityTransform(),
	}
	for _, opt := range options {
		opt(r)
	}
	if len(r.links) == 0 {
		panic("chain robot requires at least one link")
	}
	r.config = make([]float32, len(r.links))
	return r
}

// Name returns the robot name.
func (r *chainRobot) Name() string {
	return r.name
}

// NumLinks returns the number of links.
func (r *chainRobot) NumLinks() int {
	return len(r.links)
}

// Config returns a copy of the current configuration.
//
// Returns:
//   - []float32: joint angles in radians, one per link
func (r *chainRobot) Config() []float32 {
	out := make([]float32, len(r.config))
	copy(out, r.config)
	return out
}

// SetConfig replaces the configuration.
//
// Parameters:
//   - cfg: joint angles in radians, one per link
//
// Returns:
//   - error: error if len(cfg) does not match NumLinks
func (r *chainRobot) SetConfig(cfg []float32) error {
	if len(cfg) != len(r.links) {
		return fmt.Errorf("config length %d does not match %d links", len(cfg), len(r.links))
	}
	copy(r.config, cfg)
	return nil
}

// LinkTransform returns the world transform of link i at the current
// configuration.
//
// Parameters:
//   - i: link index
//
// Returns:
//   - common.RigidTransform: the link's world transform, identity if i is out
//     of range
func (r *chainRobot) LinkTransform(i int) common.RigidTransform {
	if i < 0 || i >= len(r.links) {
		return common.IdentityTransform()
	}
	t := r.base
	for j := 0; j <= i; j++ {
		t = t.Mul(r.jointTransform(j))
	}
	return t
}

// jointTransform returns link j's transform relative to its parent: rotation
// about z by the joint angle, then translation along the rotated x axis.
func (r *chainRobot) jointTransform(j int) common.RigidTransform {
	c := math32.Cos(r.config[j])
	s := math32.Sin(r.config[j])
	rot := common.Rotation{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
	return common.RigidTransform{
		R: rot,
		T: rot.Apply(common.Vec3{r.links[j].length, 0, 0}),
	}
}

// Link returns the appearance slot of link i.
//
// Parameters:
//   - i: link index
//
// Returns:
//   - item.Styled: the link's style access, nil if i is out of range
func (r *chainRobot) Link(i int) item.Styled {
	if i < 0 || i >= len(r.links) {
		return nil
	}
	return r.links[i]
}

// DrawSelf draws the chain as line segments between consecutive link origins,
// colored per link style.
//
// Parameters:
//   - ctx: the drawing context
func (r *chainRobot) DrawSelf(ctx *render.Context) {
	prev := r.base.T
	for i := range r.links {
		next := r.LinkTransform(i).T
		ctx.Line(prev, next, 2, r.links[i].style.Color)
		prev = next
	}
}
