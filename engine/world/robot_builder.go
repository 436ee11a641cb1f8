package world

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// ChainRobotBuilderOption is a function that configures a chain robot during
// creation.
type ChainRobotBuilderOption func(*chainRobot)

// WithChainName sets the robot name.
//
// Parameters:
//   - name: the robot name
//
// Returns:
//   - ChainRobotBuilderOption: the option function
func WithChainName(name string) ChainRobotBuilderOption {
	return func(r *chainRobot) {
		r.name = name
	}
}

// WithLinkLengths sets the chain's link lengths, one link per entry. Links
// default to a grey style.
//
// Parameters:
//   - lengths: link lengths in world units
//
// Returns:
//   - ChainRobotBuilderOption: the option function
func WithLinkLengths(lengths ...float32) ChainRobotBuilderOption {
	return func(r *chainRobot) {
		for _, l := range lengths {
			r.links = append(r.links, &chainLink{
				length: l,
				style:  common.Style{Color: common.Color{0.5, 0.5, 0.5, 1}},
			})
		}
	}
}

// WithBaseTransform sets the world transform of the chain's base.
//
// Parameters:
//   - t: the base transform
//
// Returns:
//   - ChainRobotBuilderOption: the option function
func WithBaseTransform(t common.RigidTransform) ChainRobotBuilderOption {
	return func(r *chainRobot) {
		r.base = t
	}
}
