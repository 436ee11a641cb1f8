// package trajectory provides time-parameterized configuration trajectories
// used for item animation: piecewise-linear interpolation over timed
// milestones, with optional looping evaluation.
package trajectory

import (
	"fmt"
)

// Trajectory is a time-parameterized configuration curve.
type Trajectory interface {
	// Eval returns the configuration at time t.
	//
	// Parameters:
	//   - t: evaluation time
	//   - loop: when true, t wraps into [StartTime, EndTime); when false, t is
	//     clamped to the domain
	//
	// Returns:
	//   - []float32: the interpolated configuration (a copy)
	Eval(t float64, loop bool) []float32

	// StartTime returns the time of the first milestone.
	StartTime() float64

	// EndTime returns the time of the last milestone.
	EndTime() float64

	// Duration returns EndTime minus StartTime.
	Duration() float64
}

type milestoneTrajectory struct {
	times      []float64
	milestones [][]float32
}

var _ Trajectory = &milestoneTrajectory{}

// New creates a trajectory from parallel time and milestone slices. Times
// must be non-decreasing and match the milestone count; all milestones must
// share one length.
//
// Parameters:
//   - times: milestone timestamps, non-decreasing
//   - milestones: configurations, one per timestamp
//
// Returns:
//   - Trajectory: the new trajectory
//   - error: error on empty, mismatched, or unsorted input
func New(times []float64, milestones [][]float32) (Trajectory, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("trajectory requires at least one milestone")
	}
	if len(times) != len(milestones) {
		return nil, fmt.Errorf("got %d times for %d milestones", len(times), len(milestones))
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, fmt.Errorf("times must be non-decreasing (index %d)", i)
		}
		if len(milestones[i]) != len(milestones[0]) {
			return nil, fmt.Errorf("milestone %d has length %d, want %d", i, len(milestones[i]), len(milestones[0]))
		}
	}
	return &milestoneTrajectory{times: times, milestones: milestones}, nil
}

// FromMilestones creates a trajectory from a bare pose sequence, assigning
// unit-duration steps starting at time 0.
//
// Parameters:
//   - milestones: configurations in playback order
//
// Returns:
//   - Trajectory: the new trajectory
//   - error: error on empty or mismatched input
func FromMilestones(milestones [][]float32) (Trajectory, error) {
	times := make([]float64, len(milestones))
	for i := range times {
		times[i] = float64(i)
	}
	return New(times, milestones)
}

func (mt *milestoneTrajectory) StartTime() float64 {
	return mt.times[0]
}

func (mt *milestoneTrajectory) EndTime() float64 {
	return mt.times[len(mt.times)-1]
}

func (mt *milestoneTrajectory) Duration() float64 {
	return mt.EndTime() - mt.StartTime()
}

// Eval returns the configuration at time t, looping or clamping into the
// trajectory domain.
//
// Parameters:
//   - t: evaluation time
//   - loop: wrap t into the domain instead of clamping
//
// Returns:
//   - []float32: the interpolated configuration (a copy)
func (mt *milestoneTrajectory) Eval(t float64, loop bool) []float32 {
	start, end := mt.StartTime(), mt.EndTime()
	if loop && end > start {
		d := end - start
		t = start + mod(t-start, d)
	} else {
		if t < start {
			t = start
		}
		if t > end {
			t = end
		}
	}

	// Find the segment containing t.
	i := len(mt.times) - 2
	for j := 0; j < len(mt.times)-1; j++ {
		if t < mt.times[j+1] {
			i = j
			break
		}
	}
	if len(mt.times) == 1 {
		return copyConfig(mt.milestones[0])
	}

	span := mt.times[i+1] - mt.times[i]
	if span <= 0 {
		return copyConfig(mt.milestones[i+1])
	}
	u := float32((t - mt.times[i]) / span)

	a, b := mt.milestones[i], mt.milestones[i+1]
	out := make([]float32, len(a))
	for k := range a {
		out[k] = a[k] + u*(b[k]-a[k])
	}
	return out
}

// mod wraps x into [0, d) for positive d, unlike math.Mod which keeps the
// sign of x.
func mod(x, d float64) float64 {
	r := x - d*float64(int64(x/d))
	if r < 0 {
		r += d
	}
	return r
}

func copyConfig(c []float32) []float32 {
	out := make([]float32, len(c))
	copy(out, c)
	return out
}
