package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesInput(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	_, err = New([]float64{0, 1}, [][]float32{{0}})
	assert.Error(t, err)

	_, err = New([]float64{1, 0}, [][]float32{{0}, {1}})
	assert.Error(t, err)

	_, err = New([]float64{0, 1}, [][]float32{{0, 0}, {1}})
	assert.Error(t, err)
}

func TestEvalInterpolatesLinearly(t *testing.T) {
	traj, err := New([]float64{0, 2}, [][]float32{{0, 10}, {4, 30}})
	require.NoError(t, err)

	got := traj.Eval(1, false)
	assert.Equal(t, []float32{2, 20}, got)
}

func TestEvalClampsOutsideDomain(t *testing.T) {
	traj, err := New([]float64{1, 2}, [][]float32{{0}, {10}})
	require.NoError(t, err)

	assert.Equal(t, []float32{0}, traj.Eval(-5, false))
	assert.Equal(t, []float32{10}, traj.Eval(99, false))
}

func TestEvalLoopsPastEnd(t *testing.T) {
	traj, err := FromMilestones([][]float32{{0}, {10}, {0}})
	require.NoError(t, err)
	require.Equal(t, 2.0, traj.Duration())

	// t=2.5 wraps to t=0.5 within the first segment.
	got := traj.Eval(2.5, true)
	assert.InDelta(t, 5.0, float64(got[0]), 1e-5)

	// Negative times wrap forward.
	got = traj.Eval(-0.5, true)
	assert.InDelta(t, 5.0, float64(got[0]), 1e-5)
}

func TestFromMilestonesUnitSteps(t *testing.T) {
	traj, err := FromMilestones([][]float32{{1}, {2}, {3}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, traj.StartTime())
	assert.Equal(t, 2.0, traj.EndTime())
	assert.Equal(t, []float32{2}, traj.Eval(1, false))
}

func TestEvalReturnsCopy(t *testing.T) {
	traj, err := FromMilestones([][]float32{{1}, {1}})
	require.NoError(t, err)

	got := traj.Eval(0, false)
	got[0] = 99
	assert.Equal(t, []float32{1}, traj.Eval(0, false))
}
