package world

import (
	"testing"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got common.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64(want[i]), float64(got[i]), delta)
	}
}

func TestChainRobotRequiresLinks(t *testing.T) {
	assert.Panics(t, func() {
		NewChainRobot()
	})
}

func TestChainRobotConfigValidation(t *testing.T) {
	r := NewChainRobot(WithLinkLengths(1, 1))

	assert.Equal(t, 2, r.NumLinks())
	assert.Equal(t, []float32{0, 0}, r.Config())
	assert.Error(t, r.SetConfig([]float32{1}))
	require.NoError(t, r.SetConfig([]float32{0.1, 0.2}))
	assert.Equal(t, []float32{0.1, 0.2}, r.Config())

	// Config returns a copy.
	cfg := r.Config()
	cfg[0] = 99
	assert.Equal(t, []float32{0.1, 0.2}, r.Config())
}

func TestChainRobotLinkTransformZeroPose(t *testing.T) {
	r := NewChainRobot(WithLinkLengths(1, 0.5))

	assertVecInDelta(t, common.Vec3{1, 0, 0}, r.LinkTransform(0).T, 1e-6)
	assertVecInDelta(t, common.Vec3{1.5, 0, 0}, r.LinkTransform(1).T, 1e-6)
}

func TestChainRobotLinkTransformBentPose(t *testing.T) {
	r := NewChainRobot(WithLinkLengths(1, 1))
	require.NoError(t, r.SetConfig([]float32{math32.Pi / 2, math32.Pi / 2}))

	// First link points along +y; the second bends another 90 degrees to -x.
	assertVecInDelta(t, common.Vec3{0, 1, 0}, r.LinkTransform(0).T, 1e-5)
	assertVecInDelta(t, common.Vec3{-1, 1, 0}, r.LinkTransform(1).T, 1e-5)
}

func TestChainRobotBaseTransformOffsets(t *testing.T) {
	base := common.RigidTransform{R: common.IdentityRotation(), T: common.Vec3{0, 0, 2}}
	r := NewChainRobot(WithLinkLengths(1), WithBaseTransform(base))

	assertVecInDelta(t, common.Vec3{1, 0, 2}, r.LinkTransform(0).T, 1e-6)
}

func TestChainRobotLinkOutOfRange(t *testing.T) {
	r := NewChainRobot(WithLinkLengths(1))

	assert.Nil(t, r.Link(-1))
	assert.Nil(t, r.Link(1))
	assert.Equal(t, common.IdentityTransform(), r.LinkTransform(5))
}

func TestWorldRobotAccess(t *testing.T) {
	r := NewChainRobot(WithChainName("arm"), WithLinkLengths(1))
	w := NewWorld(WithRobot(r))

	assert.Equal(t, 1, w.NumRobots())
	assert.Equal(t, "arm", w.Robot(0).Name())
	assert.Nil(t, w.Robot(1))
	assert.Equal(t, r, FirstRobot(w))

	assert.Nil(t, FirstRobot(nil))
	assert.Nil(t, FirstRobot(NewWorld()))
}

func TestGetConfigVariants(t *testing.T) {
	cfg, ok := GetConfig(common.Vec3{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, cfg)

	cfg, ok = GetConfig(item.Config{4, 5})
	require.True(t, ok)
	assert.Equal(t, []float32{4, 5}, cfg)

	cfg, ok = GetConfig(NewChainRobot(WithLinkLengths(1, 1)))
	require.True(t, ok)
	assert.Equal(t, []float32{0, 0}, cfg)

	p := item.NewPoint(common.Vec3{7, 8, 9}, nil)
	cfg, ok = GetConfig(p)
	require.True(t, ok)
	assert.Equal(t, []float32{7, 8, 9}, cfg)

	_, ok = GetConfig("not an item")
	assert.False(t, ok)
}

func TestRigidTransformConfigRoundTrip(t *testing.T) {
	c := math32.Cos(0.4)
	s := math32.Sin(0.4)
	in := common.RigidTransform{
		R: common.Rotation{c, s, 0, -s, c, 0, 0, 0, 1},
		T: common.Vec3{1, 2, 3},
	}

	cfg, ok := GetConfig(in)
	require.True(t, ok)
	require.Len(t, cfg, 12)

	updated, prev, err := SetConfig(common.IdentityTransform(), cfg)
	require.NoError(t, err)
	assert.Equal(t, in, updated)
	identCfg, _ := GetConfig(common.IdentityTransform())
	assert.Equal(t, identCfg, prev)

	_, _, err = SetConfig(common.IdentityTransform(), []float32{1, 2})
	assert.Error(t, err)
}

func TestSetConfigReturnsPrevious(t *testing.T) {
	updated, prev, err := SetConfig(common.Vec3{1, 0, 0}, []float32{0, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, common.Vec3{0, 2, 0}, updated)
	assert.Equal(t, []float32{1, 0, 0}, prev)

	_, _, err = SetConfig(common.Vec3{}, []float32{1})
	assert.Error(t, err)

	_, _, err = SetConfig("not an item", []float32{1})
	assert.Error(t, err)
}

func TestSetConfigMovesPointKeepingFrame(t *testing.T) {
	f := item.NewFrame("f", nil, common.IdentityTransform())
	p := item.NewPoint(common.Vec3{0, 0, 0}, f)

	updated, prev, err := SetConfig(p, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, prev)

	moved, ok := updated.(*item.Point)
	require.True(t, ok)
	assert.Equal(t, common.Vec3{1, 2, 3}, moved.LocalCoordinates())
	assert.Equal(t, f, moved.Frame())
}

func TestInferKindsSingles(t *testing.T) {
	assert.Equal(t, []item.Kind{item.KindVector3}, InferKinds(common.Vec3{}, nil))
	assert.Equal(t, []item.Kind{item.KindRigidTransform}, InferKinds(common.IdentityTransform(), nil))
	assert.Equal(t, []item.Kind{item.KindPoint}, InferKinds(item.NewPoint(common.Vec3{}, nil), nil))
	assert.Equal(t, []item.Kind{item.KindContactPoint}, InferKinds(item.ContactPoint{}, nil))
	assert.Empty(t, InferKinds("not drawable", nil))
}

func TestInferKindsVectors(t *testing.T) {
	// Without a world a length-3 vector is unambiguous.
	assert.Equal(t, []item.Kind{item.KindVector3}, InferKinds([]float32{1, 2, 3}, nil))
	assert.Equal(t, []item.Kind{item.KindConfig}, InferKinds([]float32{1, 2, 3, 4}, nil))

	// A 3-link robot makes a length-3 vector ambiguous.
	w3 := NewWorld(WithRobot(NewChainRobot(WithLinkLengths(1, 1, 1))))
	assert.Equal(t, []item.Kind{item.KindVector3, item.KindConfig}, InferKinds([]float32{1, 2, 3}, w3))

	// A 2-link robot claims length-2 vectors.
	w2 := NewWorld(WithRobot(NewChainRobot(WithLinkLengths(1, 1))))
	assert.Equal(t, []item.Kind{item.KindConfig}, InferKinds(item.Config{0, 0}, w2))
}
