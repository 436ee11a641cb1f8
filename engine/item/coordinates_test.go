package item

import (
	"testing"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotZ(angle float32) common.Rotation {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return common.Rotation{c, s, 0, -s, c, 0, 0, 0, 1}
}

func assertVecInDelta(t *testing.T, want, got common.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64(want[i]), float64(got[i]), delta)
	}
}

func TestFrameWorldCoordinatesComposesParentChain(t *testing.T) {
	root := NewFrame("root", nil, common.RigidTransform{
		R: common.IdentityRotation(),
		T: common.Vec3{1, 0, 0},
	})
	child := NewFrame("child", root, common.RigidTransform{
		R: rotZ(math32.Pi / 2),
		T: common.Vec3{0, 1, 0},
	})
	grandchild := NewFrame("grandchild", child, common.RigidTransform{
		R: common.IdentityRotation(),
		T: common.Vec3{1, 0, 0},
	})

	assertVecInDelta(t, common.Vec3{1, 1, 0}, child.WorldCoordinates().T, 1e-5)
	// The grandchild's local +x is rotated into world +y by the child frame.
	assertVecInDelta(t, common.Vec3{1, 2, 0}, grandchild.WorldCoordinates().T, 1e-5)
}

func TestPointWorldCoordinates(t *testing.T) {
	f := NewFrame("f", nil, common.RigidTransform{
		R: rotZ(math32.Pi / 2),
		T: common.Vec3{1, 0, 0},
	})

	p := NewPoint(common.Vec3{1, 0, 0}, f)
	assertVecInDelta(t, common.Vec3{1, 1, 0}, p.WorldCoordinates(), 1e-5)

	// A frameless point is already in world coordinates.
	free := NewPoint(common.Vec3{3, 4, 5}, nil)
	assert.Equal(t, common.Vec3{3, 4, 5}, free.WorldCoordinates())
}

func TestDirectionIgnoresTranslation(t *testing.T) {
	f := NewFrame("f", nil, common.RigidTransform{
		R: rotZ(math32.Pi / 2),
		T: common.Vec3{100, -50, 7},
	})

	d := NewDirection(common.Vec3{1, 0, 0}, f)
	assertVecInDelta(t, common.Vec3{0, 1, 0}, d.WorldCoordinates(), 1e-5)
}

func TestTransformRelativeCoordinates(t *testing.T) {
	src := NewFrame("src", nil, common.RigidTransform{
		R: common.IdentityRotation(),
		T: common.Vec3{2, 0, 0},
	})
	dst := NewFrame("dst", nil, common.RigidTransform{
		R: common.IdentityRotation(),
		T: common.Vec3{0, 3, 0},
	})

	tr := NewTransform(src, dst)
	rel := tr.RelativeCoordinates()
	assertVecInDelta(t, common.Vec3{2, -3, 0}, rel.T, 1e-5)

	// Without a destination the source's world transform is returned.
	abs := NewTransform(src, nil)
	assert.Equal(t, src.WorldCoordinates(), abs.RelativeCoordinates())
}

func TestGroupAccessors(t *testing.T) {
	g := NewGroup()
	f := NewFrame("f", nil, common.IdentityTransform())
	g.AddFrame("f", f)
	g.AddPoint("p", NewPoint(common.Vec3{}, f))
	g.AddDirection("d", NewDirection(common.Vec3{0, 0, 1}, f))
	g.AddSubgroup("sub", NewGroup())

	assert.Len(t, g.Frames(), 1)
	assert.Len(t, g.Points(), 1)
	assert.Len(t, g.Directions(), 1)
	assert.Len(t, g.Subgroups(), 1)
}

func TestPointGoalDimensions(t *testing.T) {
	g := NewPointGoal(2, common.Vec3{0, 0, 0.1}, common.Vec3{1, 0, 0})

	assert.Equal(t, 2, g.Link())
	assert.Equal(t, -1, g.DestLink())
	assert.Equal(t, 3, g.NumPosDims())
	assert.Equal(t, 0, g.NumRotDims())

	local, world := g.Position()
	assert.Equal(t, common.Vec3{0, 0, 0.1}, local)
	assert.Equal(t, common.Vec3{1, 0, 0}, world)

	_, ok := g.Rotation()
	assert.False(t, ok)
	_, _, ok = g.RotationAxis()
	assert.False(t, ok)
}

func TestFixedGoalDimensions(t *testing.T) {
	r := rotZ(0.3)
	g := NewFixedGoal(0, r, common.Vec3{}, common.Vec3{0.5, 0.5, 0})

	assert.Equal(t, 3, g.NumPosDims())
	assert.Equal(t, 3, g.NumRotDims())

	got, ok := g.Rotation()
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestHingeGoalDimensions(t *testing.T) {
	g := NewHingeGoal(1, common.Vec3{0, 0, 1}, common.Vec3{0, 1, 0}, common.Vec3{}, common.Vec3{1, 1, 0})

	assert.Equal(t, 3, g.NumPosDims())
	assert.Equal(t, 1, g.NumRotDims())

	local, world, ok := g.RotationAxis()
	require.True(t, ok)
	assert.Equal(t, common.Vec3{0, 0, 1}, local)
	assert.Equal(t, common.Vec3{0, 1, 0}, world)

	_, ok = g.Rotation()
	assert.False(t, ok)
}

func TestOrientationGoalDimensions(t *testing.T) {
	r := rotZ(0.3)
	g := NewOrientationGoal(1, r)

	assert.Equal(t, 0, g.NumPosDims())
	assert.Equal(t, 3, g.NumRotDims())

	got, ok := g.Rotation()
	require.True(t, ok)
	assert.Equal(t, r, got)
}

func TestGoalRobotBinding(t *testing.T) {
	g := NewPointGoal(0, common.Vec3{}, common.Vec3{})
	assert.Nil(t, g.Robot())

	stub := &stubLinks{n: 4}
	g.SetRobot(stub)
	assert.Equal(t, 4, g.Robot().NumLinks())
}

type stubLinks struct{ n int }

func (s *stubLinks) NumLinks() int { return s.n }

func (s *stubLinks) LinkTransform(i int) common.RigidTransform {
	return common.IdentityTransform()
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "point", KindPoint.String())
	assert.Equal(t, "contact_point", KindContactPoint.String())
	assert.Equal(t, "ik_goal", KindIKGoal.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
