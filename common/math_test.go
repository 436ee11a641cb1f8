package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64(want[i]), float64(got[i]), delta)
	}
}

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, 1.0, float64(a.Normalized().Norm()), 1e-6)
	assert.InDelta(t, float64(math32.Sqrt(27)), float64(a.Distance(b)), 1e-5)
}

func TestRotationApplyAndTranspose(t *testing.T) {
	// 90 degrees about z: x axis maps to y.
	c := math32.Cos(math32.Pi / 2)
	s := math32.Sin(math32.Pi / 2)
	rz := Rotation{c, s, 0, -s, c, 0, 0, 0, 1}

	got := rz.Apply(Vec3{1, 0, 0})
	assertVecInDelta(t, Vec3{0, 1, 0}, got, 1e-6)

	// Transpose of a rotation is its inverse.
	back := rz.Transpose().Apply(got)
	assertVecInDelta(t, Vec3{1, 0, 0}, back, 1e-6)
}

func TestRigidTransformInverse(t *testing.T) {
	c := math32.Cos(0.7)
	s := math32.Sin(0.7)
	tr := RigidTransform{
		R: Rotation{c, s, 0, -s, c, 0, 0, 0, 1},
		T: Vec3{1, -2, 3},
	}

	p := Vec3{0.5, 0.25, -1}
	back := tr.Inverse().Apply(tr.Apply(p))
	assertVecInDelta(t, p, back, 1e-5)

	ident := tr.Mul(tr.Inverse())
	assertVecInDelta(t, Vec3{}, ident.T, 1e-5)
	assertVecInDelta(t, Vec3{1, 0, 0}, ident.R.Apply(Vec3{1, 0, 0}), 1e-5)
}

func TestRigidTransformMulComposes(t *testing.T) {
	a := RigidTransform{R: IdentityRotation(), T: Vec3{1, 0, 0}}
	b := RigidTransform{R: IdentityRotation(), T: Vec3{0, 2, 0}}

	p := a.Mul(b).Apply(Vec3{0, 0, 3})
	assert.Equal(t, Vec3{1, 2, 3}, p)
}

func TestHermiteEvalEndpoints(t *testing.T) {
	p1 := Vec3{0, 0, 0}
	p2 := Vec3{1, 2, 3}
	v := Vec3{1, 1, 1}

	assertVecInDelta(t, p1, HermiteEval(p1, v, p2, v, 0), 1e-6)
	assertVecInDelta(t, p2, HermiteEval(p1, v, p2, v, 1), 1e-6)
}

func TestCanonicalBasisOrthonormal(t *testing.T) {
	d := Vec3{0.3, -0.5, 0.8}.Normalized()
	basis := CanonicalBasis(d)

	require.InDelta(t, 1.0, float64(basis.Column(0).Dot(d)), 1e-5)
	assert.InDelta(t, 0.0, float64(basis.Column(0).Dot(basis.Column(1))), 1e-5)
	assert.InDelta(t, 0.0, float64(basis.Column(1).Dot(basis.Column(2))), 1e-5)
	assert.InDelta(t, 1.0, float64(basis.Column(1).Norm()), 1e-5)
	assert.InDelta(t, 1.0, float64(basis.Column(2).Norm()), 1e-5)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 5, 7))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
