package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Add returns the component-wise sum v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns the component-wise difference v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Madd returns v + w*s (multiply-add).
func (v Vec3) Madd(w Vec3, s float32) Vec3 {
	return Vec3{v[0] + w[0]*s, v[1] + w[1]*s, v[2] + w[2]*s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float32 {
	return v.Sub(w).Norm()
}

// Normalized returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// IdentityRotation returns the 3x3 identity rotation.
//
// Returns:
//   - Rotation: the identity rotation
func IdentityRotation() Rotation {
	return Rotation{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply rotates the vector v by r.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - Vec3: the rotated vector
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		r[0]*v[0] + r[3]*v[1] + r[6]*v[2],
		r[1]*v[0] + r[4]*v[1] + r[7]*v[2],
		r[2]*v[0] + r[5]*v[1] + r[8]*v[2],
	}
}

// Mul composes two rotations: result = r * s.
//
// Parameters:
//   - s: the rotation applied first
//
// Returns:
//   - Rotation: the composed rotation
func (r Rotation) Mul(s Rotation) Rotation {
	var out Rotation
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*3+row] = r[row]*s[col*3] + r[3+row]*s[col*3+1] + r[6+row]*s[col*3+2]
		}
	}
	return out
}

// Transpose returns the transpose (inverse, for a proper rotation) of r.
func (r Rotation) Transpose() Rotation {
	return Rotation{
		r[0], r[3], r[6],
		r[1], r[4], r[7],
		r[2], r[5], r[8],
	}
}

// Column returns the i-th column of r as a vector (the image of the i-th
// coordinate axis).
//
// Parameters:
//   - i: column index in [0, 2]
//
// Returns:
//   - Vec3: the column vector
func (r Rotation) Column(i int) Vec3 {
	return Vec3{r[i*3], r[i*3+1], r[i*3+2]}
}

// CanonicalBasis builds a rotation whose first column is the given unit
// direction; the remaining columns complete a right-handed orthonormal basis.
// Used to orient widgets along a normal (e.g. contact point friction cones).
//
// Parameters:
//   - d: the direction to align the x axis with (need not be unit length)
//
// Returns:
//   - Rotation: the completed basis
func CanonicalBasis(d Vec3) Rotation {
	x := d.Normalized()
	// Pick the world axis least aligned with x as the seed for the second column.
	seed := Vec3{0, 0, 1}
	if math32.Abs(x[2]) > 0.9 {
		seed = Vec3{0, 1, 0}
	}
	y := seed.Cross(x).Normalized()
	z := x.Cross(y)
	return Rotation{
		x[0], x[1], x[2],
		y[0], y[1], y[2],
		z[0], z[1], z[2],
	}
}

// IdentityTransform returns the identity rigid transform.
//
// Returns:
//   - RigidTransform: the identity transform
func IdentityTransform() RigidTransform {
	return RigidTransform{R: IdentityRotation()}
}

// Apply transforms the point p by t (rotate then translate).
//
// Parameters:
//   - p: the point in local coordinates
//
// Returns:
//   - Vec3: the point in the target frame
func (t RigidTransform) Apply(p Vec3) Vec3 {
	return t.R.Apply(p).Add(t.T)
}

// Mul composes two rigid transforms: result = t * s (s applied first).
//
// Parameters:
//   - s: the transform applied first
//
// Returns:
//   - RigidTransform: the composed transform
func (t RigidTransform) Mul(s RigidTransform) RigidTransform {
	return RigidTransform{
		R: t.R.Mul(s.R),
		T: t.R.Apply(s.T).Add(t.T),
	}
}

// Inverse returns the inverse rigid transform.
func (t RigidTransform) Inverse() RigidTransform {
	rt := t.R.Transpose()
	return RigidTransform{
		R: rt,
		T: rt.Apply(t.T).Scale(-1),
	}
}

// Homogeneous writes t as a 4x4 column-major homogeneous matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (t RigidTransform) Homogeneous(out []float32) {
	out[0], out[1], out[2], out[3] = t.R[0], t.R[1], t.R[2], 0
	out[4], out[5], out[6], out[7] = t.R[3], t.R[4], t.R[5], 0
	out[8], out[9], out[10], out[11] = t.R[6], t.R[7], t.R[8], 0
	out[12], out[13], out[14], out[15] = t.T[0], t.T[1], t.T[2], 1
}

// HermiteEval evaluates a cubic Hermite curve at parameter u in [0, 1].
//
// Parameters:
//   - p1: start point
//   - v1: start tangent
//   - p2: end point
//   - v2: end tangent
//   - u: curve parameter in [0, 1]
//
// Returns:
//   - Vec3: the interpolated point
func HermiteEval(p1, v1, p2, v2 Vec3, u float32) Vec3 {
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	out := p1.Scale(h00)
	out = out.Madd(v1, h10)
	out = out.Madd(p2, h01)
	out = out.Madd(v2, h11)
	return out
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses clip space [0, 1] depth, the WebGPU convention.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,0,1 for robotics scenes)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center).Normalized()
	x := up.Cross(z).Normalized()
	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
