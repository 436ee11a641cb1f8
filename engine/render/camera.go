package render

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/chewxy/math32"
)

// Camera is an orbit camera: it looks at a target point from a distance,
// parameterized by azimuth and elevation angles. Mouse drag and scroll input
// from the window layer feeds Rotate/Pan/Zoom; the backend reads the
// view-projection each frame.
//
// Confined to the render thread; no locking.
type Camera struct {
	target    common.Vec3
	distance  float32
	azimuth   float32 // radians around the world z axis
	elevation float32 // radians above the horizontal plane

	fovY float32
	near float32
	far  float32
}

// NewCamera creates an orbit camera with viewer defaults: looking at the
// origin from 5 units away, 30 degrees above the horizon.
//
// Returns:
//   - *Camera: the new camera
func NewCamera() *Camera {
	return &Camera{
		distance:  5,
		elevation: math32.Pi / 6,
		fovY:      math32.Pi / 4,
		near:      0.05,
		far:       500,
	}
}

// Eye returns the camera position in world space.
//
// Returns:
//   - common.Vec3: the eye position
func (c *Camera) Eye() common.Vec3 {
	ce := math32.Cos(c.elevation)
	dir := common.Vec3{
		ce * math32.Cos(c.azimuth),
		ce * math32.Sin(c.azimuth),
		math32.Sin(c.elevation),
	}
	return c.target.Madd(dir, c.distance)
}

// Rotate adjusts azimuth and elevation by the given deltas in radians.
// Elevation is clamped just short of the poles to keep the view matrix
// well-conditioned.
//
// Parameters:
//   - dAzimuth, dElevation: angle deltas in radians
func (c *Camera) Rotate(dAzimuth, dElevation float32) {
	const limit = math32.Pi/2 - 0.01
	c.azimuth += dAzimuth
	c.elevation += dElevation
	if c.elevation > limit {
		c.elevation = limit
	}
	if c.elevation < -limit {
		c.elevation = -limit
	}
}

// Zoom scales the orbit distance; positive deltas move the camera closer.
//
// Parameters:
//   - delta: scroll delta (positive = zoom in)
func (c *Camera) Zoom(delta float32) {
	c.distance *= math32.Pow(0.9, delta)
	if c.distance < c.near*2 {
		c.distance = c.near * 2
	}
}

// Pan translates the orbit target within the view plane.
//
// Parameters:
//   - dx, dy: translation in view-plane units
func (c *Camera) Pan(dx, dy float32) {
	eye := c.Eye()
	forward := c.target.Sub(eye).Normalized()
	right := forward.Cross(common.Vec3{0, 0, 1}).Normalized()
	up := right.Cross(forward)
	c.target = c.target.Madd(right, dx).Madd(up, dy)
}

// ViewProjection writes the combined view-projection matrix for the given
// viewport size.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - width, height: viewport size in pixels
func (c *Camera) ViewProjection(out []float32, width, height int) {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	var view, proj [16]float32
	common.LookAt(view[:], c.Eye(), c.target, common.Vec3{0, 0, 1})
	common.Perspective(proj[:], c.fovY, aspect, c.near, c.far)
	common.Mul4(out, proj[:], view[:])
}
