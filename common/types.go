// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Vec3 is a 3-component float32 vector in world or local coordinates.
type Vec3 [3]float32

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// RGB builds an opaque Color from red, green, and blue components.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - Color: the opaque color
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RGBA builds a Color from red, green, blue, and alpha components.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - Color: the color
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Rotation is a 3x3 rotation matrix stored column-major.
type Rotation [9]float32

// RigidTransform is a rigid body transform: a rotation followed by a translation.
// Composition and point application follow the usual SE(3) conventions.
type RigidTransform struct {
	// R is the rotation component, column-major.
	R Rotation

	// T is the translation component.
	T Vec3
}

// Style is the appearance slot shared by styleable scene items: a flat color
// override. Items exposing a Style can have it snapshotted and restored around
// a draw call without touching the rest of their state.
type Style struct {
	// Color is the item's display color.
	Color Color
}

// Label is a floating text annotation anchored at a world position.
// Labels close to each other with the same color are merged into one
// multi-line entry before rendering.
type Label struct {
	// Position is the world-space anchor of the label.
	Position Vec3

	// Texts holds one or more lines of text sharing this anchor.
	Texts []string

	// Color is the text color.
	Color Color
}
