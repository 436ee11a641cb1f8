package appearance

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

type unsetAttribute struct{}

// UnsetAttribute is the sentinel value that deletes an attribute when passed
// to SetAttribute, reverting the item to the kind default.
var UnsetAttribute any = unsetAttribute{}

// Attributes is the free-form attribute map driving per-item drawing
// parameters (color, size, length, width, text_hidden, type). The map is
// shared by reference between an appearance and all of its sub-appearances,
// so a write on the parent is visible to every child.
type Attributes map[string]any

// Set stores an attribute value, or deletes the key when value is
// UnsetAttribute.
//
// Parameters:
//   - key: attribute name
//   - value: attribute value, or UnsetAttribute to delete
func (a Attributes) Set(key string, value any) {
	if value == UnsetAttribute {
		delete(a, key)
		return
	}
	a[key] = value
}

// Color returns the attribute as a color, or def when absent or mistyped.
//
// Parameters:
//   - key: attribute name
//   - def: default color
//
// Returns:
//   - common.Color: the attribute value or default
func (a Attributes) Color(key string, def common.Color) common.Color {
	switch v := a[key].(type) {
	case common.Color:
		return v
	case [4]float32:
		return common.Color(v)
	case [3]float32:
		return common.RGB(v[0], v[1], v[2])
	default:
		return def
	}
}

// Float returns the attribute as a float32, or def when absent or mistyped.
// A stored value always wins, zero included: setting "size" to 0 draws at
// size 0 rather than the kind default.
//
// Parameters:
//   - key: attribute name
//   - def: default value
//
// Returns:
//   - float32: the attribute value or default
func (a Attributes) Float(key string, def float32) float32 {
	switch v := a[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case int:
		return float32(v)
	default:
		return def
	}
}

// Bool returns the attribute as a bool, false when absent or mistyped.
//
// Parameters:
//   - key: attribute name
//
// Returns:
//   - bool: the attribute value
func (a Attributes) Bool(key string) bool {
	v, ok := a[key].(bool)
	return ok && v
}

// String returns the attribute as a string, empty when absent or mistyped.
//
// Parameters:
//   - key: attribute name
//
// Returns:
//   - string: the attribute value
func (a Attributes) String(key string) string {
	v, _ := a[key].(string)
	return v
}
