package world

import (
	"fmt"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
)

// GetConfig extracts a flat configuration vector from an item value. The
// returned slice is a copy.
//
// Supported values: Robot (joint configuration), item.Config and []float32
// (the vector itself), common.Vec3 (3 values), common.RigidTransform (9
// rotation entries then 3 translation entries), *item.Point (local
// coordinates).
//
// Parameters:
//   - v: the item value
//
// Returns:
//   - []float32: the configuration
//   - bool: false when the value has no configuration representation
func GetConfig(v any) ([]float32, bool) {
	switch x := v.(type) {
	case Robot:
		return x.Config(), true
	case item.Config:
		out := make([]float32, len(x))
		copy(out, x)
		return out, true
	case []float32:
		out := make([]float32, len(x))
		copy(out, x)
		return out, true
	case common.Vec3:
		return []float32{x[0], x[1], x[2]}, true
	case common.RigidTransform:
		out := make([]float32, 12)
		copy(out, x.R[:])
		copy(out[9:], x.T[:])
		return out, true
	case *item.Point:
		p := x.LocalCoordinates()
		return []float32{p[0], p[1], p[2]}, true
	default:
		return nil, false
	}
}

// SetConfig applies a configuration vector to an item value. Value types
// (slices, vectors, transforms) are replaced, so the updated item is returned
// alongside the configuration the item held before the call.
//
// Parameters:
//   - v: the item value
//   - cfg: the configuration to apply
//
// Returns:
//   - any: the updated item value
//   - []float32: the previous configuration
//   - error: error when the value has no configuration representation or the
//     vector length does not fit it
func SetConfig(v any, cfg []float32) (any, []float32, error) {
	prev, ok := GetConfig(v)
	if !ok {
		return v, nil, fmt.Errorf("value of type %T has no configuration", v)
	}

	switch x := v.(type) {
	case Robot:
		if err := x.SetConfig(cfg); err != nil {
			return v, prev, err
		}
		return x, prev, nil
	case item.Config:
		out := make(item.Config, len(cfg))
		copy(out, cfg)
		return out, prev, nil
	case []float32:
		out := make([]float32, len(cfg))
		copy(out, cfg)
		return out, prev, nil
	case common.Vec3:
		if len(cfg) != 3 {
			return v, prev, fmt.Errorf("config length %d does not fit a 3-vector", len(cfg))
		}
		return common.Vec3{cfg[0], cfg[1], cfg[2]}, prev, nil
	case common.RigidTransform:
		if len(cfg) != 12 {
			return v, prev, fmt.Errorf("config length %d does not fit a rigid transform", len(cfg))
		}
		var out common.RigidTransform
		copy(out.R[:], cfg[:9])
		copy(out.T[:], cfg[9:])
		return out, prev, nil
	case *item.Point:
		if len(cfg) != 3 {
			return v, prev, fmt.Errorf("config length %d does not fit a point", len(cfg))
		}
		updated := item.NewPoint(common.Vec3{cfg[0], cfg[1], cfg[2]}, x.Frame())
		return updated, prev, nil
	default:
		return v, prev, fmt.Errorf("value of type %T has no configuration", v)
	}
}
