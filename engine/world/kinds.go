package world

import (
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
)

// InferKinds returns the candidate drawing kinds for an untyped item value.
// Most values map to exactly one kind; a bare float vector is ambiguous. A
// length-3 vector is a Vector3 candidate and, when the world's first robot
// has 3 links, also a Config candidate. Longer vectors are Config candidates
// only. Callers resolve multi-candidate results via an explicit "type"
// attribute or skip the item.
//
// Parameters:
//   - v: the item value
//   - w: the scene world, may be nil
//
// Returns:
//   - []item.Kind: candidate kinds, empty when the value is not drawable
func InferKinds(v any, w World) []item.Kind {
	switch x := v.(type) {
	case *item.Frame:
		return []item.Kind{item.KindFrame}
	case *item.Point:
		return []item.Kind{item.KindPoint}
	case *item.Direction:
		return []item.Kind{item.KindDirection}
	case *item.Transform:
		return []item.Kind{item.KindTransform}
	case *item.Group:
		return []item.Kind{item.KindGroup}
	case item.ContactPoint, *item.ContactPoint:
		return []item.Kind{item.KindContactPoint}
	case *item.Hold:
		return []item.Kind{item.KindHold}
	case *item.IKGoal:
		return []item.Kind{item.KindIKGoal}
	case common.Vec3:
		return []item.Kind{item.KindVector3}
	case common.RigidTransform:
		return []item.Kind{item.KindRigidTransform}
	case item.Config:
		return vectorKinds(len(x), w)
	case []float32:
		return vectorKinds(len(x), w)
	default:
		return nil
	}
}

// vectorKinds returns the candidate kinds for a float vector of length n.
func vectorKinds(n int, w World) []item.Kind {
	var kinds []item.Kind
	if n == 3 {
		kinds = append(kinds, item.KindVector3)
	}
	if r := FirstRobot(w); r != nil && r.NumLinks() == n {
		kinds = append(kinds, item.KindConfig)
	} else if n != 3 {
		kinds = append(kinds, item.KindConfig)
	}
	return kinds
}
