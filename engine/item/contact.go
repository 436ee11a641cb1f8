package item

import (
	"github.com/Carmen-Shannon/vista-go/common"
)

// ContactPoint is a point of contact with an outward surface normal, both in
// world coordinates.
type ContactPoint struct {
	// X is the contact position.
	X common.Vec3

	// N is the outward contact normal.
	N common.Vec3
}

// Hold pairs an IK constraint with the contact points that realize it. Holds
// draw as a composite: the constraint plus one contact-point sub-item each.
type Hold struct {
	// IKConstraint is the constraint anchoring the hold, may be nil.
	IKConstraint *IKGoal

	// Contacts are the contact points of the hold.
	Contacts []ContactPoint
}
