// package appearance implements the per-item drawing wrapper: visibility,
// custom versus default styling, animation playback, hierarchical
// sub-appearances for composite items, and type-dispatch drawing through the
// render cache.
package appearance

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/trajectory"
	"github.com/Carmen-Shannon/vista-go/engine/world"
)

// SubKey identifies one sub-appearance of a composite item by kind and name.
type SubKey struct {
	// Kind is the sub-item's kind.
	Kind item.Kind

	// Name is the sub-item's name within the composite.
	Name string
}

// Appearance wraps one scene item with its drawing state. All methods must be
// called under the scene's global lock except Draw, Update, and
// SwapDrawConfig, which the registry calls from the render pass while holding
// that same lock.
type Appearance interface {
	// Name returns the item's scene name.
	Name() string

	// Item returns the wrapped item value.
	Item() any

	// SetItem replaces the wrapped item, keeping the current appearance state.
	// Sub-appearances are rebuilt from the new value and caches are released.
	//
	// Parameters:
	//   - v: the new item value
	SetItem(v any)

	// Attributes returns the attribute map. The map is shared with all
	// sub-appearances.
	Attributes() Attributes

	// SetAttribute stores a drawing attribute and flags the cached drawing
	// stale. Passing UnsetAttribute deletes the key.
	//
	// Parameters:
	//   - key: attribute name
	//   - value: attribute value, or UnsetAttribute
	SetAttribute(key string, value any)

	// Hidden reports whether the item is skipped during drawing.
	Hidden() bool

	// SetHidden toggles drawing of the item. Hiding does not invalidate the
	// cached drawing; a re-shown item replays it unchanged.
	//
	// Parameters:
	//   - hidden: true to skip the item during drawing
	SetHidden(hidden bool)

	// SetColor overrides the item's color, switching off the default
	// appearance.
	//
	// Parameters:
	//   - c: the override color
	SetColor(c common.Color)

	// SetCustomStyle installs a full style override, switching off the default
	// appearance.
	//
	// Parameters:
	//   - style: the override style
	SetCustomStyle(style common.Style)

	// RevertStyle returns the item to its default appearance, dropping any
	// color or style override.
	RevertStyle()

	// Animate attaches an animation. The item's drawn configuration follows
	// speed*(t - startTime) into the trajectory until StopAnimation.
	//
	// Parameters:
	//   - anim: the trajectory to play, nil to detach
	//   - speed: playback rate multiplier
	//   - startTime: scene animation time at which playback begins
	//   - loop: wrap past the trajectory end instead of clamping
	Animate(anim trajectory.Trajectory, speed, startTime float64, loop bool)

	// Update evaluates the attached animation at scene time t, caching the
	// result as the configuration to draw. Recurses into sub-appearances.
	//
	// Parameters:
	//   - t: scene animation time
	Update(t float64)

	// SwapDrawConfig exchanges the item's configuration with the pending
	// animation configuration. Calling it twice restores the original state;
	// the registry brackets each draw with a swap pair. A failed apply is
	// logged and leaves the item untouched.
	//
	// Parameters:
	//   - w: the scene world used to resolve robot configurations
	SwapDrawConfig(w world.World)

	// DrawConfig returns the pending animation configuration, nil when no
	// animation is active.
	DrawConfig() []float32

	// MarkChanged flags all cached drawings stale, here and in every
	// sub-appearance.
	MarkChanged()

	// Destroy releases all cached drawings and sub-appearances. Safe to call
	// multiple times.
	Destroy()

	// Draw renders the item through ctx, dispatching on its kind.
	//
	// Parameters:
	//   - ctx: the drawing context
	//   - w: the scene world, may be nil
	//   - labels: sink for floating text labels, may be nil
	Draw(ctx *render.Context, w world.World, labels *LabelSink)

	// SubAppearances returns the sub-appearances of a composite item, empty
	// for leaf items.
	SubAppearances() map[SubKey]Appearance
}

type appearance struct {
	name  string
	value any
	attrs Attributes

	hidden     bool
	useDefault bool

	customStyle *common.Style
	origStyle   *common.Style

	anim      trajectory.Trajectory
	animSpeed float64
	animStart float64
	animLoop  bool

	drawConfig []float32

	// caches holds up to three compiled drawings; slot 0 is the primary,
	// slots 1 and 2 are allocated lazily for IK goals.
	caches []*render.CacheObject

	subs map[SubKey]Appearance

	warnedKind bool
}

var _ Appearance = &appearance{}

// New creates an appearance for a named item with default styling.
//
// Parameters:
//   - name: the item's scene name
//   - v: the item value
//
// Returns:
//   - Appearance: the new appearance
func New(name string, v any) Appearance {
	a := &appearance{
		name:       name,
		attrs:      Attributes{},
		useDefault: true,
	}
	a.SetItem(v)
	return a
}

// newSub creates a sub-appearance sharing the parent's attribute map.
func newSub(name string, v any, attrs Attributes) Appearance {
	a := &appearance{
		name:       name,
		attrs:      attrs,
		useDefault: true,
	}
	a.SetItem(v)
	return a
}

func (a *appearance) Name() string {
	return a.name
}

func (a *appearance) Item() any {
	return a.value
}

func (a *appearance) Attributes() Attributes {
	return a.attrs
}

func (a *appearance) SubAppearances() map[SubKey]Appearance {
	return a.subs
}

func (a *appearance) SetItem(v any) {
	for _, c := range a.caches {
		c.Destroy()
	}
	a.caches = []*render.CacheObject{render.NewCacheObject(a.name)}
	for _, sub := range a.subs {
		sub.Destroy()
	}
	a.subs = map[SubKey]Appearance{}
	a.value = v
	a.warnedKind = false

	switch x := v.(type) {
	case *item.Group:
		for name, f := range x.Frames() {
			a.subs[SubKey{Kind: item.KindFrame, Name: name}] = newSub(name, f, a.attrs)
		}
		for name, p := range x.Points() {
			a.subs[SubKey{Kind: item.KindPoint, Name: name}] = newSub(name, p, a.attrs)
		}
		for name, d := range x.Directions() {
			a.subs[SubKey{Kind: item.KindDirection, Name: name}] = newSub(name, d, a.attrs)
		}
		for name, g := range x.Subgroups() {
			a.subs[SubKey{Kind: item.KindGroup, Name: name}] = newSub(name, g, a.attrs)
		}
	case *item.Hold:
		if x.IKConstraint != nil {
			a.subs[SubKey{Kind: item.KindIKGoal, Name: "ikConstraint"}] = newSub("", x.IKConstraint, a.attrs)
		}
		for i := range x.Contacts {
			name := fmt.Sprintf("contact %d", i)
			a.subs[SubKey{Kind: item.KindContactPoint, Name: name}] = newSub("", x.Contacts[i], a.attrs)
		}
	}
}

func (a *appearance) SetAttribute(key string, value any) {
	a.attrs.Set(key, value)
	a.MarkChanged()
}

func (a *appearance) Hidden() bool {
	return a.hidden
}

func (a *appearance) SetHidden(hidden bool) {
	a.hidden = hidden
}

func (a *appearance) SetColor(c common.Color) {
	a.attrs.Set("color", c)
	a.useDefault = false
	a.customStyle = nil
	a.MarkChanged()
}

func (a *appearance) SetCustomStyle(style common.Style) {
	a.customStyle = &style
	a.useDefault = false
	a.MarkChanged()
}

func (a *appearance) RevertStyle() {
	a.useDefault = true
	a.customStyle = nil
	a.MarkChanged()
}

func (a *appearance) Animate(anim trajectory.Trajectory, speed, startTime float64, loop bool) {
	a.anim = anim
	a.animSpeed = speed
	a.animStart = startTime
	a.animLoop = loop
	if anim == nil {
		a.drawConfig = nil
	}
	a.MarkChanged()
}

func (a *appearance) Update(t float64) {
	if a.anim != nil {
		u := a.animSpeed * (t - a.animStart)
		a.drawConfig = a.anim.Eval(a.anim.StartTime()+u, a.animLoop)
	} else {
		a.drawConfig = nil
	}
	for _, sub := range a.subs {
		sub.Update(t)
	}
}

func (a *appearance) SwapDrawConfig(w world.World) {
	if a.drawConfig != nil {
		updated, prev, err := world.SetConfig(a.value, a.drawConfig)
		if err != nil {
			log.Printf("appearance %q: cannot apply animation config: %v", a.name, err)
		} else {
			a.value = updated
			a.drawConfig = prev
		}
	}
	for _, sub := range a.subs {
		sub.SwapDrawConfig(w)
	}
}

func (a *appearance) DrawConfig() []float32 {
	return a.drawConfig
}

func (a *appearance) MarkChanged() {
	for _, c := range a.caches {
		c.MarkChanged()
	}
	for _, sub := range a.subs {
		sub.MarkChanged()
	}
}

func (a *appearance) Destroy() {
	for _, c := range a.caches {
		c.Destroy()
	}
	for _, sub := range a.subs {
		sub.Destroy()
	}
	a.subs = map[SubKey]Appearance{}
	a.anim = nil
	a.drawConfig = nil
}

// cache returns cache slot i, allocating intermediate slots lazily.
func (a *appearance) cache(i int) *render.CacheObject {
	for len(a.caches) <= i {
		a.caches = append(a.caches, render.NewCacheObject(fmt.Sprintf("%s[%d]", a.name, len(a.caches))))
	}
	return a.caches[i]
}
