package appearance

import (
	"log"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/item"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/world"
)

// Per-kind drawing defaults.
var (
	defaultPointColor     = common.Color{0, 0, 0, 1}
	defaultDirectionColor = common.Color{0, 1, 1, 1}
	defaultContactColor   = common.Color{1, 0.5, 0, 1}
	defaultHingeColor     = common.Color{0.5, 0, 0.5, 1}
	defaultLabelColor     = common.Color{0, 0, 0, 1}
	frameConnectorColor   = common.Color{1, 1, 0, 0.5}
	transformCurveColor   = common.Color{1, 1, 1, 0.5}

	axisColors = [3]common.Color{
		{1, 0, 0, 1},
		{0, 1, 0, 1},
		{0, 0, 1, 1},
	}
)

// labelOffset is applied below an item's anchor so text does not overlap the
// primitive.
var labelOffset = common.Vec3{0, 0, -0.05}

func (a *appearance) Draw(ctx *render.Context, w world.World, labels *LabelSink) {
	if a.hidden {
		return
	}

	restore := a.applyStyleOverride()
	defer restore()

	// Self-drawing items manage their own caching.
	if d, ok := a.value.(item.Drawable); ok {
		d.DrawSelf(ctx)
		return
	}

	// Composites draw nothing themselves; their children do.
	switch a.value.(type) {
	case *item.Group, *item.Hold:
		for _, sub := range a.subs {
			sub.Draw(ctx, w, labels)
		}
		return
	}

	switch a.resolveKind(w) {
	case item.KindPoint:
		a.drawPoint(ctx, a.value.(*item.Point).WorldCoordinates(), labels)
	case item.KindVector3:
		a.drawPoint(ctx, a.vectorValue(), labels)
	case item.KindDirection:
		a.drawDirection(ctx, a.value.(*item.Direction), labels)
	case item.KindFrame:
		a.drawFrame(ctx, a.value.(*item.Frame), labels)
	case item.KindTransform:
		a.drawTransform(ctx, a.value.(*item.Transform), labels)
	case item.KindRigidTransform:
		a.drawRigidTransform(ctx, a.value.(common.RigidTransform), labels)
	case item.KindContactPoint:
		a.drawContactPoint(ctx, a.contactValue(), labels)
	case item.KindConfig:
		a.drawConfigItem(ctx, w, labels)
	case item.KindIKGoal:
		a.drawIKGoal(ctx, a.value.(*item.IKGoal), w, labels)
	}
}

// applyStyleOverride installs the custom style or color attribute on items
// that expose an appearance slot, returning the function that restores the
// snapshot. The snapshot is taken once per item so repeated overrides do not
// capture an already-overridden style.
func (a *appearance) applyStyleOverride() func() {
	if a.useDefault {
		return func() {}
	}
	styled, ok := a.value.(item.Styled)
	if !ok {
		return func() {}
	}

	if a.origStyle == nil {
		snapshot := *styled.Style()
		a.origStyle = &snapshot
	}

	if a.customStyle != nil {
		styled.SetStyle(*a.customStyle)
	} else {
		styled.SetStyle(common.Style{Color: a.attrs.Color("color", a.origStyle.Color)})
	}

	orig := *a.origStyle
	return func() {
		styled.SetStyle(orig)
	}
}

// resolveKind infers the drawing kind, consulting the "type" attribute to
// break ties. Undrawable and unresolved-ambiguous items are logged once and
// skipped.
func (a *appearance) resolveKind(w world.World) item.Kind {
	kinds := world.InferKinds(a.value, w)
	switch len(kinds) {
	case 0:
		if !a.warnedKind {
			a.warnedKind = true
			log.Printf("appearance %q: value of type %T is not drawable, skipping", a.name, a.value)
		}
		return item.KindUnknown
	case 1:
		return kinds[0]
	default:
		if want := a.attrs.String("type"); want != "" {
			for _, k := range kinds {
				if k.String() == want {
					return k
				}
			}
		}
		if !a.warnedKind {
			a.warnedKind = true
			log.Printf("appearance %q: ambiguous kind %v, set the \"type\" attribute to disambiguate", a.name, kinds)
		}
		return item.KindUnknown
	}
}

func (a *appearance) vectorValue() common.Vec3 {
	switch x := a.value.(type) {
	case common.Vec3:
		return x
	case []float32:
		return common.Vec3{x[0], x[1], x[2]}
	case item.Config:
		return common.Vec3{x[0], x[1], x[2]}
	default:
		return common.Vec3{}
	}
}

func (a *appearance) contactValue() item.ContactPoint {
	switch x := a.value.(type) {
	case item.ContactPoint:
		return x
	case *item.ContactPoint:
		return *x
	default:
		return item.ContactPoint{}
	}
}

func (a *appearance) emitLabel(labels *LabelSink, pos common.Vec3) {
	if labels == nil || a.name == "" || a.attrs.Bool("text_hidden") {
		return
	}
	labels.Add(pos.Add(labelOffset), a.name, a.attrs.Color("label_color", defaultLabelColor))
}

func (a *appearance) drawPoint(ctx *render.Context, pos common.Vec3, labels *LabelSink) {
	size := a.attrs.Float("size", 5)
	color := a.attrs.Color("color", defaultPointColor)

	t := common.RigidTransform{R: common.IdentityRotation(), T: pos}
	type params struct {
		Size  float32
		Color common.Color
	}
	a.cache(0).Draw(ctx, func(c *render.Context) {
		c.Point(common.Vec3{}, size, color)
	}, &t, params{size, color})

	a.emitLabel(labels, pos)
}

func (a *appearance) drawDirection(ctx *render.Context, d *item.Direction, labels *LabelSink) {
	length := a.attrs.Float("length", 0.15)
	width := a.attrs.Float("width", 2)
	color := a.attrs.Color("color", defaultDirectionColor)

	base := common.Vec3{}
	if d.Frame() != nil {
		base = d.Frame().WorldCoordinates().T
	}
	dir := d.WorldCoordinates()
	tip := dir.Scale(length)

	t := common.RigidTransform{R: common.IdentityRotation(), T: base}
	type params struct {
		Dir    common.Vec3
		Length float32
		Width  float32
		Color  common.Color
	}
	a.cache(0).Draw(ctx, func(c *render.Context) {
		c.Line(common.Vec3{}, tip, width, color)
	}, &t, params{dir, length, width, color})

	a.emitLabel(labels, base.Add(tip))
}

// drawFrame draws an axis triad plus a connector curve to the parent frame.
// Frames change too often for the cache to pay off, so they draw uncached.
func (a *appearance) drawFrame(ctx *render.Context, f *item.Frame, labels *LabelSink) {
	length := a.attrs.Float("length", 0.1)
	width := a.attrs.Float("width", 0.01)

	wt := f.WorldCoordinates()
	a.drawTriad(ctx, wt, length, width)

	if f.Parent() != nil {
		parent := f.Parent().WorldCoordinates()
		d := parent.T.Distance(wt.T)
		v1 := parent.R.Column(0).Scale(d)
		v2 := wt.R.Column(0).Scale(d)
		ctx.HermiteCurve(parent.T, v1, wt.T, v2, 2, frameConnectorColor)
	}

	a.emitLabel(labels, wt.T)
}

func (a *appearance) drawTriad(ctx *render.Context, t common.RigidTransform, length, width float32) {
	for i := 0; i < 3; i++ {
		ctx.Line(t.T, t.T.Madd(t.R.Column(i), length), width, axisColors[i])
	}
}

// triadRenderFn returns a closure drawing an axis triad at the local origin,
// for use under a cache transform.
func triadRenderFn(length, width float32) func(*render.Context) {
	return func(c *render.Context) {
		for i := 0; i < 3; i++ {
			axis := common.Vec3{}
			axis[i] = length
			c.Line(common.Vec3{}, axis, width, axisColors[i])
		}
	}
}

func (a *appearance) drawTransform(ctx *render.Context, t *item.Transform, labels *LabelSink) {
	src := t.Source().WorldCoordinates()
	dst := common.IdentityTransform()
	if t.Dest() != nil {
		dst = t.Dest().WorldCoordinates()
	}

	d := src.T.Distance(dst.T)
	v1 := src.R.Column(0).Scale(d)
	v2 := dst.R.Column(0).Scale(d)

	type params struct {
		Src common.RigidTransform
		Dst common.RigidTransform
	}
	a.cache(0).Draw(ctx, func(c *render.Context) {
		c.HermiteCurve(src.T, v1, dst.T, v2, 2, transformCurveColor)
	}, nil, params{src, dst})

	a.emitLabel(labels, src.T)
}

func (a *appearance) drawRigidTransform(ctx *render.Context, t common.RigidTransform, labels *LabelSink) {
	length := a.attrs.Float("length", 0.1)
	width := a.attrs.Float("width", 0.01)

	type params struct {
		Length float32
		Width  float32
	}
	a.cache(0).Draw(ctx, triadRenderFn(length, width), &t, params{length, width})

	a.emitLabel(labels, t.T)
}

func (a *appearance) drawContactPoint(ctx *render.Context, cp item.ContactPoint, labels *LabelSink) {
	length := a.attrs.Float("length", 0.05)
	size := a.attrs.Float("size", 5)
	color := a.attrs.Color("color", defaultContactColor)

	type params struct {
		CP     item.ContactPoint
		Length float32
		Size   float32
		Color  common.Color
	}
	a.cache(0).Draw(ctx, func(c *render.Context) {
		c.Point(cp.X, size, color)
		c.Line(cp.X, cp.X.Madd(cp.N, length), 2, color)
	}, nil, params{cp, length, size, color})

	a.emitLabel(labels, cp.X)
}

// drawConfigItem poses the world's first robot at the item's configuration,
// draws it, and restores the robot's own configuration. No caching; the robot
// draws itself.
func (a *appearance) drawConfigItem(ctx *render.Context, w world.World, labels *LabelSink) {
	r := world.FirstRobot(w)
	if r == nil {
		if !a.warnedKind {
			a.warnedKind = true
			log.Printf("appearance %q: configuration item has no robot to pose", a.name)
		}
		return
	}

	cfg, ok := world.GetConfig(a.value)
	if !ok {
		return
	}

	saved := r.Config()
	if err := r.SetConfig(cfg); err != nil {
		if !a.warnedKind {
			a.warnedKind = true
			log.Printf("appearance %q: cannot pose robot: %v", a.name, err)
		}
		return
	}
	defer func() {
		if err := r.SetConfig(saved); err != nil {
			log.Printf("appearance %q: cannot restore robot config: %v", a.name, err)
		}
	}()

	r.DrawSelf(ctx)
	a.emitLabel(labels, r.LinkTransform(0).T)
}

// drawIKGoal draws one to three cached sub-objects depending on the goal's
// constraint dimensionality: paired widgets on the link and the target, plus
// a connector curve when a position is constrained. Without a resolvable
// robot nothing is drawn.
func (a *appearance) drawIKGoal(ctx *render.Context, g *item.IKGoal, w world.World, labels *LabelSink) {
	var robot item.LinkTransformer
	if g.Robot() != nil {
		robot = g.Robot()
	} else if r := world.FirstRobot(w); r != nil {
		robot = r
	}
	if robot == nil {
		return
	}

	length := a.attrs.Float("length", 0.1)
	width := a.attrs.Float("width", 0.01)
	color := a.attrs.Color("color", defaultContactColor)
	tlink := robot.LinkTransform(g.Link())

	if g.NumPosDims() == 3 {
		local, target := g.Position()
		cur := tlink.Apply(local)

		switch g.NumRotDims() {
		case 3:
			goalR, _ := g.Rotation()
			t0 := common.RigidTransform{R: tlink.R, T: cur}
			t1 := common.RigidTransform{R: goalR, T: target}
			type params struct {
				Length float32
				Width  float32
			}
			a.cache(0).Draw(ctx, triadRenderFn(length, width), &t0, params{length, width})
			a.cache(1).Draw(ctx, triadRenderFn(length, width), &t1, params{length, width})
		case 1:
			localAxis, worldAxis, _ := g.RotationAxis()
			hingeColor := a.attrs.Color("color", defaultHingeColor)
			hingeWidth := a.attrs.Float("width", 3)
			curAxis := tlink.R.Apply(localAxis)
			type params struct {
				Base  common.Vec3
				Axis  common.Vec3
				Width float32
				Color common.Color
			}
			a.cache(0).Draw(ctx, func(c *render.Context) {
				c.Line(cur, cur.Madd(curAxis, length), hingeWidth, hingeColor)
			}, nil, params{cur, curAxis, hingeWidth, hingeColor})
			a.cache(1).Draw(ctx, func(c *render.Context) {
				c.Line(target, target.Madd(worldAxis, length), hingeWidth, hingeColor)
			}, nil, params{target, worldAxis, hingeWidth, hingeColor})
		default:
			size := a.attrs.Float("size", 5)
			type params struct {
				Pos   common.Vec3
				Size  float32
				Color common.Color
			}
			a.cache(0).Draw(ctx, func(c *render.Context) {
				c.Point(cur, size, color)
			}, nil, params{cur, size, color})
			a.cache(1).Draw(ctx, func(c *render.Context) {
				c.Point(target, size, color)
			}, nil, params{target, size, color})
		}

		d := cur.Distance(target)
		v1 := tlink.R.Column(0).Scale(d)
		type connParams struct {
			From common.Vec3
			To   common.Vec3
		}
		a.cache(2).Draw(ctx, func(c *render.Context) {
			c.HermiteCurve(cur, v1, target, common.Vec3{}, 2, color)
		}, nil, connParams{cur, target})

		a.emitLabel(labels, target)
		return
	}

	if g.NumRotDims() > 0 {
		// Rotation-only goal: current and target orientation widgets at the
		// link origin, no connector.
		type params struct {
			Length float32
			Width  float32
		}
		a.cache(0).Draw(ctx, triadRenderFn(length, width), &tlink, params{length, width})
		if goalR, ok := g.Rotation(); ok {
			t1 := common.RigidTransform{R: goalR, T: tlink.T}
			a.cache(1).Draw(ctx, triadRenderFn(length, width), &t1, params{length, width})
		}
		a.emitLabel(labels, tlink.T)
	}
}
