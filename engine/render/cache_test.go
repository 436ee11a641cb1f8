package render

import (
	"testing"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*Context, *TraceBackend) {
	backend := NewTraceBackend()
	return NewContext(backend), backend
}

func TestCacheObjectCompilesOnceForSameFingerprint(t *testing.T) {
	ctx, backend := testContext()
	cache := NewCacheObject("pt")

	compiles := 0
	draw := func() {
		cache.Draw(ctx, func(c *Context) {
			compiles++
			c.Point(common.Vec3{1, 2, 3}, 5, common.Color{0, 0, 0, 1})
		}, nil, "params")
	}

	draw()
	require.Equal(t, 1, compiles)
	require.Len(t, backend.Calls(), 1)

	backend.Reset()
	draw()
	assert.Equal(t, 1, compiles, "unchanged fingerprint must replay, not recompile")
	require.Len(t, backend.Calls(), 1)
	assert.Equal(t, common.Vec3{1, 2, 3}, backend.Calls()[0].A)
}

func TestCacheObjectRecompilesOnFingerprintChange(t *testing.T) {
	ctx, _ := testContext()
	cache := NewCacheObject("pt")

	compiles := 0
	draw := func(fp any) {
		cache.Draw(ctx, func(c *Context) {
			compiles++
			c.Point(common.Vec3{}, 5, common.Color{})
		}, nil, fp)
	}

	draw(1)
	draw(1)
	require.Equal(t, 1, compiles)

	draw(2)
	assert.Equal(t, 2, compiles)

	draw(2)
	assert.Equal(t, 2, compiles)
}

func TestCacheObjectNilFingerprintDoesNotRecompile(t *testing.T) {
	ctx, _ := testContext()
	cache := NewCacheObject("pt")

	compiles := 0
	for i := 0; i < 3; i++ {
		cache.Draw(ctx, func(c *Context) {
			compiles++
		}, nil, nil)
	}
	assert.Equal(t, 1, compiles)
}

func TestCacheObjectMarkChangedForcesRecompile(t *testing.T) {
	ctx, _ := testContext()
	cache := NewCacheObject("pt")

	compiles := 0
	draw := func() {
		cache.Draw(ctx, func(c *Context) {
			compiles++
		}, nil, "same")
	}

	draw()
	draw()
	require.Equal(t, 1, compiles)

	cache.MarkChanged()
	draw()
	assert.Equal(t, 2, compiles)
}

func TestCacheObjectReplayUnderNewTransform(t *testing.T) {
	ctx, backend := testContext()
	cache := NewCacheObject("pt")

	t1 := common.RigidTransform{R: common.IdentityRotation(), T: common.Vec3{1, 0, 0}}
	renderFn := func(c *Context) {
		c.Point(common.Vec3{}, 5, common.Color{})
	}

	cache.Draw(ctx, renderFn, &t1, "fp")
	require.Len(t, backend.Calls(), 1)
	assert.Equal(t, common.Vec3{1, 0, 0}, backend.Calls()[0].A)

	// Same fingerprint, different transform: the compiled list replays at the
	// new location without recompiling.
	backend.Reset()
	t2 := common.RigidTransform{R: common.IdentityRotation(), T: common.Vec3{0, 2, 0}}
	cache.Draw(ctx, renderFn, &t2, "fp")
	require.Len(t, backend.Calls(), 1)
	assert.Equal(t, common.Vec3{0, 2, 0}, backend.Calls()[0].A)
}

func TestCacheObjectReentrantDrawBypassesCache(t *testing.T) {
	ctx, backend := testContext()
	cache := NewCacheObject("outer")

	inner := 0
	cache.Draw(ctx, func(c *Context) {
		cache.Draw(c, func(c2 *Context) {
			inner++
			c2.Point(common.Vec3{}, 1, common.Color{})
		}, nil, "inner")
		c.Point(common.Vec3{1, 1, 1}, 1, common.Color{})
	}, nil, "outer")

	assert.Equal(t, 1, inner)
	assert.Len(t, backend.Calls(), 2)
}

func TestCacheObjectSecondObjectWhileRecordingDrawsDirect(t *testing.T) {
	ctx, _ := testContext()
	outer := NewCacheObject("outer")
	nested := NewCacheObject("nested")

	nestedCompiles := 0
	outer.Draw(ctx, func(c *Context) {
		nested.Draw(c, func(c2 *Context) {
			nestedCompiles++
		}, nil, "fp")
	}, nil, "fp")
	require.Equal(t, 1, nestedCompiles)

	// The nested object must not have captured a list while another recording
	// was active: drawing it alone compiles fresh.
	nested.Draw(ctx, func(c *Context) {
		nestedCompiles++
	}, nil, "fp")
	assert.Equal(t, 2, nestedCompiles)
}

func TestCacheObjectDestroyIdempotent(t *testing.T) {
	ctx, _ := testContext()
	cache := NewCacheObject("pt")

	compiles := 0
	draw := func() {
		cache.Draw(ctx, func(c *Context) {
			compiles++
		}, nil, "fp")
	}

	draw()
	cache.Destroy()
	cache.Destroy()

	draw()
	assert.Equal(t, 2, compiles, "a destroyed cache recompiles lazily")
}

func TestContextResetUnwindsTransformStack(t *testing.T) {
	ctx, backend := testContext()

	ctx.PushTransform(common.RigidTransform{R: common.IdentityRotation(), T: common.Vec3{5, 0, 0}})
	ctx.Reset()

	ctx.Point(common.Vec3{}, 1, common.Color{})
	require.Len(t, backend.Calls(), 1)
	assert.Equal(t, common.Vec3{}, backend.Calls()[0].A)
	assert.False(t, ctx.Recording())
}

func TestContextHermiteCurveInterpolatesEndpoints(t *testing.T) {
	ctx, backend := testContext()

	p1 := common.Vec3{0, 0, 0}
	p2 := common.Vec3{1, 0, 0}
	ctx.HermiteCurve(p1, common.Vec3{}, p2, common.Vec3{}, 1, common.Color{})

	calls := backend.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, p1, calls[0].A)
	assert.InDelta(t, float64(p2[0]), float64(calls[len(calls)-1].B[0]), 1e-5)
}
