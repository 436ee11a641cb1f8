package render

import (
	"reflect"

	"github.com/Carmen-Shannon/vista-go/common"
)

// CacheObject caches a compiled drawing so it can be replayed cheaply on
// subsequent frames. The drawing is recompiled when the caller-supplied
// fingerprint changes, when MarkChanged has been called, or when no compiled
// list exists yet. The draw function may draw in a local frame; the object is
// re-transformed on replay without recompiling.
//
// CacheObjects are owned by exactly one Appearance and confined to the render
// thread; they perform no locking.
type CacheObject struct {
	name string

	// list is the compiled recording, nil until first compile or after Destroy.
	list *commandList

	// fingerprint recorded at last compile time, compared by deep equality.
	fingerprint any

	// changed forces a recompile on the next Draw regardless of fingerprint.
	changed bool

	// compiling guards against re-entrant Draw calls from within the render
	// function; the inner call executes directly without opening a second
	// recording.
	compiling bool
}

// NewCacheObject creates an empty cache. The compiled list is created lazily
// on the first Draw call.
//
// Parameters:
//   - name: diagnostic name for the cached drawing
//
// Returns:
//   - *CacheObject: the new cache
func NewCacheObject(name string) *CacheObject {
	return &CacheObject{name: name}
}

// MarkChanged flags the cached drawing as stale. The next Draw call
// recompiles regardless of fingerprint match.
func (o *CacheObject) MarkChanged() {
	o.changed = true
}

// Destroy releases the compiled recording. Safe to call multiple times; a
// destroyed cache recompiles lazily if drawn again.
func (o *CacheObject) Destroy() {
	o.list = nil
	o.fingerprint = nil
	o.changed = false
}

// Draw draws the cached object through ctx. If the cache is valid (same
// fingerprint, not marked changed) the compiled recording is replayed under
// transform; otherwise renderFn is recorded and executed in one pass.
//
// Re-entrant calls (renderFn calling Draw on the same object) and calls made
// while the context is already compiling another list execute renderFn
// directly, bypassing the cache.
//
// Parameters:
//   - ctx: the drawing context
//   - renderFn: function issuing the primitive draw calls
//   - transform: optional pre-multiplied transform, nil for none
//   - fingerprint: opaque value identifying the drawing's parameters; compared
//     by deep equality against the value stored at last compile
func (o *CacheObject) Draw(ctx *Context, renderFn func(*Context), transform *common.RigidTransform, fingerprint any) {
	if o.compiling || ctx.Recording() {
		renderFn(ctx)
		return
	}

	if o.list == nil || o.changed || !reflect.DeepEqual(fingerprint, o.fingerprint) {
		o.fingerprint = fingerprint
		o.changed = false

		if transform != nil {
			ctx.PushTransform(*transform)
		}
		list := &commandList{name: o.name}
		ctx.recording = list
		o.compiling = true
		func() {
			defer func() {
				o.compiling = false
				ctx.recording = nil
			}()
			renderFn(ctx)
		}()
		o.list = list
		if transform != nil {
			ctx.PopTransform()
		}
		return
	}

	if transform != nil {
		ctx.PushTransform(*transform)
	}
	ctx.replay(o.list)
	if transform != nil {
		ctx.PopTransform()
	}
}
