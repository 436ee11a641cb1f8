// package scene implements the named item registry at the heart of the
// visualizer: the mutation surface scripts call under the global lock, and
// the per-frame render pass that updates animations, draws every item through
// the cache layer, and merges floating labels.
package scene

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/appearance"
	"github.com/Carmen-Shannon/vista-go/engine/plugin"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/trajectory"
	"github.com/Carmen-Shannon/vista-go/engine/world"
)

// ErrItemNotFound is returned by operations addressing a name with no
// registered item.
var ErrItemNotFound = errors.New("scene: item not found")

// WorldItemName is the reserved registry name whose item, when it implements
// world.World, supplies robots for configuration items and IK goals.
const WorldItemName = "world"

// Registry is a named collection of scene items with their appearances. All
// operations are safe for concurrent use; mutations and the render pass
// serialize on one mutex, which can be shared with the owning engine so
// script-side batches can bracket multiple calls.
//
// Registry implements plugin.Plugin: the render loop drives it through
// Display and Idle.
type Registry interface {
	plugin.Plugin

	// Add registers an item under a name, replacing any existing item.
	//
	// Parameters:
	//   - name: the item name
	//   - v: the item value
	//   - keepAppearance: when replacing, retain the existing appearance state
	//     (attributes, visibility, animation) instead of resetting it
	Add(name string, v any, keepAppearance bool)

	// Remove unregisters an item and destroys its appearance.
	//
	// Parameters:
	//   - name: the item name
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	Remove(name string) error

	// Clear removes all items.
	Clear()

	// Names returns the registered item names in unspecified order.
	Names() []string

	// Item returns the value registered under a name.
	//
	// Parameters:
	//   - name: the item name
	//
	// Returns:
	//   - any: the item value
	//   - error: ErrItemNotFound when no such item exists
	Item(name string) (any, error)

	// Appearance returns the appearance wrapper of an item. The caller must
	// hold the engine lock while using it.
	//
	// Parameters:
	//   - name: the item name
	//
	// Returns:
	//   - appearance.Appearance: the appearance
	//   - error: ErrItemNotFound when no such item exists
	Appearance(name string) (appearance.Appearance, error)

	// Animate attaches an animation to an item, starting at the current
	// animation time. Accepts a trajectory.Trajectory or a bare [][]float32
	// milestone list (wrapped with unit-duration steps); nil detaches.
	//
	// Parameters:
	//   - name: the item name
	//   - anim: trajectory.Trajectory, [][]float32, or nil
	//   - speed: playback rate multiplier
	//   - loop: wrap past the end instead of clamping
	//
	// Returns:
	//   - error: ErrItemNotFound, or an error describing an unusable animation
	Animate(name string, anim any, speed float64, loop bool) error

	// PauseAnimation stops or resumes the animation clock.
	//
	// Parameters:
	//   - paused: true to freeze the clock
	PauseAnimation(paused bool)

	// StepAnimation advances the animation clock manually, regardless of the
	// pause flag.
	//
	// Parameters:
	//   - dt: seconds to advance
	StepAnimation(dt float64)

	// AnimationTime returns the current animation clock.
	AnimationTime() float64

	// SetAnimationTime sets the animation clock.
	//
	// Parameters:
	//   - t: the new clock value
	SetAnimationTime(t float64)

	// SetAttribute stores a drawing attribute on an item. Passing
	// appearance.UnsetAttribute deletes the key.
	//
	// Parameters:
	//   - name: the item name
	//   - key: attribute name
	//   - value: attribute value
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	SetAttribute(name, key string, value any) error

	// SetColor overrides an item's color.
	//
	// Parameters:
	//   - name: the item name
	//   - c: the override color
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	SetColor(name string, c common.Color) error

	// SetAppearance installs a full style override on an item.
	//
	// Parameters:
	//   - name: the item name
	//   - style: the override style
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	SetAppearance(name string, style common.Style) error

	// RevertAppearance returns an item to its default appearance.
	//
	// Parameters:
	//   - name: the item name
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	RevertAppearance(name string) error

	// Hide toggles drawing of an item without touching its cached drawing.
	//
	// Parameters:
	//   - name: the item name
	//   - hidden: true to skip the item during drawing
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	Hide(name string, hidden bool) error

	// HideLabel toggles the item's floating text label.
	//
	// Parameters:
	//   - name: the item name
	//   - hidden: true to suppress the label
	//
	// Returns:
	//   - error: ErrItemNotFound when no such item exists
	HideLabel(name string, hidden bool) error

	// GetItemConfig returns an item's flat configuration vector.
	//
	// Parameters:
	//   - name: the item name
	//
	// Returns:
	//   - []float32: the configuration
	//   - error: ErrItemNotFound, or an error when the item has no
	//     configuration representation
	GetItemConfig(name string) ([]float32, error)

	// SetItemConfig applies a flat configuration vector to an item, keeping
	// its appearance.
	//
	// Parameters:
	//   - name: the item name
	//   - cfg: the configuration to apply
	//
	// Returns:
	//   - error: ErrItemNotFound, or an error when the vector does not fit
	SetItemConfig(name string, cfg []float32) error

	// Dirty flags an item's cached drawings stale. The empty name or "all"
	// flags every item.
	//
	// Parameters:
	//   - name: the item name, "" or "all" for all items
	//
	// Returns:
	//   - error: ErrItemNotFound when a specific name does not exist
	Dirty(name string) error

	// Labels returns the merged floating labels of the last rendered frame.
	Labels() []common.Label

	// Render runs the frame pass through the given context: animation update,
	// per-item draw, label flush.
	//
	// Parameters:
	//   - ctx: the drawing context
	Render(ctx *render.Context)
}

type registry struct {
	mu    *sync.Mutex
	items map[string]appearance.Appearance

	animationTime float64
	animating     bool

	labels *appearance.LabelSink

	// computePool runs the animation-update phase of each frame in parallel;
	// items are disjoint so updates never contend.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Registry = &registry{}

// NewRegistry creates an empty registry from the given options.
//
// Parameters:
//   - options: optional configuration functions (see WithMutex,
//     WithComputeWorkers)
//
// Returns:
//   - Registry: the new registry
func NewRegistry(options ...RegistryBuilderOption) Registry {
	r := &registry{
		items:          map[string]appearance.Appearance{},
		animating:      true,
		labels:         appearance.NewLabelSink(),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(r)
	}
	if r.mu == nil {
		r.mu = &sync.Mutex{}
	}
	// Queue size of 256 accommodates typical scene item counts with headroom.
	r.computePool = worker.NewDynamicWorkerPool(r.computeWorkers, 256, 1*time.Second)
	return r
}

func (r *registry) Add(name string, v any, keepAppearance bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[name]; ok {
		if keepAppearance {
			existing.SetItem(v)
			return
		}
		existing.Destroy()
	}
	r.items[name] = appearance.New(name, v)
}

func (r *registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	a.Destroy()
	delete(r.items, name)
	return nil
}

func (r *registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.items {
		a.Destroy()
	}
	r.items = map[string]appearance.Appearance{}
}

func (r *registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

func (r *registry) Item(name string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	return a.Item(), nil
}

func (r *registry) Appearance(name string) (appearance.Appearance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	return a, nil
}

func (r *registry) Animate(name string, anim any, speed float64, loop bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}

	var traj trajectory.Trajectory
	switch x := anim.(type) {
	case nil:
	case trajectory.Trajectory:
		traj = x
	case [][]float32:
		var err error
		traj, err = trajectory.FromMilestones(x)
		if err != nil {
			return fmt.Errorf("cannot animate %q: %w", name, err)
		}
	default:
		return fmt.Errorf("cannot animate %q: unsupported animation type %T", name, anim)
	}

	a.Animate(traj, speed, r.animationTime, loop)
	return nil
}

func (r *registry) PauseAnimation(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animating = !paused
}

func (r *registry) StepAnimation(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animationTime += dt
}

func (r *registry) AnimationTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.animationTime
}

func (r *registry) SetAnimationTime(t float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animationTime = t
}

func (r *registry) SetAttribute(name, key string, value any) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.SetAttribute(key, value)
	})
}

func (r *registry) SetColor(name string, c common.Color) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.SetColor(c)
	})
}

func (r *registry) SetAppearance(name string, style common.Style) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.SetCustomStyle(style)
	})
}

func (r *registry) RevertAppearance(name string) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.RevertStyle()
	})
}

func (r *registry) Hide(name string, hidden bool) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.SetHidden(hidden)
	})
}

func (r *registry) HideLabel(name string, hidden bool) error {
	return r.withItem(name, func(a appearance.Appearance) {
		a.SetAttribute("text_hidden", hidden)
	})
}

func (r *registry) GetItemConfig(name string) ([]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	cfg, ok := world.GetConfig(a.Item())
	if !ok {
		return nil, fmt.Errorf("item %q of type %T has no configuration", name, a.Item())
	}
	return cfg, nil
}

func (r *registry) SetItemConfig(name string, cfg []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	updated, _, err := world.SetConfig(a.Item(), cfg)
	if err != nil {
		return fmt.Errorf("cannot set config of %q: %w", name, err)
	}
	a.SetItem(updated)
	return nil
}

func (r *registry) Dirty(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || name == "all" {
		for _, a := range r.items {
			a.MarkChanged()
		}
		return nil
	}
	a, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	a.MarkChanged()
	return nil
}

func (r *registry) Labels() []common.Label {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.labels.Labels()
}

// withItem runs fn on a named item under the lock.
func (r *registry) withItem(name string, fn func(appearance.Appearance)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	fn(a)
	return nil
}

// lookupWorld returns the world item's value when one is registered.
func (r *registry) lookupWorld() world.World {
	if a, ok := r.items[WorldItemName]; ok {
		if w, ok := a.Item().(world.World); ok {
			return w
		}
	}
	return nil
}

// Initialize implements plugin.Plugin.
//
// Returns:
//   - bool: always true
func (r *registry) Initialize() bool {
	return true
}

// Display implements plugin.Plugin by running the frame pass.
//
// Parameters:
//   - ctx: the drawing context
func (r *registry) Display(ctx *render.Context) {
	r.Render(ctx)
}

// Idle implements plugin.Plugin: advances the animation clock unless paused.
//
// Parameters:
//   - dt: seconds since the previous idle tick
func (r *registry) Idle(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.animating {
		r.animationTime += dt
	}
}

// Keyboard implements plugin.Plugin. The registry consumes no input.
//
// Returns:
//   - bool: always false
func (r *registry) Keyboard(key rune, x, y int) bool {
	return false
}

func (r *registry) Render(ctx *render.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.labels.Reset()
	w := r.lookupWorld()

	// Phase 1: evaluate animations in parallel. Items are disjoint, so the
	// updates are contention-free; the wait group is the frame barrier.
	t := r.animationTime
	var wg sync.WaitGroup
	taskID := 0
	for _, a := range r.items {
		wg.Add(1)
		aCap := a // capture for closure
		id := taskID
		taskID++
		r.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				aCap.Update(t)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: serial draw. The cache layer and the backend are confined to
	// this goroutine.
	for name, a := range r.items {
		r.drawItem(ctx, name, a, w)
	}

	r.labels.Flush(ctx)
}

// drawItem draws one item bracketed by the animation config swap. A panic in
// a draw function is confined to the item: the swap still reverses, the
// context stack resets, and the frame continues.
func (r *registry) drawItem(ctx *render.Context, name string, a appearance.Appearance, w world.World) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("scene: drawing item %q panicked: %v", name, rec)
			ctx.Reset()
		}
	}()

	a.SwapDrawConfig(w)
	defer a.SwapDrawConfig(w)

	a.Draw(ctx, w, r.labels)
}
