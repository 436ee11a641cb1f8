// package engine implements the visualizer lifecycle: named window sessions
// with a hidden/shown/dialog mode state machine, the render goroutine that
// polls windows and draws scenes, and the global lock scripts use to batch
// scene mutations.
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/vista-go/engine/plugin"
	"github.com/Carmen-Shannon/vista-go/engine/profiler"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/scene"
	"github.com/Carmen-Shannon/vista-go/engine/window"
)

// Mode is the visibility state of a session window.
type Mode uint8

const (
	// ModeHidden keeps the window offscreen; its scene is not drawn.
	ModeHidden Mode = iota
	// ModeShown displays the window and renders every frame.
	ModeShown
	// ModeDialog displays the window and blocks Dialog callers until the
	// window is closed.
	ModeDialog
)

// WindowFactory creates a platform window for a session. Injected so tests
// can run the engine headless.
type WindowFactory func(title string, width, height int) (window.Window, error)

// BackendFactory creates a render backend over a session window.
type BackendFactory func(win window.Window) (render.Backend, error)

// session is one visualizer window with its scene, plugins, and GPU state.
// Window, backend, and context are created lazily by the render goroutine the
// first time the session leaves ModeHidden; caches are owned per session and
// never shared.
type session struct {
	id    int
	title string
	mode  Mode

	win     window.Window
	backend render.Backend
	ctx     *render.Context

	registry scene.Registry
	plugins  *plugin.Stack

	initialized bool
	hiddenApplied bool

	// Mouse drag state for camera navigation.
	leftDown     bool
	rightDown    bool
	lastX, lastY int
}

// Engine is the visualization context: a set of window sessions sharing one
// global lock, driven by a single render goroutine. All methods are safe for
// concurrent use from script goroutines.
type Engine interface {
	// CreateWindow adds a new hidden session and returns its id. The new
	// session becomes current.
	//
	// Parameters:
	//   - title: the window title
	//
	// Returns:
	//   - int: the session id
	CreateWindow(title string) int

	// SetWindow makes the identified session current. Subsequent scene and
	// plugin operations address it.
	//
	// Parameters:
	//   - id: a session id returned by CreateWindow (the initial session is 0)
	//
	// Returns:
	//   - error: error if no such session exists
	SetWindow(id int) error

	// GetWindow returns the current session id, -1 when the engine is
	// disabled.
	GetWindow() int

	// SetWindowTitle changes the current session's window title.
	//
	// Parameters:
	//   - title: the new title
	SetWindowTitle(title string)

	// GetWindowTitle returns the current session's window title.
	GetWindowTitle() string

	// Scene returns the current session's scene registry.
	//
	// Returns:
	//   - scene.Registry: the registry, nil when the engine is disabled
	Scene() scene.Registry

	// SetPlugin replaces the current session's plugin stack with a single
	// plugin. Passing nil restores the bare scene registry.
	//
	// Parameters:
	//   - p: the plugin, or nil
	SetPlugin(p plugin.Plugin)

	// PushPlugin layers a plugin on top of the current session's stack. The
	// pushed plugin sees input first.
	//
	// Parameters:
	//   - p: the plugin to push
	PushPlugin(p plugin.Plugin)

	// PopPlugin removes the top plugin from the current session's stack.
	//
	// Returns:
	//   - plugin.Plugin: the removed plugin, nil when only the scene remains
	PopPlugin() plugin.Plugin

	// AddPlugin composes a plugin side by side with the current top of the
	// stack.
	//
	// Parameters:
	//   - p: the plugin to add
	AddPlugin(p plugin.Plugin)

	// Show displays the current session's window and starts rendering it.
	Show()

	// Hide removes the current session's window from the screen. The scene
	// and its cached drawings are retained.
	Hide()

	// Shown reports whether the current session's window is displayed.
	Shown() bool

	// Dialog shows the current session's window in dialog mode and blocks
	// until the user closes it or the engine is killed.
	Dialog()

	// Spin shows the current session for at most the given duration, then
	// hides it. Returns early if the user closes the window.
	//
	// Parameters:
	//   - duration: maximum time to stay shown
	Spin(duration time.Duration)

	// Run shows the current session and blocks until its window is closed,
	// then shuts the engine down.
	Run()

	// Kill shuts the engine down: all scenes are cleared, backends destroyed,
	// and windows closed. Blocks until the render goroutine has exited. Safe
	// to call multiple times.
	Kill()

	// Lock acquires the global visualization lock. Hold it while reading
	// scene items directly; do not call registry or engine operations while
	// holding it.
	Lock()

	// Unlock releases the global visualization lock.
	Unlock()
}

type engine struct {
	mu   sync.Mutex
	cond *sync.Cond

	sessions []*session
	current  int

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	startOnce   sync.Once

	windowFactory  WindowFactory
	backendFactory BackendFactory

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameInterval time.Duration

	// disabled is set when the windowing or GPU stack cannot initialize;
	// every subsequent operation logs and no-ops.
	disabled    bool
	disabledErr error
}

var _ Engine = &engine{}

// NewEngine creates an engine with one hidden session. Never fails: platform
// initialization happens lazily on first Show, and failures put the engine
// into a disabled no-op mode instead of returning an error.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:   make(chan struct{}),
		profiler:      profiler.NewProfiler(),
		frameInterval: time.Second / 60,
	}
	e.cond = sync.NewCond(&e.mu)
	e.windowFactory = defaultWindowFactory
	e.backendFactory = defaultBackendFactory

	for _, opt := range options {
		opt(e)
	}

	e.addSession("vista")
	return e
}

func defaultWindowFactory(title string, width, height int) (window.Window, error) {
	return window.NewWindow(
		window.WithTitle(title),
		window.WithWidth(width),
		window.WithHeight(height),
	)
}

func defaultBackendFactory(win window.Window) (render.Backend, error) {
	sd := win.SurfaceDescriptor()
	if sd == nil {
		return nil, fmt.Errorf("window has no surface descriptor")
	}
	return render.NewWGPUBackend(sd, win.Width(), win.Height())
}

// addSession creates a hidden session and makes it current. Caller must not
// hold the lock.
func (e *engine) addSession(title string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &session{
		id:    len(e.sessions),
		title: title,
	}
	s.registry = scene.NewRegistry(scene.WithMutex(&e.mu))
	s.plugins = plugin.NewStack(s.registry)
	e.sessions = append(e.sessions, s)
	e.current = s.id
	return s.id
}

func (e *engine) CreateWindow(title string) int {
	if e.isDisabled() {
		return -1
	}
	return e.addSession(title)
}

func (e *engine) SetWindow(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id < 0 || id >= len(e.sessions) {
		return fmt.Errorf("no window with id %d", id)
	}
	e.current = id
	return nil
}

func (e *engine) GetWindow() int {
	if e.isDisabled() {
		return -1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *engine) SetWindowTitle(title string) {
	if e.isDisabled() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sessions[e.current]
	s.title = title
	if s.win != nil {
		s.win.SetTitle(title)
	}
}

func (e *engine) GetWindowTitle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[e.current].title
}

func (e *engine) Scene() scene.Registry {
	if e.isDisabled() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[e.current].registry
}

func (e *engine) SetPlugin(p plugin.Plugin) {
	if e.isDisabled() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sessions[e.current]
	if p == nil {
		s.plugins.Set(s.registry)
	} else {
		s.plugins.Set(p)
	}
	if s.initialized {
		s.plugins.Initialize()
	}
}

func (e *engine) PushPlugin(p plugin.Plugin) {
	if e.isDisabled() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sessions[e.current]
	s.plugins.Push(p)
	if s.initialized && p != nil {
		p.Initialize()
	}
}

func (e *engine) PopPlugin() plugin.Plugin {
	if e.isDisabled() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sessions[e.current]
	// The scene registry at the bottom of the stack is not poppable.
	if s.plugins.Len() <= 1 {
		return nil
	}
	return s.plugins.Pop()
}

func (e *engine) AddPlugin(p plugin.Plugin) {
	if e.isDisabled() || p == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sessions[e.current]
	top := s.plugins.Pop()
	multi, ok := top.(*plugin.Multi)
	if !ok {
		multi = plugin.NewMulti()
		if top != nil {
			multi.Add(top)
		}
	}
	multi.Add(p)
	s.plugins.Push(multi)
	if s.initialized {
		p.Initialize()
	}
}

func (e *engine) Show() {
	if e.isDisabled() {
		return
	}
	e.start()
	e.mu.Lock()
	e.sessions[e.current].mode = ModeShown
	e.cond.Broadcast()
	e.mu.Unlock()
}

func (e *engine) Hide() {
	if e.isDisabled() {
		return
	}
	e.mu.Lock()
	e.sessions[e.current].mode = ModeHidden
	e.cond.Broadcast()
	e.mu.Unlock()
}

func (e *engine) Shown() bool {
	if e.isDisabled() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[e.current].mode != ModeHidden
}

func (e *engine) Dialog() {
	if e.isDisabled() {
		return
	}
	e.start()
	e.mu.Lock()
	s := e.sessions[e.current]
	s.mode = ModeDialog
	e.cond.Broadcast()
	// The render goroutine flips the mode back when the window closes; Kill
	// broadcasts too, so a killed engine releases dialog callers.
	for s.mode == ModeDialog && e.running {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

func (e *engine) Spin(duration time.Duration) {
	if e.isDisabled() {
		return
	}
	e.Show()
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) && e.Shown() {
		time.Sleep(50 * time.Millisecond)
	}
	e.Hide()
}

func (e *engine) Run() {
	if e.isDisabled() {
		return
	}
	e.Show()
	for e.Shown() {
		time.Sleep(50 * time.Millisecond)
	}
	e.Kill()
}

func (e *engine) Kill() {
	e.signalQuit()
	e.wg.Wait()
}

func (e *engine) Lock() {
	e.mu.Lock()
}

func (e *engine) Unlock() {
	e.mu.Unlock()
}

// isDisabled reports whether the engine is in disabled no-op mode, logging
// the reason once per call site invocation.
func (e *engine) isDisabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disabled {
		log.Printf("visualization disabled: %v", e.disabledErr)
		return true
	}
	return false
}

// disable puts the engine into disabled mode. Caller must not hold the lock.
func (e *engine) disable(err error) {
	e.mu.Lock()
	e.disabled = true
	e.disabledErr = err
	for _, s := range e.sessions {
		s.mode = ModeHidden
	}
	e.cond.Broadcast()
	e.mu.Unlock()
	log.Printf("visualization disabled: %v", err)
}

// start launches the render goroutine once.
func (e *engine) start() {
	e.startOnce.Do(func() {
		e.mu.Lock()
		e.running = true
		e.mu.Unlock()
		e.wg.Add(1)
		go e.handleRender()
	})
}

// signalQuit closes the quit channel to signal the render goroutine to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.cond.Broadcast()
		e.mu.Unlock()
		close(e.quitChannel)
	})
}
