package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/vista-go/common"
	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow is a headless window.Window for engine tests. Safe for concurrent
// use: the render goroutine polls it while the test mutates it.
type fakeWindow struct {
	mu      sync.Mutex
	title   string
	visible bool
	closed  bool

	closeRequested bool
	closeCb        func()
}

var _ window.Window = &fakeWindow{}

func (f *fakeWindow) SetResizeCallback(func(width, height int))                          {}
func (f *fakeWindow) SetScrollCallback(func(delta float32))                              {}
func (f *fakeWindow) SetKeyCallback(func(key rune, x, y int))                            {}
func (f *fakeWindow) SetMouseButtonCallback(func(window.MouseButton, bool, int, int))    {}
func (f *fakeWindow) SetMouseMoveCallback(func(x, y int))                                {}

func (f *fakeWindow) SetCloseCallback(callback func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCb = callback
}

func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{}
}

func (f *fakeWindow) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = true
}

func (f *fakeWindow) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = false
}

func (f *fakeWindow) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *fakeWindow) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *fakeWindow) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *fakeWindow) Poll() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && !f.closeRequested
}

// RequestClose simulates the user clicking the window's close button.
func (f *fakeWindow) RequestClose() {
	f.mu.Lock()
	f.closeRequested = true
	cb := f.closeCb
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWindow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeWindow) Width() int  { return 640 }
func (f *fakeWindow) Height() int { return 480 }

// countingBackend is a synchronized headless render.Backend counting frames
// and primitives across the render goroutine and the test goroutine.
type countingBackend struct {
	mu        sync.Mutex
	frames    int
	points    int
	lines     int
	destroyed bool
}

var _ render.Backend = &countingBackend{}

func (b *countingBackend) DrawPoint(p common.Vec3, size float32, c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points++
}

func (b *countingBackend) DrawLine(p1, p2 common.Vec3, width float32, c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines++
}

func (b *countingBackend) DrawText(p common.Vec3, text string, height float32, c common.Color) {}

func (b *countingBackend) BeginFrame() error { return nil }

func (b *countingBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
}

func (b *countingBackend) Present() {}

func (b *countingBackend) Resize(width, height int) {}

func (b *countingBackend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
}

func (b *countingBackend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

func (b *countingBackend) Points() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.points
}

func (b *countingBackend) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// headlessEngine builds an engine whose sessions get fake windows and counting
// backends.
func headlessEngine(t *testing.T) (Engine, *fakeWindow, *countingBackend) {
	t.Helper()
	win := &fakeWindow{}
	backend := &countingBackend{}
	eng := NewEngine(
		WithFrameRate(240),
		WithWindowFactory(func(title string, width, height int) (window.Window, error) {
			win.SetTitle(title)
			return win, nil
		}),
		WithBackendFactory(func(w window.Window) (render.Backend, error) {
			return backend, nil
		}),
	)
	return eng, win, backend
}

func TestShowStartsRenderingAndKillStops(t *testing.T) {
	eng, win, backend := headlessEngine(t)

	assert.False(t, eng.Shown())
	eng.Scene().Add("pt", common.Vec3{1, 0, 0}, false)

	eng.Show()
	assert.True(t, eng.Shown())
	require.Eventually(t, func() bool {
		return backend.Frames() > 2 && backend.Points() > 0
	}, 2*time.Second, time.Millisecond, "frames and draws must advance once shown")
	assert.True(t, win.Visible())

	eng.Kill()
	assert.True(t, backend.Destroyed())
	assert.True(t, win.Closed())
	assert.Empty(t, eng.Scene().Names(), "kill clears the scene")
}

func TestHideStopsDrawingButKeepsScene(t *testing.T) {
	eng, win, backend := headlessEngine(t)
	defer eng.Kill()

	eng.Scene().Add("pt", common.Vec3{}, false)
	eng.Show()
	require.Eventually(t, func() bool { return backend.Frames() > 0 }, 2*time.Second, time.Millisecond)

	eng.Hide()
	assert.False(t, eng.Shown())
	require.Eventually(t, func() bool { return !win.Visible() }, 2*time.Second, time.Millisecond)

	frozen := backend.Frames()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, backend.Frames(), frozen+1, "hidden sessions do not render")
	assert.Contains(t, eng.Scene().Names(), "pt")

	// Showing again resumes on the same window and backend.
	eng.Show()
	require.Eventually(t, func() bool { return backend.Frames() > frozen+1 }, 2*time.Second, time.Millisecond)
	assert.True(t, win.Visible())
}

func TestDialogBlocksUntilWindowCloses(t *testing.T) {
	eng, win, _ := headlessEngine(t)
	defer eng.Kill()

	done := make(chan struct{})
	go func() {
		eng.Dialog()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("dialog returned before the window closed")
	case <-time.After(50 * time.Millisecond):
	}

	require.Eventually(t, func() bool { return win.Visible() }, 2*time.Second, time.Millisecond)
	win.RequestClose()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dialog did not return after the window closed")
	}
	assert.False(t, eng.Shown())
}

func TestKillReleasesDialogCallers(t *testing.T) {
	eng, _, _ := headlessEngine(t)

	done := make(chan struct{})
	go func() {
		eng.Dialog()
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)

	eng.Kill()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("kill did not release the dialog caller")
	}
}

func TestSpinShowsThenHides(t *testing.T) {
	eng, _, backend := headlessEngine(t)
	defer eng.Kill()

	eng.Spin(100 * time.Millisecond)
	assert.False(t, eng.Shown())
	assert.Greater(t, backend.Frames(), 0)
}

func TestWindowFactoryFailureDisablesEngine(t *testing.T) {
	eng := NewEngine(
		WithFrameRate(240),
		WithWindowFactory(func(title string, width, height int) (window.Window, error) {
			return nil, fmt.Errorf("no display")
		}),
	)
	defer eng.Kill()

	require.NotNil(t, eng.Scene(), "engine is usable before the failure surfaces")
	eng.Show()
	require.Eventually(t, func() bool { return eng.GetWindow() == -1 }, 2*time.Second, time.Millisecond)

	assert.False(t, eng.Shown())
	assert.Nil(t, eng.Scene())
	assert.Equal(t, -1, eng.CreateWindow("ignored"))
}

func TestWindowSessionSwitching(t *testing.T) {
	eng, _, _ := headlessEngine(t)
	defer eng.Kill()

	assert.Equal(t, 0, eng.GetWindow())
	assert.Equal(t, "vista", eng.GetWindowTitle())
	first := eng.Scene()

	id := eng.CreateWindow("second")
	assert.Equal(t, 1, id)
	assert.Equal(t, id, eng.GetWindow(), "a new window becomes current")
	assert.Equal(t, "second", eng.GetWindowTitle())
	second := eng.Scene()
	assert.NotEqual(t, first, second, "each session owns its registry")

	second.Add("pt", common.Vec3{}, false)
	require.NoError(t, eng.SetWindow(0))
	assert.Empty(t, eng.Scene().Names())

	assert.Error(t, eng.SetWindow(5))
	assert.Error(t, eng.SetWindow(-1))

	eng.SetWindowTitle("renamed")
	assert.Equal(t, "renamed", eng.GetWindowTitle())
}

// recordingPlugin counts lifecycle callbacks for plugin stack tests.
type recordingPlugin struct {
	mu          sync.Mutex
	initialized int
	displays    int
	idles       int
	consumeKeys bool
	keys        []rune
}

func (p *recordingPlugin) Initialize() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized++
	return true
}

func (p *recordingPlugin) Display(ctx *render.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.displays++
}

func (p *recordingPlugin) Idle(dt float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idles++
}

func (p *recordingPlugin) Keyboard(key rune, x, y int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.consumeKeys
}

func (p *recordingPlugin) Displays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displays
}

func TestPluginStackLifecycle(t *testing.T) {
	eng, _, _ := headlessEngine(t)
	defer eng.Kill()

	overlay := &recordingPlugin{}
	eng.PushPlugin(overlay)

	eng.Show()
	require.Eventually(t, func() bool { return overlay.Displays() > 1 }, 2*time.Second, time.Millisecond)

	popped := eng.PopPlugin()
	assert.Same(t, overlay, popped)
	assert.Nil(t, eng.PopPlugin(), "the scene registry at the bottom is not poppable")
}

func TestAddPluginComposesSideBySide(t *testing.T) {
	eng, _, _ := headlessEngine(t)
	defer eng.Kill()

	a := &recordingPlugin{}
	b := &recordingPlugin{}
	eng.SetPlugin(a)
	eng.AddPlugin(b)

	eng.Show()
	require.Eventually(t, func() bool {
		return a.Displays() > 0 && b.Displays() > 0
	}, 2*time.Second, time.Millisecond)
}

func TestPluginMutationWhileRendering(t *testing.T) {
	eng, _, backend := headlessEngine(t)
	defer eng.Kill()

	eng.Scene().Add("pt", common.Vec3{}, false)
	eng.Show()
	require.Eventually(t, func() bool { return backend.Frames() > 0 }, 2*time.Second, time.Millisecond)

	// Hammer the stack from a script goroutine while frames are in flight;
	// each frame traverses a snapshot, so mutations land between frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			overlay := &recordingPlugin{}
			eng.PushPlugin(overlay)
			eng.AddPlugin(&recordingPlugin{})
			assert.NotNil(t, eng.PopPlugin())
			eng.SetPlugin(nil)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("plugin mutations did not complete while rendering")
	}
	frames := backend.Frames()
	require.Eventually(t, func() bool { return backend.Frames() > frames }, 2*time.Second, time.Millisecond,
		"rendering must keep advancing after the churn")
}

func TestSetPluginNilRestoresScene(t *testing.T) {
	eng, _, backend := headlessEngine(t)
	defer eng.Kill()

	eng.Scene().Add("pt", common.Vec3{}, false)
	silent := &recordingPlugin{}
	eng.SetPlugin(silent)

	eng.Show()
	require.Eventually(t, func() bool { return silent.Displays() > 0 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, 0, backend.Points(), "a replacing plugin suppresses the scene draw")

	eng.SetPlugin(nil)
	require.Eventually(t, func() bool { return backend.Points() > 0 }, 2*time.Second, time.Millisecond)
}
