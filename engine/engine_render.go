package engine

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/vista-go/engine/render"
	"github.com/Carmen-Shannon/vista-go/engine/window"
)

// cameraProvider is implemented by backends with a navigable camera.
type cameraProvider interface {
	Camera() *render.Camera
}

// handleRender runs the render loop in its own goroutine, pinned to one OS
// thread: platform windows and the GPU surface must only be touched from the
// thread that created them. Recovers from panics to avoid crashing the host
// process and shuts the engine down on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	runtime.LockOSThread()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			e.teardown()
			return
		default:
		}

		now := time.Now()
		dt := now.Sub(lastTick).Seconds()
		lastTick = now

		e.mu.Lock()
		sessions := make([]*session, len(e.sessions))
		copy(sessions, e.sessions)
		disabled := e.disabled
		e.mu.Unlock()

		if !disabled {
			for _, s := range sessions {
				e.stepSession(s, dt)
			}
		}

		if e.profilingEnabled {
			e.profiler.Tick()
		}

		if remaining := e.frameInterval - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// stepSession drives one session for one frame: lazy window and backend
// creation, visibility per mode, event polling, clock tick, and the draw
// pass. Session state and the plugin stack are snapshotted under the engine
// lock, then traversed without it: script goroutines may push, pop, or
// replace plugins mid-frame, and the scene registry takes the same lock
// internally when a plugin call reaches it.
func (e *engine) stepSession(s *session, dt float64) {
	e.mu.Lock()
	mode := s.mode
	win := s.win
	hidden := s.hiddenApplied
	plugins := s.plugins.Snapshot()
	e.mu.Unlock()

	if mode == ModeHidden {
		if win != nil && !hidden {
			win.Hide()
			e.mu.Lock()
			s.hiddenApplied = true
			e.mu.Unlock()
		}
		return
	}

	if win == nil {
		if !e.initSession(s) {
			return
		}
		e.mu.Lock()
		win = s.win
		hidden = s.hiddenApplied
		plugins = s.plugins.Snapshot()
		e.mu.Unlock()
	}
	if hidden {
		win.Show()
		e.mu.Lock()
		s.hiddenApplied = false
		e.mu.Unlock()
	}

	if !win.Poll() {
		e.onWindowClose(s)
		return
	}

	plugins.Idle(dt)

	if err := s.backend.BeginFrame(); err != nil {
		log.Printf("session %d: begin frame: %v", s.id, err)
		return
	}
	plugins.Display(s.ctx)
	s.backend.EndFrame()
	s.backend.Present()
}

// initSession creates the session's window, backend, and context. A failure
// disables the whole engine: without a windowing or GPU stack no session can
// ever render.
func (e *engine) initSession(s *session) bool {
	win, err := e.windowFactory(s.title, 1280, 720)
	if err != nil {
		e.disable(err)
		return false
	}
	backend, err := e.backendFactory(win)
	if err != nil {
		win.Close()
		e.disable(err)
		return false
	}

	e.mu.Lock()
	s.win = win
	s.backend = backend
	s.ctx = render.NewContext(backend)
	e.mu.Unlock()

	win.SetCloseCallback(func() {
		e.onWindowClose(s)
	})
	win.SetResizeCallback(func(w, h int) {
		backend.Resize(w, h)
	})
	win.SetKeyCallback(func(key rune, x, y int) {
		e.mu.Lock()
		plugins := s.plugins.Snapshot()
		e.mu.Unlock()
		plugins.Keyboard(key, x, y)
	})
	e.wireCamera(s)

	e.mu.Lock()
	plugins := s.plugins.Snapshot()
	s.initialized = true
	e.mu.Unlock()
	plugins.Initialize()
	win.Show()
	return true
}

// wireCamera connects mouse input to the backend's orbit camera: left drag
// rotates, right drag pans, scroll zooms.
func (e *engine) wireCamera(s *session) {
	provider, ok := s.backend.(cameraProvider)
	if !ok {
		return
	}
	cam := provider.Camera()

	s.win.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y int) {
		switch button {
		case window.MouseLeft:
			s.leftDown = pressed
		case window.MouseRight:
			s.rightDown = pressed
		}
		s.lastX, s.lastY = x, y
	})
	s.win.SetMouseMoveCallback(func(x, y int) {
		dx := float32(x - s.lastX)
		dy := float32(y - s.lastY)
		s.lastX, s.lastY = x, y
		if s.leftDown {
			cam.Rotate(-dx*0.01, dy*0.01)
		} else if s.rightDown {
			cam.Pan(-dx*0.005, dy*0.005)
		}
	})
	s.win.SetScrollCallback(func(delta float32) {
		cam.Zoom(delta)
	})
}

// onWindowClose handles a user close request: the session returns to hidden
// and any Dialog callers are released.
func (e *engine) onWindowClose(s *session) {
	e.mu.Lock()
	s.mode = ModeHidden
	win := s.win
	if win != nil {
		s.hiddenApplied = true
	}
	e.cond.Broadcast()
	e.mu.Unlock()
	if win != nil {
		win.Hide()
	}
}

// teardown clears every session and releases platform resources. Runs on the
// render thread as the loop exits.
func (e *engine) teardown() {
	e.mu.Lock()
	sessions := make([]*session, len(e.sessions))
	copy(sessions, e.sessions)
	e.mu.Unlock()

	usedWindows := false
	for _, s := range sessions {
		s.registry.Clear()

		e.mu.Lock()
		backend, win := s.backend, s.win
		s.backend, s.win = nil, nil
		e.mu.Unlock()

		if backend != nil {
			backend.Destroy()
		}
		if win != nil {
			if err := win.Close(); err != nil {
				log.Printf("session %d: close window: %v", s.id, err)
			}
			usedWindows = true
		}
	}
	if usedWindows {
		window.Terminate()
	}
}
