package engine

import (
	"time"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the
// engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame and memory statistics output to the
// log.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithFrameRate sets the render loop rate in frames per second. Values <= 0
// are treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.frameInterval = time.Second / time.Duration(fps)
	}
}

// WithWindowFactory overrides platform window creation. Tests inject a
// headless factory here.
//
// Parameters:
//   - f: the window factory
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowFactory(f WindowFactory) EngineBuilderOption {
	return func(e *engine) {
		if f != nil {
			e.windowFactory = f
		}
	}
}

// WithBackendFactory overrides render backend creation. Tests inject a
// recording backend here.
//
// Parameters:
//   - f: the backend factory
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBackendFactory(f BackendFactory) EngineBuilderOption {
	return func(e *engine) {
		if f != nil {
			e.backendFactory = f
		}
	}
}
