package scene

import (
	"sync"
)

// RegistryBuilderOption is a function that configures a registry during
// creation.
type RegistryBuilderOption func(*registry)

// WithMutex shares an external mutex with the registry instead of an internal
// one. The engine passes its global lock here so registry mutations serialize
// against the render pass and the engine's own state transitions. Callers
// holding the lock directly must not invoke registry operations until they
// release it.
//
// Parameters:
//   - mu: the mutex to serialize on
//
// Returns:
//   - RegistryBuilderOption: the option function
func WithMutex(mu *sync.Mutex) RegistryBuilderOption {
	return func(r *registry) {
		if mu != nil {
			r.mu = mu
		}
	}
}

// WithComputeWorkers overrides the worker count of the parallel
// animation-update phase. Defaults to NumCPU-1, minimum 1.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - RegistryBuilderOption: the option function
func WithComputeWorkers(n int) RegistryBuilderOption {
	return func(r *registry) {
		if n >= 1 {
			r.computeWorkers = n
		}
	}
}
