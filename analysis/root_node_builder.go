package analysis

import "github.com/oxbow3d/propconst/lifetime"

// RootNodeBuilderOption is a functional option for configuring a RootNode
// during construction.
type RootNodeBuilderOption[T comparable] func(*rootNode[T])

// WithRootRegistry sets the destruction notification registry the root
// observes hosts through. Defaults to the process-wide lifetime.Default
// registry.
//
// Parameters:
//   - registry: the registry to observe through
//
// Returns:
//   - RootNodeBuilderOption[T]: functional option to set the registry
func WithRootRegistry[T comparable](registry lifetime.Registry) RootNodeBuilderOption[T] {
	return func(r *rootNode[T]) {
		r.registry = registry
	}
}
