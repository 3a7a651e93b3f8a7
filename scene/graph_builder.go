package scene

import "github.com/oxbow3d/propconst/lifetime"

// GraphBuilderOption is a functional option for configuring a Graph during construction.
type GraphBuilderOption func(*graph)

// WithLifetimes sets the lifetime registry the Graph notifies when objects
// are removed. Defaults to lifetime.Default().
//
// Parameters:
//   - registry: the lifetime registry
//
// Returns:
//   - GraphBuilderOption: functional option to set the registry
func WithLifetimes(registry lifetime.Registry) GraphBuilderOption {
	return func(g *graph) {
		g.lifetimes = registry
	}
}
