package pass

import "github.com/oxbow3d/propconst/lifetime"

// AnalyzerBuilderOption is a functional option for configuring an Analyzer during construction.
type AnalyzerBuilderOption func(*analyzer)

// WithWorkers sets the number of pool workers evaluating roots in parallel.
// Values below 1 are clamped to 1. Defaults to NumCPU-1.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - AnalyzerBuilderOption: functional option to set the worker count
func WithWorkers(n int) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.workers = max(n, 1)
	}
}

// WithLifetimeRegistry sets the lifetime registry the analyzer's roots
// observe hosts through. It must be the registry the analyzed graph notifies.
// Defaults to lifetime.Default().
//
// Parameters:
//   - registry: the lifetime registry
//
// Returns:
//   - AnalyzerBuilderOption: functional option to set the registry
func WithLifetimeRegistry(registry lifetime.Registry) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.lifetimes = registry
	}
}
