package analysis

// OpaqueNodeBuilderOption is a functional option for configuring an
// OpaqueNode during construction.
type OpaqueNodeBuilderOption[T comparable] func(*opaqueNode[T])

// WithOpaqueContext attaches provenance to the node for diagnostics.
//
// Parameters:
//   - refs: the components this node represents
//
// Returns:
//   - OpaqueNodeBuilderOption[T]: functional option to set the context references
func WithOpaqueContext[T comparable](refs ...ObjectRef) OpaqueNodeBuilderOption[T] {
	return func(o *opaqueNode[T]) {
		o.refs = refs
	}
}

// AnimatedNodeBuilderOption is a functional option for configuring an
// AnimatedNode during construction.
type AnimatedNodeBuilderOption[T comparable] func(*animatedNode[T])

// WithAnimatedContext attaches provenance to the node, overriding the
// default of inheriting the wrapped source's references.
//
// Parameters:
//   - refs: the assets/components this node was derived from
//
// Returns:
//   - AnimatedNodeBuilderOption[T]: functional option to set the context references
func WithAnimatedContext[T comparable](refs ...ObjectRef) AnimatedNodeBuilderOption[T] {
	return func(a *animatedNode[T]) {
		a.refs = refs
	}
}
