package analysis

// opaqueNode is the implementation of the OpaqueNode interface.
type opaqueNode[T comparable] struct {
	hostID uint64
	refs   []ObjectRef
}

// OpaqueNode represents an unanalyzable writer: a component known to write
// the property, whose value cannot be proven. Its value is always variable.
// It is assumed to always write (AppliedAlways true); a later constant
// override can still win in an override stack.
type OpaqueNode[T comparable] interface {
	ComponentNode[T]
}

var _ OpaqueNode[float32] = &opaqueNode[float32]{}

// NewOpaqueNode creates an OpaqueNode for a host component.
//
// Parameters:
//   - hostID: the identity of the host object
//   - options: functional options to further configure the node
//
// Returns:
//   - OpaqueNode[T]: the new node
func NewOpaqueNode[T comparable](hostID uint64, options ...OpaqueNodeBuilderOption[T]) OpaqueNode[T] {
	o := &opaqueNode[T]{hostID: hostID}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *opaqueNode[T]) AppliedAlways() bool {
	return true
}

func (o *opaqueNode[T]) Value() ValueInfo[T] {
	return VariableInfo[T]()
}

func (o *opaqueNode[T]) ContextReferences() []ObjectRef {
	return o.refs
}

func (o *opaqueNode[T]) HostID() uint64 {
	return o.hostID
}

// animatedNode is the implementation of the AnimatedNode interface.
// Exactly one of source/layers is set.
type animatedNode[T comparable] struct {
	hostID uint64
	refs   []ObjectRef

	source ImmutableNode[T]
	layers []Layer[T]

	computed bool
	cached   ValueInfo[T]
}

// AnimatedNode wraps an analyzed animation source for a host component and
// memoizes its constancy result. The source is either a single immutable
// node tree (a clip curve or blend tree) or an explicit layer stack
// evaluated with override semantics.
type AnimatedNode[T comparable] interface {
	ComponentNode[T]
}

var _ AnimatedNode[float32] = &animatedNode[float32]{}

// NewAnimatedNode creates an AnimatedNode wrapping a single immutable node.
// The node's provenance defaults to the wrapped node's context references.
//
// Parameters:
//   - hostID: the identity of the host object
//   - source: the analyzed immutable node tree (must not be nil)
//   - options: functional options to further configure the node
//
// Returns:
//   - AnimatedNode[T]: the new node
func NewAnimatedNode[T comparable](hostID uint64, source ImmutableNode[T], options ...AnimatedNodeBuilderOption[T]) AnimatedNode[T] {
	if source == nil {
		panic("analysis: NewAnimatedNode requires a non-nil source")
	}
	a := &animatedNode[T]{hostID: hostID, source: source}
	for _, option := range options {
		option(a)
	}
	return a
}

// NewAnimatedLayerNode creates an AnimatedNode over an explicit layer stack,
// lowest priority first. The memoized value is the override combination of
// the stack and AppliedAlways holds iff some layer unconditionally
// determines the property.
//
// Parameters:
//   - hostID: the identity of the host object
//   - layers: the layer stack, lowest priority first (must be non-empty)
//   - options: functional options to further configure the node
//
// Returns:
//   - AnimatedNode[T]: the new node
func NewAnimatedLayerNode[T comparable](hostID uint64, layers []Layer[T], options ...AnimatedNodeBuilderOption[T]) AnimatedNode[T] {
	if len(layers) == 0 {
		panic("analysis: NewAnimatedLayerNode requires a non-empty layer stack")
	}
	a := &animatedNode[T]{hostID: hostID, layers: layers}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animatedNode[T]) AppliedAlways() bool {
	if a.source != nil {
		return a.source.AppliedAlways()
	}
	return AlwaysAppliedForOverriding(a.layers)
}

func (a *animatedNode[T]) Value() ValueInfo[T] {
	if !a.computed {
		if a.source != nil {
			a.cached = a.source.Value()
		} else {
			a.cached = ForOverriding(a.layers)
		}
		a.computed = true
	}
	return a.cached
}

func (a *animatedNode[T]) ContextReferences() []ObjectRef {
	if len(a.refs) > 0 {
		return a.refs
	}
	if a.source != nil {
		return a.source.ContextReferences()
	}
	var refs []ObjectRef
	for _, l := range a.layers {
		refs = append(refs, l.Node().ContextReferences()...)
	}
	return refs
}

func (a *animatedNode[T]) HostID() uint64 {
	return a.hostID
}
