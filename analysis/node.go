// Package analysis proves, at build time, whether the final value of an
// animated numeric property is statically constant across every reachable
// runtime state, and if so what that constant is.
//
// The package models "who can write this property and under what conditions"
// as a small node tree: leaf curve analysis (CurveNode), blend-tree
// combination (BlendTreeNode), per-component wrappers (OpaqueNode,
// AnimatedNode), and a per-property aggregate (RootNode). Two pure
// combination functions decide constancy for simultaneous writers
// (CombineSideBySide) and for ordered, overriding layer stacks
// (ForOverriding).
//
// Analysis is single-threaded and synchronous: memoized node results are
// computed at most once and are not safe for concurrent first access. A
// caller may evaluate disjoint node trees from different goroutines, but
// never the same node.
package analysis

// ObjectRef identifies the asset or component a node was derived from. It is
// provenance for diagnostics only; the constancy algorithms never consult it.
type ObjectRef struct {
	// Kind is the source category, e.g. "clip", "controller", "component".
	Kind string `json:"kind"`

	// Name is the human-readable source name.
	Name string `json:"name"`

	// Host is the owning scene object's ID, or 0 for shared assets.
	Host uint64 `json:"host,omitempty"`
}

// Node is the capability surface shared by every node in the
// property-modification analysis tree.
type Node[T comparable] interface {
	// AppliedAlways reports whether this source's contribution is
	// unconditionally active for every runtime state (no weight gating, no
	// partial enable).
	//
	// Returns:
	//   - bool: true if the contribution is unconditional
	AppliedAlways() bool

	// Value returns the statically-known contribution of this node alone.
	//
	// Returns:
	//   - ValueInfo[T]: the constancy verdict for this node
	Value() ValueInfo[T]

	// ContextReferences returns the provenance of this node, used only for
	// diagnostics. Callers must not mutate the returned slice.
	//
	// Returns:
	//   - []ObjectRef: the assets/components this node was derived from
	ContextReferences() []ObjectRef
}

// ImmutableNode marks nodes with no external lifetime dependency: leaf curve
// analyses and blend-tree combinations. An ImmutableNode's result never
// changes once computed.
type ImmutableNode[T comparable] interface {
	Node[T]

	immutableNode()
}

// ComponentNode marks nodes tied to a host object's lifetime. The
// association is a weak observation: the node records which host it belongs
// to but does not keep it alive. The owning RootNode prunes the entry when
// the host is destroyed.
type ComponentNode[T comparable] interface {
	Node[T]

	// HostID returns the identity of the host object this node belongs to.
	//
	// Returns:
	//   - uint64: the host object ID
	HostID() uint64
}
