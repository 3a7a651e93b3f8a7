package analysis

import (
	"sync"

	"github.com/oxbow3d/propconst/lifetime"
)

// rootEntry is one contributing component recorded by a root, together with
// its live destruction subscription.
type rootEntry[T comparable] struct {
	node          ComponentNode[T]
	alwaysApplied bool
	sub           lifetime.Subscription
}

// rootNode is the implementation of the RootNode interface.
type rootNode[T comparable] struct {
	mu       sync.RWMutex
	registry lifetime.Registry
	entries  []rootEntry[T]
}

// RootNode aggregates every component that can write one (object, property)
// pair. Entries are kept in discovery order, which carries no runtime
// priority; the root's value is the side-by-side combination of its entries.
// Each entry's host object is weakly observed: when the host is destroyed
// the entry is pruned reactively, so Value and AppliedAlways are computed on
// demand and never cached.
type RootNode[T comparable] interface {
	Node[T]

	// Add appends a contributing component and begins weak observation of
	// its host.
	//
	// Parameters:
	//   - node: the component's analysis node
	//   - alwaysApplied: true if the component's write is unconditional
	Add(node ComponentNode[T], alwaysApplied bool)

	// AddRoot merges another root's entries into this one, used when two
	// properties are unified after a merge optimization. The other root is
	// invalidated; its entries are re-observed by this root.
	//
	// Parameters:
	//   - other: the root to merge in
	AddRoot(other RootNode[T])

	// Invalidate ends all weak observation and clears the entries. Used
	// when the owning property itself is being discarded.
	Invalidate()

	// Normalize collapses an empty root to absence. Callers must treat a
	// nil result as "no analyzable writer": the property is unconstrained
	// and holds its default.
	//
	// Returns:
	//   - RootNode[T]: this root, or nil when it has no entries
	Normalize() RootNode[T]

	// Len returns the number of live entries.
	//
	// Returns:
	//   - int: the entry count
	Len() int
}

var _ RootNode[float32] = &rootNode[float32]{}

// NewRootNode creates an empty root for one (object, property) pair. Roots
// are created lazily, the first time a writer is discovered for a property.
//
// Parameters:
//   - options: functional options to further configure the root
//
// Returns:
//   - RootNode[T]: the new root
func NewRootNode[T comparable](options ...RootNodeBuilderOption[T]) RootNode[T] {
	r := &rootNode[T]{}
	for _, option := range options {
		option(r)
	}
	if r.registry == nil {
		r.registry = lifetime.Default()
	}
	return r
}

func (r *rootNode[T]) Add(node ComponentNode[T], alwaysApplied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.registry.Track(node.HostID(), func(uint64) {
		r.removeNode(node)
	})
	r.entries = append(r.entries, rootEntry[T]{node: node, alwaysApplied: alwaysApplied, sub: sub})
}

func (r *rootNode[T]) AddRoot(other RootNode[T]) {
	if other == nil {
		return
	}
	impl, ok := other.(*rootNode[T])
	if !ok {
		panic("analysis: AddRoot requires a root created by NewRootNode")
	}

	impl.mu.RLock()
	moved := make([]rootEntry[T], len(impl.entries))
	copy(moved, impl.entries)
	impl.mu.RUnlock()

	// Drop the other root's observations before re-observing here so each
	// host is unregistered exactly once per subscription.
	impl.Invalidate()

	for _, entry := range moved {
		r.Add(entry.node, entry.alwaysApplied)
	}
}

func (r *rootNode[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		r.registry.Untrack(entry.sub)
	}
	r.entries = nil
}

func (r *rootNode[T]) Normalize() RootNode[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}
	return r
}

func (r *rootNode[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *rootNode[T]) AppliedAlways() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if !entry.alwaysApplied {
			return false
		}
	}
	return true
}

func (r *rootNode[T]) Value() ValueInfo[T] {
	r.mu.RLock()
	nodes := make([]ComponentNode[T], len(r.entries))
	for i, entry := range r.entries {
		nodes[i] = entry.node
	}
	r.mu.RUnlock()

	return CombineSideBySide(nodes)
}

func (r *rootNode[T]) ContextReferences() []ObjectRef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var refs []ObjectRef
	for _, entry := range r.entries {
		refs = append(refs, entry.node.ContextReferences()...)
	}
	return refs
}

// removeNode prunes the entry holding node after its host was destroyed. The
// destruction notification already ended the subscription, so no Untrack
// happens here.
func (r *rootNode[T]) removeNode(node ComponentNode[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.node == node {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}
