package analysis

// BlendTreeNodeBuilderOption is a functional option for configuring a
// BlendTreeNode during construction.
type BlendTreeNodeBuilderOption func(*blendTreeNode)

// WithPartial marks the tree as partial: not all possible children could be
// enumerated (e.g. a missing sub-asset reference). A partial tree's
// activation cannot be assumed unconditional, so AppliedAlways is forced
// false.
//
// Parameters:
//   - partial: true if the child set is incomplete
//
// Returns:
//   - BlendTreeNodeBuilderOption: functional option to set the partial flag
func WithPartial(partial bool) BlendTreeNodeBuilderOption {
	return func(b *blendTreeNode) {
		b.partial = partial
	}
}

// WithBlendTreeContext attaches provenance to the node for diagnostics.
//
// Parameters:
//   - refs: the assets/components this tree was derived from
//
// Returns:
//   - BlendTreeNodeBuilderOption: functional option to set the context references
func WithBlendTreeContext(refs ...ObjectRef) BlendTreeNodeBuilderOption {
	return func(b *blendTreeNode) {
		b.refs = refs
	}
}
