package analysis

import "errors"

// ErrNoChildren is returned when a blend-tree node is constructed with an
// empty child collection.
var ErrNoChildren = errors.New("analysis: blend tree has no children")

// BlendKind identifies a blend tree's blending scheme.
type BlendKind int

const (
	// BlendKindSimple1D blends children along a single parameter axis.
	BlendKindSimple1D BlendKind = iota

	// BlendKindSimpleDirectional2D blends children by direction on a plane.
	BlendKindSimpleDirectional2D

	// BlendKindFreeformDirectional2D blends children by direction and
	// magnitude on a plane.
	BlendKindFreeformDirectional2D

	// BlendKindFreeformCartesian2D blends children by cartesian position on
	// a plane.
	BlendKindFreeformCartesian2D

	// BlendKindDirect weights each child independently; weights do not sum
	// to one.
	BlendKindDirect
)

// WeightSumIsOne reports whether this kind guarantees child weights summing
// to one. A weighted average of N equal constants under unit-sum weights is
// that same constant regardless of the weight distribution, which is what
// makes side-by-side combination sound for these kinds.
//
// Returns:
//   - bool: true for every kind except BlendKindDirect
func (k BlendKind) WeightSumIsOne() bool {
	return k != BlendKindDirect
}

// String returns the kind's name for diagnostics.
//
// Returns:
//   - string: the kind name
func (k BlendKind) String() string {
	switch k {
	case BlendKindSimple1D:
		return "Simple1D"
	case BlendKindSimpleDirectional2D:
		return "SimpleDirectional2D"
	case BlendKindFreeformDirectional2D:
		return "FreeformDirectional2D"
	case BlendKindFreeformCartesian2D:
		return "FreeformCartesian2D"
	case BlendKindDirect:
		return "Direct"
	default:
		return "Unknown"
	}
}

// blendTreeNode is the implementation of the BlendTreeNode interface.
type blendTreeNode struct {
	kind     BlendKind
	children []ImmutableNode[float32]
	partial  bool
	refs     []ObjectRef

	computed bool
	cached   ValueInfo[float32]
}

// BlendTreeNode combines child nodes under blend-tree semantics. For
// unit-weight-sum kinds the value is the side-by-side combination of the
// children; for BlendKindDirect the value is always variable because child
// weights are independently runtime-variable.
type BlendTreeNode interface {
	ImmutableNode[float32]

	// Kind returns the blend scheme.
	//
	// Returns:
	//   - BlendKind: the blend kind
	Kind() BlendKind

	// Partial reports whether not all possible children were enumerable
	// (e.g. an unresolved sub-asset). A partial tree is never applied
	// unconditionally.
	//
	// Returns:
	//   - bool: true if the child set is incomplete
	Partial() bool

	// Children returns the child nodes. Callers must not mutate the
	// returned slice.
	//
	// Returns:
	//   - []ImmutableNode[float32]: the ordered children
	Children() []ImmutableNode[float32]
}

var _ BlendTreeNode = &blendTreeNode{}

// NewBlendTreeNode creates a BlendTreeNode over a non-empty, already-analyzed
// child collection.
//
// Parameters:
//   - kind: the blend scheme
//   - children: the ordered child nodes (at least one)
//   - options: functional options to further configure the node
//
// Returns:
//   - BlendTreeNode: the new node
//   - error: ErrNoChildren if the child collection is empty
func NewBlendTreeNode(kind BlendKind, children []ImmutableNode[float32], options ...BlendTreeNodeBuilderOption) (BlendTreeNode, error) {
	if len(children) == 0 {
		return nil, ErrNoChildren
	}
	b := &blendTreeNode{kind: kind, children: children}
	for _, option := range options {
		option(b)
	}
	return b, nil
}

func (b *blendTreeNode) AppliedAlways() bool {
	if !b.kind.WeightSumIsOne() || b.partial {
		return false
	}
	for _, child := range b.children {
		if !child.AppliedAlways() {
			return false
		}
	}
	return true
}

func (b *blendTreeNode) Value() ValueInfo[float32] {
	if !b.computed {
		if b.kind.WeightSumIsOne() {
			b.cached = CombineSideBySide(b.children)
		} else {
			b.cached = VariableInfo[float32]()
		}
		b.computed = true
	}
	return b.cached
}

func (b *blendTreeNode) ContextReferences() []ObjectRef {
	refs := append([]ObjectRef(nil), b.refs...)
	for _, child := range b.children {
		refs = append(refs, child.ContextReferences()...)
	}
	return refs
}

func (b *blendTreeNode) Kind() BlendKind {
	return b.kind
}

func (b *blendTreeNode) Partial() bool {
	return b.partial
}

func (b *blendTreeNode) Children() []ImmutableNode[float32] {
	return b.children
}

func (b *blendTreeNode) immutableNode() {}
