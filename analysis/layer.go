package analysis

// WeightState classifies what is statically known about a layer's blend
// weight across all reachable runtime states.
type WeightState int

const (
	// WeightStateAlwaysOne means the weight is exactly 1 in every state.
	WeightStateAlwaysOne WeightState = iota

	// WeightStateEitherZeroOrOne means the weight is always exactly 0 or
	// exactly 1, but which of the two is not statically known.
	WeightStateEitherZeroOrOne

	// WeightStateVariable means the weight can take arbitrary values;
	// nothing about the layer's contribution can be proven.
	WeightStateVariable
)

// String returns the state's name for diagnostics.
//
// Returns:
//   - string: the state name
func (w WeightState) String() string {
	switch w {
	case WeightStateAlwaysOne:
		return "AlwaysOne"
	case WeightStateEitherZeroOrOne:
		return "EitherZeroOrOne"
	case WeightStateVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// BlendMode is how a layer combines with the layers below it.
type BlendMode int

const (
	// BlendModeOverride replaces the accumulated value when the layer is
	// active.
	BlendModeOverride BlendMode = iota

	// BlendModeAdditive adds the layer's contribution to the accumulated
	// value.
	BlendModeAdditive
)

// String returns the mode's name for diagnostics.
//
// Returns:
//   - string: the mode name
func (m BlendMode) String() string {
	switch m {
	case BlendModeOverride:
		return "Override"
	case BlendModeAdditive:
		return "Additive"
	default:
		return "Unknown"
	}
}

// Layer is the ordering abstraction consumed by override combination. It is
// a view over a layer stack, not a stored entity: each layer carries its
// weight classification, its blend mode, and the node describing what it
// writes.
type Layer[T comparable] interface {
	// Weight returns the layer's weight classification.
	//
	// Returns:
	//   - WeightState: the weight state
	Weight() WeightState

	// Blend returns the layer's blend mode.
	//
	// Returns:
	//   - BlendMode: the blend mode
	Blend() BlendMode

	// Node returns the node describing the layer's contribution.
	//
	// Returns:
	//   - Node[T]: the layer's analysis node
	Node() Node[T]
}

// layer is the implementation of the Layer interface.
type layer[T comparable] struct {
	weight WeightState
	blend  BlendMode
	node   Node[T]
}

var _ Layer[float32] = layer[float32]{}

// NewLayer creates a Layer view for override combination.
//
// Parameters:
//   - weight: the layer's weight classification
//   - blend: the layer's blend mode
//   - node: the node describing the layer's contribution
//
// Returns:
//   - Layer[T]: the layer view
func NewLayer[T comparable](weight WeightState, blend BlendMode, node Node[T]) Layer[T] {
	return layer[T]{weight: weight, blend: blend, node: node}
}

func (l layer[T]) Weight() WeightState {
	return l.weight
}

func (l layer[T]) Blend() BlendMode {
	return l.blend
}

func (l layer[T]) Node() Node[T] {
	return l.node
}
