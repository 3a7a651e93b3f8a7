package analysis

import "fmt"

// CombineSideBySide decides constancy for nodes that write the same property
// simultaneously and equally, with no priority between them: sibling children
// of a unit-weight-sum blend node, or multiple components resolved to write
// identically.
//
// The result is constant iff every node's own value is constant and all share
// the same value; it is variable as soon as one node is variable or two
// constants disagree. Evaluation short-circuits on the first failure.
//
// Parameters:
//   - nodes: the simultaneous writers (an empty sequence yields Variable)
//
// Returns:
//   - ValueInfo[T]: the combined constancy verdict
func CombineSideBySide[T comparable, N Node[T]](nodes []N) ValueInfo[T] {
	if len(nodes) == 0 {
		return VariableInfo[T]()
	}
	first := nodes[0].Value()
	if !first.IsConstant() {
		return VariableInfo[T]()
	}
	for _, node := range nodes[1:] {
		if !node.Value().Equal(first) {
			return VariableInfo[T]()
		}
	}
	return first
}

// ForOverriding decides constancy for an ordered layer stack. Layers are
// given lowest priority first, mirroring how an override stack is evaluated
// bottom-up with the highest priority layer applied last.
//
// The result is constant when the value the property holds after applying
// every active layer, for every reachable combination of weight states, is
// always the same. The scan is a single pass:
//
//   - a Variable weight aborts to Variable immediately (an unknown,
//     possibly-partial weight can blend in unpredictable contributions);
//   - an AlwaysOne or EitherZeroOrOne layer must itself be constant, else
//     the result is Variable;
//   - an AlwaysOne Override layer whose node is applied always fully
//     overwrites everything below it, so the scan concludes at its value;
//   - otherwise the layer's constant is a conditional candidate: every
//     candidate must agree, so that whichever combination of {0,1} weights
//     fires at runtime the result is that shared value.
//
// A stack that never contributes a candidate yields Variable: a no-op stack
// leaves the base value, which this function alone cannot prove.
//
// An unrecognized WeightState is a programming error and panics; it is
// unreachable from valid external data and must abort the analysis pass
// rather than silently guess.
//
// Parameters:
//   - layers: the layer stack, lowest priority first
//
// Returns:
//   - ValueInfo[T]: the combined constancy verdict
func ForOverriding[T comparable, L Layer[T]](layers []L) ValueInfo[T] {
	var candidate T
	hasCandidate := false

	for _, l := range layers {
		switch l.Weight() {
		case WeightStateVariable:
			return VariableInfo[T]()

		case WeightStateAlwaysOne, WeightStateEitherZeroOrOne:
			value, ok := l.Node().Value().Constant()
			if !ok {
				// A partially-applied non-constant source makes the result
				// unpredictable.
				return VariableInfo[T]()
			}
			if l.Weight() == WeightStateAlwaysOne && l.Blend() == BlendModeOverride && l.Node().AppliedAlways() {
				// This layer unconditionally and fully overwrites every
				// prior contribution; the scan concludes at its value.
				return ConstantInfo(value)
			}
			if hasCandidate && value != candidate {
				return VariableInfo[T]()
			}
			candidate = value
			hasCandidate = true

		default:
			panic(fmt.Sprintf("analysis: unrecognized weight state %d", l.Weight()))
		}
	}

	if !hasCandidate {
		return VariableInfo[T]()
	}
	return ConstantInfo(candidate)
}

// AlwaysAppliedForOverriding reports whether any layer in the stack is
// guaranteed to fully determine the property: weight always one, override
// blending, and a node that is applied always.
//
// Parameters:
//   - layers: the layer stack, lowest priority first
//
// Returns:
//   - bool: true if some layer unconditionally determines the property
func AlwaysAppliedForOverriding[T comparable, L Layer[T]](layers []L) bool {
	for _, l := range layers {
		if l.Weight() == WeightStateAlwaysOne && l.Blend() == BlendModeOverride && l.Node().AppliedAlways() {
			return true
		}
	}
	return false
}
