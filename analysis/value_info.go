package analysis

// ValueInfo is the two-state result of a constancy analysis: either the
// analyzed source is proven to produce a single statically-known value in
// every reachable runtime state, or it is not. A ValueInfo is a pure value
// type with no identity; copy it freely.
//
// The payload is meaningful only in the constant state. Use Constant to
// read it safely.
type ValueInfo[T comparable] struct {
	isConstant bool
	value      T
}

// ConstantInfo creates a ValueInfo proven constant at the given value.
//
// Parameters:
//   - value: the statically-known value
//
// Returns:
//   - ValueInfo[T]: a constant ValueInfo holding value
func ConstantInfo[T comparable](value T) ValueInfo[T] {
	return ValueInfo[T]{isConstant: true, value: value}
}

// VariableInfo creates a ValueInfo representing an unprovable (variable)
// result. This is the zero value of ValueInfo; the constructor exists for
// symmetry with ConstantInfo and for readability at call sites.
//
// Returns:
//   - ValueInfo[T]: a variable ValueInfo
func VariableInfo[T comparable]() ValueInfo[T] {
	return ValueInfo[T]{}
}

// IsConstant reports whether this result is proven constant.
//
// Returns:
//   - bool: true if the value is statically constant
func (v ValueInfo[T]) IsConstant() bool {
	return v.isConstant
}

// Constant returns the constant payload and whether it is meaningful.
//
// Returns:
//   - T: the constant value (zero value when not constant)
//   - bool: true if this ValueInfo is constant
func (v ValueInfo[T]) Constant() (T, bool) {
	if !v.isConstant {
		var zero T
		return zero, false
	}
	return v.value, true
}

// Equal reports whether two results are the same: both variable, or both
// constant with equal payloads.
//
// Parameters:
//   - other: the ValueInfo to compare against
//
// Returns:
//   - bool: true if the two results are equal
func (v ValueInfo[T]) Equal(other ValueInfo[T]) bool {
	if v.isConstant != other.isConstant {
		return false
	}
	return !v.isConstant || v.value == other.value
}
