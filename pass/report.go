package pass

import "github.com/oxbow3d/propconst/analysis"

// PropertyResult is the constancy verdict for one (object, property) pair.
type PropertyResult struct {
	// Object identifies the analyzed object.
	Object analysis.ObjectRef `json:"object"`

	// Property is the property identifier, "<target>.<path>".
	Property string `json:"property"`

	// Constant reports whether the property is provably constant.
	Constant bool `json:"constant"`

	// Value is the proven constant. Meaningful only when Constant.
	Value float32 `json:"value,omitempty"`

	// AlwaysApplied reports whether some writer unconditionally
	// determines the property in every runtime state.
	AlwaysApplied bool `json:"alwaysApplied"`

	// Sources are the writers contributing to this verdict, for
	// diagnostics.
	Sources []analysis.ObjectRef `json:"sources,omitempty"`
}

// Report is the outcome of one analysis pass, ordered by object ID then
// property name.
type Report struct {
	// Results holds one row per analyzed (object, property) pair.
	Results []PropertyResult `json:"results"`
}

// ConstantCount returns how many rows are provably constant.
//
// Returns:
//   - int: the constant row count
func (r *Report) ConstantCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Constant {
			count++
		}
	}
	return count
}
