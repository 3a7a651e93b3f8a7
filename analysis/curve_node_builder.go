package analysis

// CurveNodeBuilderOption is a functional option for configuring a CurveNode
// during construction.
type CurveNodeBuilderOption func(*curveNode)

// WithCurveContext attaches provenance to the node for diagnostics.
//
// Parameters:
//   - refs: the assets/components this curve was derived from
//
// Returns:
//   - CurveNodeBuilderOption: functional option to set the context references
func WithCurveContext(refs ...ObjectRef) CurveNodeBuilderOption {
	return func(c *curveNode) {
		c.refs = refs
	}
}
