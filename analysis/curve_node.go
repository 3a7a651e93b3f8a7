package analysis

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrNoKeyframes is returned when a curve node is constructed from an empty
// keyframe sequence. Curves with zero keyframes are not modeled as nodes at
// all; callers must omit the node and treat the writer as unanalyzable.
var ErrNoKeyframes = errors.New("analysis: curve has no keyframes")

// WeightedMode describes which sides of a keyframe use explicit tangent
// weights instead of the default 1/3 weighting.
type WeightedMode int

const (
	// WeightedModeNone weights neither side of the keyframe.
	WeightedModeNone WeightedMode = iota

	// WeightedModeIn weights the incoming tangent.
	WeightedModeIn

	// WeightedModeOut weights the outgoing tangent.
	WeightedModeOut

	// WeightedModeBoth weights both tangents.
	WeightedModeBoth
)

// In reports whether the incoming tangent is weighted.
//
// Returns:
//   - bool: true for WeightedModeIn or WeightedModeBoth
func (m WeightedMode) In() bool {
	return m == WeightedModeIn || m == WeightedModeBoth
}

// Out reports whether the outgoing tangent is weighted.
//
// Returns:
//   - bool: true for WeightedModeOut or WeightedModeBoth
func (m WeightedMode) Out() bool {
	return m == WeightedModeOut || m == WeightedModeBoth
}

// Keyframe is one control point of an animation curve. Times are in seconds
// and strictly increasing within a curve.
type Keyframe struct {
	// Time is the keyframe's position on the curve.
	Time float32

	// Value is the curve's value at Time.
	Value float32

	// InTangent is the slope approaching this keyframe.
	InTangent float32

	// OutTangent is the slope leaving this keyframe. An infinite tangent on
	// either side of a segment marks step (no-interpolation) behavior.
	OutTangent float32

	// InWeight is the incoming tangent weight, used when WeightedMode
	// weights the in side.
	InWeight float32

	// OutWeight is the outgoing tangent weight, used when WeightedMode
	// weights the out side.
	OutWeight float32

	// WeightedMode selects which tangent weights are in effect.
	WeightedMode WeightedMode
}

// curveNode is the implementation of the CurveNode interface.
type curveNode struct {
	keyframes []Keyframe
	refs      []ObjectRef

	// computed guards the lazily cached constancy result. Single-threaded
	// first access per the package contract.
	computed bool
	cached   ValueInfo[float32]
}

// CurveNode analyzes one animation curve's keyframes for constancy. A clip,
// once playing, always contributes, so AppliedAlways is always true; the
// constancy verdict is computed once and cached.
type CurveNode interface {
	ImmutableNode[float32]

	// Keyframes returns the curve's keyframe sequence. Callers must not
	// mutate the returned slice.
	//
	// Returns:
	//   - []Keyframe: the ordered keyframes
	Keyframes() []Keyframe
}

var _ CurveNode = &curveNode{}

// NewCurveNode creates a CurveNode over an ordered, non-empty keyframe
// sequence. The keyframe slice is retained; callers must not mutate it after
// construction.
//
// Parameters:
//   - keyframes: the ordered keyframes (at least one)
//   - options: functional options to further configure the node
//
// Returns:
//   - CurveNode: the new node
//   - error: ErrNoKeyframes if the sequence is empty
func NewCurveNode(keyframes []Keyframe, options ...CurveNodeBuilderOption) (CurveNode, error) {
	if len(keyframes) == 0 {
		return nil, ErrNoKeyframes
	}
	c := &curveNode{keyframes: keyframes}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

func (c *curveNode) AppliedAlways() bool {
	return true
}

func (c *curveNode) Value() ValueInfo[float32] {
	if !c.computed {
		c.cached = analyzeCurve(c.keyframes)
		c.computed = true
	}
	return c.cached
}

func (c *curveNode) ContextReferences() []ObjectRef {
	return c.refs
}

func (c *curveNode) Keyframes() []Keyframe {
	return c.keyframes
}

func (c *curveNode) immutableNode() {}

// analyzeCurve applies the curve-constancy rule: the curve is constant iff
// every adjacent keyframe pair shares one value and the segment between them
// cannot overshoot it.
func analyzeCurve(keyframes []Keyframe) ValueInfo[float32] {
	value := keyframes[0].Value
	for i := 0; i+1 < len(keyframes); i++ {
		pre, post := keyframes[i], keyframes[i+1]
		if pre.Value != post.Value {
			return VariableInfo[float32]()
		}
		if !flatSegment(pre, post) {
			return VariableInfo[float32]()
		}
	}
	return ConstantInfo(value)
}

// flatSegment reports whether the segment between two equal-valued keyframes
// is provably flat. Equal endpoint values are not enough on their own: tangents
// can imply a curve that bumps away from the shared value between samples.
// A segment is accepted when both boundary tangents are exactly zero, when
// either boundary tangent is infinite (step interpolation, flat by
// convention), or when both ends are weighted with zero weight.
func flatSegment(pre, post Keyframe) bool {
	if pre.OutTangent == 0 && post.InTangent == 0 {
		return true
	}
	if math32.IsInf(pre.OutTangent, 0) || math32.IsInf(post.InTangent, 0) {
		return true
	}
	if pre.WeightedMode.Out() && post.WeightedMode.In() && pre.OutWeight == 0 && post.InWeight == 0 {
		return true
	}
	return false
}
