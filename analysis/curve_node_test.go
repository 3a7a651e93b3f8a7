package analysis

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// key builds a keyframe with matching in/out tangents.
func key(time, value, tangent float32) Keyframe {
	return Keyframe{Time: time, Value: value, InTangent: tangent, OutTangent: tangent}
}

func TestNewCurveNode_EmptyKeyframes(t *testing.T) {
	_, err := NewCurveNode(nil)
	require.ErrorIs(t, err, ErrNoKeyframes)
}

func TestCurveNode_SingleKeyframe(t *testing.T) {
	node, err := NewCurveNode([]Keyframe{key(0, 3, 0)})
	require.NoError(t, err)

	v, ok := node.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(3), v)
	assert.True(t, node.AppliedAlways())
}

func TestCurveNode_Constancy(t *testing.T) {
	inf := math32.Inf(1)

	tests := []struct {
		name      string
		keyframes []Keyframe
		constant  bool
		value     float32
	}{
		{
			name:      "flat zero tangents",
			keyframes: []Keyframe{key(0, 5, 0), key(1, 5, 0)},
			constant:  true,
			value:     5,
		},
		{
			name:      "different values",
			keyframes: []Keyframe{key(0, 5, 0), key(1, 7, 0)},
			constant:  false,
		},
		{
			name: "equal values but bumping tangents",
			keyframes: []Keyframe{
				{Time: 0, Value: 5, OutTangent: 2},
				{Time: 1, Value: 5, InTangent: -2},
			},
			constant: false,
		},
		{
			name: "infinite out tangent accepted as flat",
			keyframes: []Keyframe{
				{Time: 0, Value: 5, OutTangent: inf},
				{Time: 1, Value: 5, InTangent: 3},
			},
			constant: true,
			value:    5,
		},
		{
			name: "negative infinite in tangent accepted as flat",
			keyframes: []Keyframe{
				{Time: 0, Value: 5, OutTangent: 3},
				{Time: 1, Value: 5, InTangent: math32.Inf(-1)},
			},
			constant: true,
			value:    5,
		},
		{
			name: "both ends zero weighted",
			keyframes: []Keyframe{
				{Time: 0, Value: 2, OutTangent: 4, OutWeight: 0, WeightedMode: WeightedModeOut},
				{Time: 1, Value: 2, InTangent: 4, InWeight: 0, WeightedMode: WeightedModeIn},
			},
			constant: true,
			value:    2,
		},
		{
			name: "zero weight on one side only",
			keyframes: []Keyframe{
				{Time: 0, Value: 2, OutTangent: 4, OutWeight: 0, WeightedMode: WeightedModeOut},
				{Time: 1, Value: 2, InTangent: 4, InWeight: 0.5, WeightedMode: WeightedModeIn},
			},
			constant: false,
		},
		{
			name: "zero weight but unweighted mode",
			keyframes: []Keyframe{
				{Time: 0, Value: 2, OutTangent: 4, OutWeight: 0, WeightedMode: WeightedModeNone},
				{Time: 1, Value: 2, InTangent: 4, InWeight: 0, WeightedMode: WeightedModeNone},
			},
			constant: false,
		},
		{
			name: "variable middle segment short-circuits",
			keyframes: []Keyframe{
				key(0, 1, 0),
				key(1, 2, 0),
				key(2, 1, 0),
			},
			constant: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewCurveNode(tt.keyframes)
			require.NoError(t, err)

			v, ok := node.Value().Constant()
			assert.Equal(t, tt.constant, ok)
			if tt.constant {
				assert.Equal(t, tt.value, v)
			}
		})
	}
}

func TestCurveNode_ValueIsMemoizedAndIdempotent(t *testing.T) {
	node, err := NewCurveNode([]Keyframe{key(0, 5, 0), key(1, 5, 0)})
	require.NoError(t, err)

	first := node.Value()
	second := node.Value()
	assert.True(t, first.Equal(second))
}

func TestCurveNode_Context(t *testing.T) {
	ref := ObjectRef{Kind: "clip", Name: "Idle"}
	node, err := NewCurveNode([]Keyframe{key(0, 1, 0)}, WithCurveContext(ref))
	require.NoError(t, err)

	require.Len(t, node.ContextReferences(), 1)
	assert.Equal(t, ref, node.ContextReferences()[0])
}
