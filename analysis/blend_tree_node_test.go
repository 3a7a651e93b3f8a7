package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantCurve builds a CurveNode proven constant at value.
func constantCurve(t *testing.T, value float32) CurveNode {
	t.Helper()
	node, err := NewCurveNode([]Keyframe{key(0, value, 0), key(1, value, 0)})
	require.NoError(t, err)
	return node
}

// variableCurve builds a CurveNode that cannot be proven constant.
func variableCurve(t *testing.T) CurveNode {
	t.Helper()
	node, err := NewCurveNode([]Keyframe{key(0, 0, 0), key(1, 1, 0)})
	require.NoError(t, err)
	return node
}

func TestNewBlendTreeNode_EmptyChildren(t *testing.T) {
	_, err := NewBlendTreeNode(BlendKindSimple1D, nil)
	require.ErrorIs(t, err, ErrNoChildren)
}

func TestBlendTreeNode_UnitSumAgreeingConstants(t *testing.T) {
	tree, err := NewBlendTreeNode(BlendKindSimple1D, []ImmutableNode[float32]{
		constantCurve(t, 5),
		constantCurve(t, 5),
	})
	require.NoError(t, err)

	v, ok := tree.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(5), v)
	assert.True(t, tree.AppliedAlways())
}

func TestBlendTreeNode_UnitSumDisagreeingConstants(t *testing.T) {
	tree, err := NewBlendTreeNode(BlendKindFreeformCartesian2D, []ImmutableNode[float32]{
		constantCurve(t, 5),
		constantCurve(t, 6),
	})
	require.NoError(t, err)

	assert.False(t, tree.Value().IsConstant())
	assert.True(t, tree.AppliedAlways())
}

func TestBlendTreeNode_DirectNeverConstant(t *testing.T) {
	// Direct trees weight children independently, so even two agreeing
	// constants cannot be proven.
	tree, err := NewBlendTreeNode(BlendKindDirect, []ImmutableNode[float32]{
		constantCurve(t, 5),
		constantCurve(t, 5),
	})
	require.NoError(t, err)

	assert.False(t, tree.Value().IsConstant())
	assert.False(t, tree.AppliedAlways())
}

func TestBlendTreeNode_VariableChild(t *testing.T) {
	tree, err := NewBlendTreeNode(BlendKindSimple1D, []ImmutableNode[float32]{
		constantCurve(t, 5),
		variableCurve(t),
	})
	require.NoError(t, err)

	assert.False(t, tree.Value().IsConstant())
}

func TestBlendTreeNode_PartialDisablesAppliedAlways(t *testing.T) {
	tree, err := NewBlendTreeNode(BlendKindSimple1D, []ImmutableNode[float32]{
		constantCurve(t, 5),
	}, WithPartial(true))
	require.NoError(t, err)

	assert.False(t, tree.AppliedAlways())

	// Constancy is unaffected by partiality; only unconditional application is.
	v, ok := tree.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(5), v)
}

func TestBlendTreeNode_NestedTrees(t *testing.T) {
	inner, err := NewBlendTreeNode(BlendKindSimple1D, []ImmutableNode[float32]{
		constantCurve(t, 2),
		constantCurve(t, 2),
	})
	require.NoError(t, err)

	outer, err := NewBlendTreeNode(BlendKindSimpleDirectional2D, []ImmutableNode[float32]{
		inner,
		constantCurve(t, 2),
	})
	require.NoError(t, err)

	v, ok := outer.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(2), v)
	assert.True(t, outer.AppliedAlways())
}

func TestBlendTreeNode_ContextAggregatesChildren(t *testing.T) {
	child, err := NewCurveNode([]Keyframe{key(0, 1, 0)}, WithCurveContext(ObjectRef{Kind: "clip", Name: "Walk"}))
	require.NoError(t, err)

	tree, err := NewBlendTreeNode(BlendKindSimple1D, []ImmutableNode[float32]{child},
		WithBlendTreeContext(ObjectRef{Kind: "tree", Name: "locomotion"}))
	require.NoError(t, err)

	refs := tree.ContextReferences()
	require.Len(t, refs, 2)
	assert.Equal(t, "locomotion", refs[0].Name)
	assert.Equal(t, "Walk", refs[1].Name)
}
