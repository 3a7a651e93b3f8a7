package controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbow3d/propconst/analysis"
	"github.com/oxbow3d/propconst/gltf"
)

const locomotionYAML = `
name: locomotion
layers:
  - name: aim
    weight: toggle
    blend: override
    states:
      - name: aiming
        motion: {clip: Aim}
  - name: base
    weight: one
    blend: override
    states:
      - name: idle
        motion: {clip: Idle}
      - name: move
        motion:
          tree:
            kind: simple1d
            children: [{clip: Walk}, {clip: Run}]
`

// constantClip builds a single-curve clip holding the property at one value.
func constantClip(t *testing.T, name, target, path string, value float32) *gltf.Clip {
	t.Helper()
	return &gltf.Clip{
		Name:     name,
		Duration: 1,
		Curves: []gltf.Curve{{
			Target: target,
			Path:   path,
			Keyframes: []analysis.Keyframe{
				{Time: 0, Value: value},
				{Time: 1, Value: value},
			},
		}},
	}
}

// rampClip builds a single-curve clip ramping the property from 0 to 1.
func rampClip(t *testing.T, name, target, path string) *gltf.Clip {
	t.Helper()
	return &gltf.Clip{
		Name:     name,
		Duration: 1,
		Curves: []gltf.Curve{{
			Target: target,
			Path:   path,
			Keyframes: []analysis.Keyframe{
				{Time: 0, Value: 0, OutTangent: 1},
				{Time: 1, Value: 1, InTangent: 1},
			},
		}},
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(locomotionYAML))
	require.NoError(t, err)

	assert.Equal(t, "locomotion", c.Name())
	layers := c.Layers()
	require.Len(t, layers, 2)

	assert.Equal(t, "aim", layers[0].Name)
	assert.Equal(t, analysis.WeightStateEitherZeroOrOne, layers[0].Weight)
	assert.Equal(t, analysis.BlendModeOverride, layers[0].Blend)

	assert.Equal(t, "base", layers[1].Name)
	assert.Equal(t, analysis.WeightStateAlwaysOne, layers[1].Weight)
	require.Len(t, layers[1].States, 2)

	move := layers[1].States[1]
	require.NotNil(t, move.Motion.Tree)
	assert.Equal(t, analysis.BlendKindSimple1D, move.Motion.Tree.Kind)
	require.Len(t, move.Motion.Tree.Children, 2)
	assert.Equal(t, "Walk", move.Motion.Tree.Children[0].Clip)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown weight", "layers: [{name: a, weight: half, blend: override, states: [{motion: {clip: X}}]}]"},
		{"unknown blend", "layers: [{name: a, weight: one, blend: mix, states: [{motion: {clip: X}}]}]"},
		{"unknown tree kind", "layers: [{name: a, weight: one, blend: override, states: [{motion: {tree: {kind: radial, children: [{clip: X}]}}}]}]"},
		{"no states", "layers: [{name: a, weight: one, blend: override}]"},
		{"empty tree", "layers: [{name: a, weight: one, blend: override, states: [{motion: {tree: {kind: simple1d, children: []}}}]}]"},
		{"clip and tree", "layers: [{name: a, weight: one, blend: override, states: [{motion: {clip: X, tree: {kind: simple1d, children: [{clip: Y}]}}}]}]"},
		{"neither clip nor tree", "layers: [{name: a, weight: one, blend: override, states: [{motion: {}}]}]"},
		{"not yaml", "layers: ["},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locomotion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(locomotionYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "locomotion", c.Name())

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuild_StackOrderAndOverride(t *testing.T) {
	c, err := Parse([]byte(locomotionYAML))
	require.NoError(t, err)

	// Every base motion pins the property to 2; the aim layer pins it to 7.
	clips := gltf.ClipSet{
		"Idle": constantClip(t, "Idle", "Hips", "translation.y", 2),
		"Walk": constantClip(t, "Walk", "Hips", "translation.y", 2),
		"Run":  constantClip(t, "Run", "Hips", "translation.y", 2),
		"Aim":  constantClip(t, "Aim", "Hips", "translation.y", 7),
	}

	stack, err := Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	require.Len(t, stack, 2)

	// Base layer first so the stack feeds ForOverriding directly.
	assert.Equal(t, analysis.WeightStateAlwaysOne, stack[0].Weight())
	assert.Equal(t, analysis.WeightStateEitherZeroOrOne, stack[1].Weight())

	// The base layer is a full-weight override applied in every state, so
	// the scan concludes at its value.
	v, ok := analysis.ForOverriding(stack).Constant()
	require.True(t, ok)
	assert.Equal(t, float32(2), v)
}

func TestBuild_ToggleLayersDisagree(t *testing.T) {
	c, err := Parse([]byte(`
layers:
  - name: flinch
    weight: toggle
    blend: override
    states:
      - name: hit
        motion: {clip: Flinch}
  - name: crouch
    weight: toggle
    blend: override
    states:
      - name: down
        motion: {clip: Crouch}
`))
	require.NoError(t, err)

	clips := gltf.ClipSet{
		"Flinch": constantClip(t, "Flinch", "Hips", "translation.y", 7),
		"Crouch": constantClip(t, "Crouch", "Hips", "translation.y", 2),
	}

	// Two toggled candidates that disagree are not provably constant.
	stack, err := Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	require.Len(t, stack, 2)
	assert.False(t, analysis.ForOverriding(stack).IsConstant())

	// When every toggled layer agrees, the shared value survives.
	clips["Crouch"] = constantClip(t, "Crouch", "Hips", "translation.y", 7)
	stack, err = Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	v, ok := analysis.ForOverriding(stack).Constant()
	require.True(t, ok)
	assert.Equal(t, float32(7), v)
}

func TestBuild_RampIsVariable(t *testing.T) {
	c, err := Parse([]byte(`
layers:
  - name: base
    weight: one
    blend: override
    states:
      - name: idle
        motion: {clip: Idle}
`))
	require.NoError(t, err)

	clips := gltf.ClipSet{"Idle": rampClip(t, "Idle", "Hips", "translation.y")}
	stack, err := Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	require.Len(t, stack, 1)
	assert.False(t, analysis.ForOverriding(stack).IsConstant())
}

func TestBuild_MissingClipMarksPartial(t *testing.T) {
	c, err := Parse([]byte(`
layers:
  - name: base
    weight: one
    blend: override
    states:
      - name: idle
        motion: {clip: Idle}
      - name: move
        motion: {clip: Missing}
`))
	require.NoError(t, err)

	clips := gltf.ClipSet{"Idle": constantClip(t, "Idle", "Hips", "translation.y", 2)}
	stack, err := Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	require.Len(t, stack, 1)

	// The surviving motion is constant, but the state collection is no
	// longer unconditionally applied.
	v, ok := stack[0].Node().Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(2), v)
	assert.False(t, stack[0].Node().AppliedAlways())
}

func TestBuild_LayerWithoutPropertyIsOmitted(t *testing.T) {
	c, err := Parse([]byte(locomotionYAML))
	require.NoError(t, err)

	// Only the aim layer writes rotation.
	clips := gltf.ClipSet{
		"Idle": constantClip(t, "Idle", "Hips", "translation.y", 2),
		"Walk": constantClip(t, "Walk", "Hips", "translation.y", 2),
		"Run":  constantClip(t, "Run", "Hips", "translation.y", 2),
		"Aim":  constantClip(t, "Aim", "Spine", "rotation.w", 1),
	}

	stack, err := Build(c, clips, "Spine.rotation.w")
	require.NoError(t, err)
	require.Len(t, stack, 1)
	assert.Equal(t, analysis.WeightStateEitherZeroOrOne, stack[0].Weight())
}

func TestBuild_DirectTreeIsVariable(t *testing.T) {
	c, err := Parse([]byte(`
layers:
  - name: base
    weight: one
    blend: override
    states:
      - name: mix
        motion:
          tree:
            kind: direct
            children: [{clip: A}, {clip: B}]
`))
	require.NoError(t, err)

	clips := gltf.ClipSet{
		"A": constantClip(t, "A", "Hips", "translation.y", 2),
		"B": constantClip(t, "B", "Hips", "translation.y", 2),
	}
	stack, err := Build(c, clips, "Hips.translation.y")
	require.NoError(t, err)
	require.Len(t, stack, 1)
	assert.False(t, analysis.ForOverriding(stack).IsConstant())
}

func TestProperties(t *testing.T) {
	c, err := Parse([]byte(locomotionYAML))
	require.NoError(t, err)

	clips := gltf.ClipSet{
		"Idle": constantClip(t, "Idle", "Hips", "translation.y", 2),
		"Walk": constantClip(t, "Walk", "Hips", "translation.x", 0),
		"Aim":  constantClip(t, "Aim", "Spine", "rotation.w", 1),
		// Referenced by no motion; must not leak in.
		"Die": constantClip(t, "Die", "Hips", "scale.x", 1),
	}

	props := Properties(c, clips)
	assert.Equal(t, []string{"Hips.translation.x", "Hips.translation.y", "Spine.rotation.w"}, props)
}
