package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbow3d/propconst/analysis"
)

// floatsB64 packs float32s little-endian and base64-encodes them for a data URI.
func floatsB64(t *testing.T, values ...float32) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, values))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// parseDoc parses a glTF JSON document from a string.
func parseDoc(t *testing.T, doc string) Parser {
	t.Helper()
	p := NewParser()
	require.NoError(t, p.ParseReader(strings.NewReader(doc), false))
	return p
}

// linearDoc builds a one-channel LINEAR translation animation over two
// keyframes with the given vec3 values.
func linearDoc(t *testing.T, v0, v1 [3]float32) string {
	t.Helper()
	b64 := floatsB64(t, 0, 1, v0[0], v0[1], v0[2], v1[0], v1[1], v1[2])
	return fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"nodes": [{"name": "Hips"}],
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 32}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 24}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC3"}
		],
		"animations": [{
			"name": "Idle",
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "translation"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "LINEAR"}]
		}]
	}`, b64)
}

func TestExtractClips_Linear(t *testing.T) {
	p := parseDoc(t, linearDoc(t, [3]float32{5, 5, 5}, [3]float32{5, 6, 5}))

	clips, err := ExtractClips(p)
	require.NoError(t, err)
	require.Contains(t, clips, "Idle")

	clip := clips["Idle"]
	assert.Equal(t, float32(1), clip.Duration)
	require.Len(t, clip.Curves, 3)

	// x is flat: equal values and zero chord slope.
	x := clip.CurvesFor("Hips.translation.x")
	require.Len(t, x, 1)
	node, err := analysis.NewCurveNode(x[0].Keyframes)
	require.NoError(t, err)
	v, ok := node.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(5), v)

	// y ramps 5 -> 6: variable.
	y := clip.CurvesFor("Hips.translation.y")
	require.Len(t, y, 1)
	node, err = analysis.NewCurveNode(y[0].Keyframes)
	require.NoError(t, err)
	assert.False(t, node.Value().IsConstant())
}

func TestExtractClips_StepTangentsAreInfinite(t *testing.T) {
	b64 := floatsB64(t, 0, 1, 3, 3, 3, 3, 3, 3)
	doc := fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"nodes": [{}],
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 32}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 24}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC3"}
		],
		"animations": [{
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "scale"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "STEP"}]
		}]
	}`, b64)
	p := parseDoc(t, doc)

	clips, err := ExtractClips(p)
	require.NoError(t, err)

	// Unnamed animation and node fall back to indexed names.
	clip, ok := clips["animation_0"]
	require.True(t, ok)

	curves := clip.CurvesFor("node_0.scale.z")
	require.Len(t, curves, 1)
	for _, kf := range curves[0].Keyframes {
		assert.True(t, math32.IsInf(kf.InTangent, 1))
		assert.True(t, math32.IsInf(kf.OutTangent, 1))
	}

	node, err := analysis.NewCurveNode(curves[0].Keyframes)
	require.NoError(t, err)
	v, constant := node.Value().Constant()
	require.True(t, constant)
	assert.Equal(t, float32(3), v)
}

func TestExtractClips_CubicSpline(t *testing.T) {
	// Two keyframes, output = in-tangent/value/out-tangent triples.
	floats := []float32{0, 1}
	appendVec4 := func(x, y, z, w float32) { floats = append(floats, x, y, z, w) }
	appendVec4(0, 0, 0, 0) // in-tangent k0
	appendVec4(0, 0, 0, 1) // value k0
	appendVec4(0, 0, 0, 2) // out-tangent k0: w bumps between samples
	appendVec4(0, 0, 0, -2) // in-tangent k1
	appendVec4(0, 0, 0, 1) // value k1
	appendVec4(0, 0, 0, 0) // out-tangent k1

	doc := fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"nodes": [{"name": "Root"}],
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 104}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 96}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 6, "type": "VEC4"}
		],
		"animations": [{
			"name": "Spin",
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "rotation"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "CUBICSPLINE"}]
		}]
	}`, floatsB64(t, floats...))
	p := parseDoc(t, doc)

	clips, err := ExtractClips(p)
	require.NoError(t, err)
	clip := clips["Spin"]
	require.NotNil(t, clip)
	require.Len(t, clip.Curves, 4)

	// x/y/z have equal values and zero tangents: constant.
	x := clip.CurvesFor("Root.rotation.x")
	require.Len(t, x, 1)
	node, err := analysis.NewCurveNode(x[0].Keyframes)
	require.NoError(t, err)
	v, ok := node.Value().Constant()
	require.True(t, ok)
	assert.Equal(t, float32(0), v)

	// w has equal endpoint values but non-zero tangents: not provably flat.
	w := clip.CurvesFor("Root.rotation.w")
	require.Len(t, w, 1)
	assert.Equal(t, float32(2), w[0].Keyframes[0].OutTangent)
	assert.Equal(t, float32(-2), w[0].Keyframes[1].InTangent)
	node, err = analysis.NewCurveNode(w[0].Keyframes)
	require.NoError(t, err)
	assert.False(t, node.Value().IsConstant())
}

func TestExtractClips_SkipsWeightsAndTargetlessChannels(t *testing.T) {
	b64 := floatsB64(t, 0, 1)
	doc := fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"nodes": [{}],
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 8}],
		"bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": 8}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"}],
		"animations": [{
			"channels": [
				{"sampler": 0, "target": {"node": 0, "path": "weights"}},
				{"sampler": 0, "target": {"path": "translation"}}
			],
			"samplers": [{"input": 0, "output": 0}]
		}]
	}`, b64)
	p := parseDoc(t, doc)

	clips, err := ExtractClips(p)
	require.NoError(t, err)
	require.Contains(t, clips, "animation_0")
	assert.Empty(t, clips["animation_0"].Curves)
}

func TestExtractClips_NoDocument(t *testing.T) {
	_, err := ExtractClips(NewParser())
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestParser_RejectsWrongVersion(t *testing.T) {
	p := NewParser()
	err := p.ParseReader(strings.NewReader(`{"asset": {"version": "1.0"}}`), false)
	require.Error(t, err)
}

func TestParser_GLB(t *testing.T) {
	// Binary chunk: times [0, 1] then vec3 values [(5,5,5), (5,5,5)].
	var bin bytes.Buffer
	require.NoError(t, binary.Write(&bin, binary.LittleEndian, []float32{0, 1, 5, 5, 5, 5, 5, 5}))

	jsonChunk := []byte(`{
		"asset": {"version": "2.0"},
		"nodes": [{"name": "Hips"}],
		"buffers": [{"byteLength": 32}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 24}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC3"}
		],
		"animations": [{
			"name": "Idle",
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "translation"}}],
			"samplers": [{"input": 0, "output": 1}]
		}]
	}`)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}

	var glb bytes.Buffer
	total := 12 + 8 + len(jsonChunk) + 8 + bin.Len()
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBHeader{
		Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total),
	}))
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(jsonChunk)), ChunkType: gltfGLBChunkJSON,
	}))
	glb.Write(jsonChunk)
	require.NoError(t, binary.Write(&glb, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(bin.Len()), ChunkType: gltfGLBChunkBIN,
	}))
	glb.Write(bin.Bytes())

	p := NewParser()
	require.NoError(t, p.ParseReader(bytes.NewReader(glb.Bytes()), true))

	clips, err := ExtractClips(p)
	require.NoError(t, err)
	require.Contains(t, clips, "Idle")
	assert.Len(t, clips["Idle"].Curves, 3)
}

func TestExtractClips_CubicSplineCountMismatch(t *testing.T) {
	// Output holds plain values, not triples: must be rejected.
	b64 := floatsB64(t, 0, 1, 3, 3, 3, 3, 3, 3)
	doc := fmt.Sprintf(`{
		"asset": {"version": "2.0"},
		"nodes": [{}],
		"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 32}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 8},
			{"buffer": 0, "byteOffset": 8, "byteLength": 24}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "SCALAR"},
			{"bufferView": 1, "componentType": 5126, "count": 2, "type": "VEC3"}
		],
		"animations": [{
			"channels": [{"sampler": 0, "target": {"node": 0, "path": "translation"}}],
			"samplers": [{"input": 0, "output": 1, "interpolation": "CUBICSPLINE"}]
		}]
	}`, b64)
	p := parseDoc(t, doc)

	_, err := ExtractClips(p)
	require.Error(t, err)
}
