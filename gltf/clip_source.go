package gltf

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/oxbow3d/propconst/analysis"
)

// Curve is one scalar property's keyframe sequence within a clip: the value
// of a single component of a node's animated transform over time.
type Curve struct {
	// Target is the animated node's name.
	Target string

	// Path is the scalar property within the target, e.g. "translation.x".
	Path string

	// Keyframes is the ordered keyframe sequence (never empty).
	Keyframes []analysis.Keyframe
}

// Property returns the full property identifier, "<target>.<path>".
//
// Returns:
//   - string: the property identifier
func (c Curve) Property() string {
	return c.Target + "." + c.Path
}

// Clip is one extracted animation: a named set of scalar curves.
type Clip struct {
	// Name is the animation's name, or "animation_<index>" when unnamed.
	Name string

	// Duration is the clip length in seconds (max keyframe time).
	Duration float32

	// Curves are the clip's scalar curves.
	Curves []Curve
}

// CurvesFor returns the clip's curves writing the given property. glTF
// channels target a (node, path) pair at most once per animation, so the
// result has at most one element.
//
// Parameters:
//   - property: the full property identifier, "<target>.<path>"
//
// Returns:
//   - []Curve: the matching curves
func (c *Clip) CurvesFor(property string) []Curve {
	var curves []Curve
	for _, curve := range c.Curves {
		if curve.Property() == property {
			curves = append(curves, curve)
		}
	}
	return curves
}

// ClipSet is a clip lookup by name.
type ClipSet map[string]*Clip

// Properties returns the sorted-free union of every property any clip in the
// set writes. Order is unspecified.
//
// Returns:
//   - map[string]struct{}: the property identifier set
func (s ClipSet) Properties() map[string]struct{} {
	props := make(map[string]struct{})
	for _, clip := range s {
		for _, curve := range clip.Curves {
			props[curve.Property()] = struct{}{}
		}
	}
	return props
}

// scalar suffixes per animation target path.
var pathComponents = map[string][]string{
	gltfAnimPathTranslation: {"x", "y", "z"},
	gltfAnimPathScale:       {"x", "y", "z"},
	gltfAnimPathRotation:    {"x", "y", "z", "w"},
}

// ExtractClips converts every animation in a parsed document into scalar
// keyframe curves, mapping sampler interpolation onto curve tangents: STEP
// keyframes get infinite tangents, LINEAR keyframes get chord-slope
// tangents, and CUBICSPLINE tangents are carried through verbatim. Channels
// with no target node and morph-target weight channels are skipped, as are
// channels whose sampler holds no keyframes.
//
// Parameters:
//   - p: a parser holding a loaded document
//
// Returns:
//   - ClipSet: the extracted clips by name
//   - error: ErrNoDocument or an accessor read failure
func ExtractClips(p Parser) (ClipSet, error) {
	doc := p.doc()
	if doc == nil {
		return nil, ErrNoDocument
	}

	clips := make(ClipSet, len(doc.Animations))
	for animIndex := range doc.Animations {
		clip, err := extractClip(p, doc, animIndex)
		if err != nil {
			return nil, fmt.Errorf("gltf: animation %d: %w", animIndex, err)
		}
		clips[clip.Name] = clip
	}

	return clips, nil
}

// extractClip extracts a single animation by index.
func extractClip(p Parser, doc *gltfDocument, animIndex int) (*Clip, error) {
	anim := &doc.Animations[animIndex]

	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}

	clip := &Clip{Name: name}

	for i := range anim.Channels {
		ch := &anim.Channels[i]

		// Skip channels with no target node (e.g. extensions)
		if ch.Target.Node == nil {
			continue
		}
		nodeIndex := *ch.Target.Node
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return nil, fmt.Errorf("channel %d: invalid target node %d", i, nodeIndex)
		}

		// Morph target weights are not supported; skip
		if ch.Target.Path == gltfAnimPathWeights {
			continue
		}
		suffixes, ok := pathComponents[ch.Target.Path]
		if !ok {
			return nil, fmt.Errorf("channel %d: unknown target path %q", i, ch.Target.Path)
		}

		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("channel %d: invalid sampler index %d", i, ch.Sampler)
		}
		sampler := &anim.Samplers[ch.Sampler]

		times, err := p.ReadScalarAccessor(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("channel %d: failed to read timestamps: %w", i, err)
		}
		if len(times) == 0 {
			// Curves with zero keyframes are never modeled; omit the channel.
			continue
		}

		frames, err := readOutputFrames(p, sampler.Output, ch.Target.Path)
		if err != nil {
			return nil, fmt.Errorf("channel %d: failed to read values: %w", i, err)
		}

		target := doc.Nodes[nodeIndex].Name
		if target == "" {
			target = fmt.Sprintf("node_%d", nodeIndex)
		}

		curves, err := buildCurves(target, ch.Target.Path, suffixes, times, frames, sampler.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		clip.Curves = append(clip.Curves, curves...)

		if t := times[len(times)-1]; t > clip.Duration {
			clip.Duration = t
		}
	}

	return clip, nil
}

// readOutputFrames reads a sampler's output accessor as per-element float
// slices, widening vec3/vec4 data to a common shape.
func readOutputFrames(p Parser, accessorIndex int, path string) ([][]float32, error) {
	switch path {
	case gltfAnimPathTranslation, gltfAnimPathScale:
		values, err := p.ReadVec3Accessor(accessorIndex)
		if err != nil {
			return nil, err
		}
		frames := make([][]float32, len(values))
		for i, v := range values {
			frames[i] = v[:]
		}
		return frames, nil

	case gltfAnimPathRotation:
		values, err := p.ReadVec4Accessor(accessorIndex)
		if err != nil {
			return nil, err
		}
		frames := make([][]float32, len(values))
		for i, v := range values {
			frames[i] = v[:]
		}
		return frames, nil

	default:
		return nil, fmt.Errorf("unsupported target path %q", path)
	}
}

// buildCurves splits multi-component sampler output into one scalar curve
// per component, deriving keyframe tangents from the interpolation mode.
func buildCurves(target, path string, suffixes []string, times []float32, frames [][]float32, interpolation string) ([]Curve, error) {
	count := len(times)

	switch interpolation {
	case gltfAnimInterpolationCubicSpline:
		// CUBICSPLINE output holds in-tangent, value, out-tangent triples.
		if len(frames) != 3*count {
			return nil, fmt.Errorf("cubic spline output has %d elements, want %d", len(frames), 3*count)
		}
	case gltfAnimInterpolationLinear, gltfAnimInterpolationStep, "":
		if len(frames) < count {
			count = len(frames)
		}
	default:
		return nil, fmt.Errorf("unknown interpolation %q", interpolation)
	}

	curves := make([]Curve, 0, len(suffixes))
	for comp, suffix := range suffixes {
		keyframes := make([]analysis.Keyframe, count)

		switch interpolation {
		case gltfAnimInterpolationCubicSpline:
			for k := 0; k < count; k++ {
				keyframes[k] = analysis.Keyframe{
					Time:       times[k],
					Value:      frames[3*k+1][comp],
					InTangent:  frames[3*k][comp],
					OutTangent: frames[3*k+2][comp],
				}
			}

		case gltfAnimInterpolationStep:
			inf := math32.Inf(1)
			for k := 0; k < count; k++ {
				keyframes[k] = analysis.Keyframe{
					Time:       times[k],
					Value:      frames[k][comp],
					InTangent:  inf,
					OutTangent: inf,
				}
			}

		default: // LINEAR, glTF's default
			for k := 0; k < count; k++ {
				keyframes[k] = analysis.Keyframe{Time: times[k], Value: frames[k][comp]}
			}
			for k := 0; k+1 < count; k++ {
				slope := chordSlope(keyframes[k], keyframes[k+1])
				keyframes[k].OutTangent = slope
				keyframes[k+1].InTangent = slope
			}
		}

		curves = append(curves, Curve{
			Target:    target,
			Path:      path + "." + suffix,
			Keyframes: keyframes,
		})
	}

	return curves, nil
}

// chordSlope returns the straight-line slope between two keyframes, or 0 for
// degenerate (non-increasing-time) segments.
func chordSlope(a, b analysis.Keyframe) float32 {
	dt := b.Time - a.Time
	if dt <= 0 {
		return 0
	}
	return (b.Value - a.Value) / dt
}
