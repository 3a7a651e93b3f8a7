package controller

import (
	"fmt"
	"sort"

	"github.com/oxbow3d/propconst/analysis"
	"github.com/oxbow3d/propconst/gltf"
)

// Build lowers a controller to the layer stack writing one scalar property,
// ordered lowest priority first so the result feeds analysis.ForOverriding
// directly. A state whose motion references a clip the set does not contain
// marks its layer's state collection partial; a clip that exists but holds no
// curve for the property simply contributes nothing. A layer in which no
// state writes the property is omitted from the stack.
//
// Parameters:
//   - c: the controller
//   - clips: the clip set motions resolve against
//   - property: the property identifier, "<target>.<path>"
//
// Returns:
//   - []analysis.Layer[float32]: the layer stack, lowest priority first
//   - error: a node construction failure
func Build(c Controller, clips gltf.ClipSet, property string) ([]analysis.Layer[float32], error) {
	declared := c.Layers()
	stack := make([]analysis.Layer[float32], 0, len(declared))

	// Declared order is highest priority first; the combiner wants the
	// base layer first.
	for i := len(declared) - 1; i >= 0; i-- {
		layer := declared[i]

		node, ok, err := lowerStates(layer.States, clips, property)
		if err != nil {
			return nil, fmt.Errorf("controller: layer %s: %w", layer.Name, err)
		}
		if !ok {
			continue
		}

		stack = append(stack, analysis.NewLayer(layer.Weight, layer.Blend, node))
	}

	return stack, nil
}

// Properties returns the sorted union of every property written by a clip
// the controller references. Clip names missing from the set are ignored.
//
// Parameters:
//   - c: the controller
//   - clips: the clip set motions resolve against
//
// Returns:
//   - []string: the sorted property identifiers
func Properties(c Controller, clips gltf.ClipSet) []string {
	names := make(map[string]struct{})
	for _, layer := range c.Layers() {
		for _, state := range layer.States {
			collectClipNames(state.Motion, names)
		}
	}

	props := make(map[string]struct{})
	for name := range names {
		clip, ok := clips[name]
		if !ok {
			continue
		}
		for _, curve := range clip.Curves {
			props[curve.Property()] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(props))
	for p := range props {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)
	return sorted
}

func collectClipNames(m Motion, into map[string]struct{}) {
	if m.Clip != "" {
		into[m.Clip] = struct{}{}
		return
	}
	if m.Tree != nil {
		for _, child := range m.Tree.Children {
			collectClipNames(child, into)
		}
	}
}

// lowerStates lowers a layer's state collection for one property. Exactly
// one state is active at runtime, so the states form a side-by-side
// collection: a Simple1D tree over the state motions, partial when any state
// fails to write the property while another does, or when any referenced
// clip is missing.
func lowerStates(states []State, clips gltf.ClipSet, property string) (analysis.ImmutableNode[float32], bool, error) {
	nodes := make([]analysis.ImmutableNode[float32], 0, len(states))
	partial := false

	for _, state := range states {
		node, ok, missing, err := lowerMotion(state.Motion, clips, property)
		if err != nil {
			return nil, false, fmt.Errorf("state %s: %w", state.Name, err)
		}
		if missing {
			partial = true
		}
		if !ok {
			// A state that writes nothing leaves the property at its
			// underlying value while active.
			partial = true
			continue
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return nil, false, nil
	}
	if len(nodes) == 1 && !partial {
		return nodes[0], true, nil
	}

	tree, err := analysis.NewBlendTreeNode(analysis.BlendKindSimple1D, nodes, analysis.WithPartial(partial))
	if err != nil {
		return nil, false, err
	}
	return tree, true, nil
}

// lowerMotion lowers one motion. ok reports whether the motion produced a
// node; missing reports whether a referenced clip was absent from the set.
func lowerMotion(m Motion, clips gltf.ClipSet, property string) (node analysis.ImmutableNode[float32], ok bool, missing bool, err error) {
	if m.Clip != "" {
		return lowerClip(m.Clip, clips, property)
	}
	if m.Tree != nil {
		return lowerTree(m.Tree, clips, property)
	}
	return nil, false, false, nil
}

func lowerClip(name string, clips gltf.ClipSet, property string) (analysis.ImmutableNode[float32], bool, bool, error) {
	clip, found := clips[name]
	if !found {
		return nil, false, true, nil
	}

	curves := clip.CurvesFor(property)
	if len(curves) == 0 {
		return nil, false, false, nil
	}

	node, err := analysis.NewCurveNode(curves[0].Keyframes,
		analysis.WithCurveContext(analysis.ObjectRef{Kind: "clip", Name: name}))
	if err != nil {
		return nil, false, false, fmt.Errorf("clip %s: %w", name, err)
	}
	return node, true, false, nil
}

func lowerTree(t *Tree, clips gltf.ClipSet, property string) (analysis.ImmutableNode[float32], bool, bool, error) {
	children := make([]analysis.ImmutableNode[float32], 0, len(t.Children))
	partial := false
	anyMissing := false

	for i, child := range t.Children {
		node, ok, missing, err := lowerMotion(child, clips, property)
		if err != nil {
			return nil, false, false, fmt.Errorf("child %d: %w", i, err)
		}
		if missing {
			anyMissing = true
			partial = true
		}
		if !ok {
			if !missing {
				// The child writes other properties only; the tree
				// still blends fewer sources than declared.
				partial = true
			}
			continue
		}
		children = append(children, node)
	}

	if len(children) == 0 {
		return nil, false, anyMissing, nil
	}

	tree, err := analysis.NewBlendTreeNode(t.Kind, children, analysis.WithPartial(partial))
	if err != nil {
		return nil, false, false, err
	}
	return tree, true, anyMissing, nil
}
