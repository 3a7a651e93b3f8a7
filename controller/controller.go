// Package controller loads animator-controller descriptions and lowers them
// to layer stacks the analysis package can combine. A controller is an
// ordered list of layers; each layer declares how its weight behaves, how it
// blends over the layers below it, and a set of states whose motions are
// either clip references or blend trees over clip references.
package controller

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oxbow3d/propconst/analysis"
)

var _ Controller = &controllerImpl{}

// Controller is a validated animator-controller description.
type Controller interface {
	// Name returns the controller's name.
	//
	// Returns:
	//   - string: the name, or "" when the description omits it
	Name() string

	// Layers returns the controller's layers, highest priority first, as
	// listed in the description. Callers must not mutate the returned
	// slice.
	//
	// Returns:
	//   - []Layer: the ordered layers
	Layers() []Layer
}

// Layer is one animator layer: a weight classification, a blend mode, and
// the states the layer's state machine can be in.
type Layer struct {
	// Name is the layer's name.
	Name string

	// Weight classifies how the layer's weight behaves across all
	// reachable runtime states.
	Weight analysis.WeightState

	// Blend is how the layer combines with the layers below it.
	Blend analysis.BlendMode

	// States are the layer's state machine states. Exactly one is active
	// at any time.
	States []State
}

// State is one state machine state.
type State struct {
	// Name is the state's name.
	Name string

	// Motion is what plays while the state is active.
	Motion Motion
}

// Motion is either a clip reference or a blend tree, never both.
type Motion struct {
	// Clip names the referenced animation clip. Empty when Tree is set.
	Clip string

	// Tree is the blend tree. Nil when Clip is set.
	Tree *Tree
}

// Tree is a blend tree over child motions.
type Tree struct {
	// Kind is the blend scheme.
	Kind analysis.BlendKind

	// Children are the tree's child motions (never empty).
	Children []Motion
}

type controllerImpl struct {
	name   string
	layers []Layer
}

// yamlController is the on-disk schema.
type yamlController struct {
	Name   string      `yaml:"name"`
	Layers []yamlLayer `yaml:"layers"`
}

type yamlLayer struct {
	Name   string      `yaml:"name"`
	Weight string      `yaml:"weight"`
	Blend  string      `yaml:"blend"`
	States []yamlState `yaml:"states"`
}

type yamlState struct {
	Name   string     `yaml:"name"`
	Motion yamlMotion `yaml:"motion"`
}

type yamlMotion struct {
	Clip string    `yaml:"clip,omitempty"`
	Tree *yamlTree `yaml:"tree,omitempty"`
}

type yamlTree struct {
	Kind     string       `yaml:"kind"`
	Children []yamlMotion `yaml:"children"`
}

// weight strings accepted by the schema.
var weightStates = map[string]analysis.WeightState{
	"one":      analysis.WeightStateAlwaysOne,
	"toggle":   analysis.WeightStateEitherZeroOrOne,
	"variable": analysis.WeightStateVariable,
}

// blend strings accepted by the schema.
var blendModes = map[string]analysis.BlendMode{
	"override": analysis.BlendModeOverride,
	"additive": analysis.BlendModeAdditive,
}

// blend tree kind strings accepted by the schema.
var blendKinds = map[string]analysis.BlendKind{
	"simple1d":              analysis.BlendKindSimple1D,
	"simpledirectional2d":   analysis.BlendKindSimpleDirectional2D,
	"freeformdirectional2d": analysis.BlendKindFreeformDirectional2D,
	"freeformcartesian2d":   analysis.BlendKindFreeformCartesian2D,
	"direct":                analysis.BlendKindDirect,
}

// Parse decodes and validates a YAML controller description. Unknown weight,
// blend, or tree kind strings and motions that set both (or neither of) clip
// and tree are load errors.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Controller: the validated controller
//   - error: a decode or validation failure
func Parse(data []byte) (Controller, error) {
	var raw yamlController
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("controller: failed to decode description: %w", err)
	}

	c := &controllerImpl{
		name:   raw.Name,
		layers: make([]Layer, 0, len(raw.Layers)),
	}
	for i, rl := range raw.Layers {
		layer, err := parseLayer(rl)
		if err != nil {
			return nil, fmt.Errorf("controller: layer %d (%s): %w", i, rl.Name, err)
		}
		c.layers = append(c.layers, layer)
	}

	return c, nil
}

// LoadFile reads and parses a controller description from disk.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Controller: the validated controller
//   - error: a read, decode, or validation failure
func LoadFile(path string) (Controller, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("controller: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

func parseLayer(raw yamlLayer) (Layer, error) {
	weight, ok := weightStates[raw.Weight]
	if !ok {
		return Layer{}, fmt.Errorf("unknown weight %q", raw.Weight)
	}
	blend, ok := blendModes[raw.Blend]
	if !ok {
		return Layer{}, fmt.Errorf("unknown blend %q", raw.Blend)
	}
	if len(raw.States) == 0 {
		return Layer{}, fmt.Errorf("layer has no states")
	}

	layer := Layer{
		Name:   raw.Name,
		Weight: weight,
		Blend:  blend,
		States: make([]State, 0, len(raw.States)),
	}
	for i, rs := range raw.States {
		motion, err := parseMotion(rs.Motion)
		if err != nil {
			return Layer{}, fmt.Errorf("state %d (%s): %w", i, rs.Name, err)
		}
		layer.States = append(layer.States, State{Name: rs.Name, Motion: motion})
	}

	return layer, nil
}

func parseMotion(raw yamlMotion) (Motion, error) {
	switch {
	case raw.Clip != "" && raw.Tree != nil:
		return Motion{}, fmt.Errorf("motion sets both clip and tree")
	case raw.Clip != "":
		return Motion{Clip: raw.Clip}, nil
	case raw.Tree != nil:
		tree, err := parseTree(raw.Tree)
		if err != nil {
			return Motion{}, err
		}
		return Motion{Tree: tree}, nil
	default:
		return Motion{}, fmt.Errorf("motion sets neither clip nor tree")
	}
}

func parseTree(raw *yamlTree) (*Tree, error) {
	kind, ok := blendKinds[raw.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown blend tree kind %q", raw.Kind)
	}
	if len(raw.Children) == 0 {
		return nil, fmt.Errorf("blend tree has no children")
	}

	tree := &Tree{Kind: kind, Children: make([]Motion, 0, len(raw.Children))}
	for i, rc := range raw.Children {
		child, err := parseMotion(rc)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		tree.Children = append(tree.Children, child)
	}

	return tree, nil
}

// Name returns the controller's name.
//
// Returns:
//   - string: the name, or "" when the description omits it
func (c *controllerImpl) Name() string {
	return c.name
}

// Layers returns the controller's layers, highest priority first. Callers
// must not mutate the returned slice.
//
// Returns:
//   - []Layer: the ordered layers
func (c *controllerImpl) Layers() []Layer {
	return c.layers
}
