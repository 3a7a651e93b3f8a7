package scene

import (
	"github.com/oxbow3d/propconst/controller"
	"github.com/oxbow3d/propconst/gltf"
)

// ObjectBuilderOption is a functional option for configuring an Object during construction.
type ObjectBuilderOption func(*object)

// WithObjectID sets the ID of the Object.
//
// Parameters:
//   - id: unique identifier for the Object
//
// Returns:
//   - ObjectBuilderOption: functional option to set the ID
func WithObjectID(id uint64) ObjectBuilderOption {
	return func(obj *object) {
		obj.id = id
	}
}

// WithObjectName sets the name of the Object.
//
// Parameters:
//   - name: the object's name
//
// Returns:
//   - ObjectBuilderOption: functional option to set the name
func WithObjectName(name string) ObjectBuilderOption {
	return func(obj *object) {
		obj.name = name
	}
}

// WithObjectEnabled sets whether the Object participates in analysis.
//
// Parameters:
//   - enabled: true to analyze the object, false to skip it
//
// Returns:
//   - ObjectBuilderOption: functional option to set the Enabled state
func WithObjectEnabled(enabled bool) ObjectBuilderOption {
	return func(obj *object) {
		obj.enabled.Store(enabled)
	}
}

// WithController attaches an animator controller to the Object.
//
// Parameters:
//   - c: the controller to attach
//
// Returns:
//   - ObjectBuilderOption: functional option to set the controller
func WithController(c controller.Controller) ObjectBuilderOption {
	return func(obj *object) {
		obj.ctrl = c
	}
}

// WithClips sets the clip set the Object's controller motions resolve against.
//
// Parameters:
//   - clips: the clip set
//
// Returns:
//   - ObjectBuilderOption: functional option to set the clip set
func WithClips(clips gltf.ClipSet) ObjectBuilderOption {
	return func(obj *object) {
		obj.clips = clips
	}
}

// WithOpaqueWriter declares an unanalyzable writer on the Object. May be
// given multiple times.
//
// Parameters:
//   - w: the writer declaration
//
// Returns:
//   - ObjectBuilderOption: functional option to append the declaration
func WithOpaqueWriter(w OpaqueWriter) ObjectBuilderOption {
	return func(obj *object) {
		obj.opaque = append(obj.opaque, w)
	}
}
