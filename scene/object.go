package scene

import (
	"sync/atomic"

	"github.com/oxbow3d/propconst/analysis"
	"github.com/oxbow3d/propconst/controller"
	"github.com/oxbow3d/propconst/gltf"
)

type object struct {
	id      uint64
	name    string
	enabled atomic.Bool

	ctrl  controller.Controller
	clips gltf.ClipSet

	opaque []OpaqueWriter
}

// OpaqueWriter declares a component on an object that writes properties in a
// way the analyzer cannot model, e.g. a physics rig or a script driving a
// transform directly. Every declared property is forced Variable.
type OpaqueWriter struct {
	// Name identifies the writer in diagnostics.
	Name string

	// Properties are the property identifiers the writer touches,
	// "<target>.<path>".
	Properties []string
}

// Object is one analyzable scene entity: an optional animator (controller
// plus the clip set its motions resolve against) and any number of opaque
// writer declarations.
type Object interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object participates in analysis.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Controller returns the attached animator controller, or nil.
	//
	// Returns:
	//   - controller.Controller: the controller or nil
	Controller() controller.Controller

	// Clips returns the clip set the controller's motions resolve
	// against, or nil.
	//
	// Returns:
	//   - gltf.ClipSet: the clip set or nil
	Clips() gltf.ClipSet

	// OpaqueWriters returns the object's opaque writer declarations.
	// Callers must not mutate the returned slice.
	//
	// Returns:
	//   - []OpaqueWriter: the declarations
	OpaqueWriters() []OpaqueWriter

	// Ref returns the object's diagnostic reference.
	//
	// Returns:
	//   - analysis.ObjectRef: the reference
	Ref() analysis.ObjectRef

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object participates in analysis.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetController attaches an animator controller. Pass nil to detach.
	//
	// Parameters:
	//   - c: the controller to attach, or nil
	SetController(c controller.Controller)

	// SetClips sets the clip set the controller's motions resolve against.
	//
	// Parameters:
	//   - clips: the clip set
	SetClips(clips gltf.ClipSet)

	// AddOpaqueWriter declares an unanalyzable writer on this object.
	//
	// Parameters:
	//   - w: the writer declaration
	AddOpaqueWriter(w OpaqueWriter)
}

var _ Object = &object{}

// NewObject creates a new Object configured with the given options. Objects
// are enabled unless WithObjectEnabled(false) is given.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - Object: the newly created object
func NewObject(options ...ObjectBuilderOption) Object {
	obj := &object{}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (o *object) ID() uint64 {
	return o.id
}

func (o *object) Name() string {
	return o.name
}

func (o *object) Enabled() bool {
	return o.enabled.Load()
}

func (o *object) Controller() controller.Controller {
	return o.ctrl
}

func (o *object) Clips() gltf.ClipSet {
	return o.clips
}

func (o *object) OpaqueWriters() []OpaqueWriter {
	return o.opaque
}

func (o *object) Ref() analysis.ObjectRef {
	return analysis.ObjectRef{Kind: "object", Name: o.name, Host: o.id}
}

func (o *object) SetID(id uint64) {
	o.id = id
}

func (o *object) SetEnabled(enabled bool) {
	o.enabled.Store(enabled)
}

func (o *object) SetController(c controller.Controller) {
	o.ctrl = c
}

func (o *object) SetClips(clips gltf.ClipSet) {
	o.clips = clips
}

func (o *object) AddOpaqueWriter(w OpaqueWriter) {
	o.opaque = append(o.opaque, w)
}
