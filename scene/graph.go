package scene

import (
	"sort"
	"sync"

	"github.com/oxbow3d/propconst/lifetime"
)

type graph struct {
	mu       sync.RWMutex
	registry map[uint64]Object
	nextID   uint64

	lifetimes lifetime.Registry
}

// Graph is the object registry an analysis pass runs over. Removing an
// object (or clearing the graph) notifies the lifetime registry so that any
// analysis node observing the object is pruned reactively.
type Graph interface {
	// Add registers an object, assigning it the next free ID when its ID
	// is zero.
	//
	// Parameters:
	//   - obj: the object to register
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj Object) uint64

	// Get returns the registered object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - Object: the object or nil
	Get(id uint64) Object

	// Objects returns every registered object ordered by ID.
	//
	// Returns:
	//   - []Object: the objects
	Objects() []Object

	// Count returns the number of registered objects.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Remove unregisters an object and notifies the lifetime registry
	// that its host is destroyed. Unknown IDs are a no-op.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Clear unregisters every object, notifying the lifetime registry
	// for each.
	Clear()
}

var _ Graph = &graph{}

// NewGraph creates a new Graph configured with the given options. The
// lifetime registry defaults to the process-wide one.
//
// Parameters:
//   - options: functional options to configure the graph
//
// Returns:
//   - Graph: the newly created graph
func NewGraph(options ...GraphBuilderOption) Graph {
	g := &graph{
		registry: make(map[uint64]Object),
	}
	for _, option := range options {
		option(g)
	}
	if g.lifetimes == nil {
		g.lifetimes = lifetime.Default()
	}
	return g
}

func (g *graph) Add(obj Object) uint64 {
	if obj == nil {
		panic("scene: cannot Add a nil Object")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if obj.ID() == 0 {
		g.nextID++
		obj.SetID(g.nextID)
	} else if obj.ID() > g.nextID {
		g.nextID = obj.ID()
	}

	g.registry[obj.ID()] = obj
	return obj.ID()
}

func (g *graph) Get(id uint64) Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.registry[id]
}

func (g *graph) Objects() []Object {
	g.mu.RLock()
	objects := make([]Object, 0, len(g.registry))
	for _, obj := range g.registry {
		objects = append(objects, obj)
	}
	g.mu.RUnlock()

	sort.Slice(objects, func(i, j int) bool { return objects[i].ID() < objects[j].ID() })
	return objects
}

func (g *graph) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.registry)
}

func (g *graph) Remove(id uint64) {
	g.mu.Lock()
	_, exists := g.registry[id]
	if exists {
		delete(g.registry, id)
	}
	g.mu.Unlock()

	// Notify outside the lock: observers may re-enter the graph.
	if exists {
		g.lifetimes.NotifyDestroyed(id)
	}
}

func (g *graph) Clear() {
	g.mu.Lock()
	ids := make([]uint64, 0, len(g.registry))
	for id := range g.registry {
		ids = append(ids, id)
	}
	g.registry = make(map[uint64]Object)
	g.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		g.lifetimes.NotifyDestroyed(id)
	}
}
