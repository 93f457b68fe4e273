// Package scene holds the in-process scene graph the viewer renders
// from. It stands in for the external 3D renderer: objects are plain
// data with explicit dispose semantics, and consumers serialize the
// graph into frames instead of drawing it.
package scene

import (
	"sync"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
)

// Object is anything the graph can hold. Dispose releases the object's
// geometry buffers; calling it more than once is a no-op.
type Object interface {
	Kind() string
	Dispose()
	Disposed() bool
}

// Graph is an ordered set of renderable objects.
type Graph struct {
	mu      sync.RWMutex
	objects []Object
}

func NewGraph() *Graph {
	return &Graph{}
}

// Add appends obj to the graph. Nil objects are ignored.
func (g *Graph) Add(obj Object) {
	if obj == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects = append(g.objects, obj)
}

// Remove takes obj out of the graph without disposing it. The caller
// owns the dispose.
func (g *Graph) Remove(obj Object) {
	if obj == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, o := range g.objects {
		if o == obj {
			g.objects = append(g.objects[:i], g.objects[i+1:]...)
			return
		}
	}
}

// Contains reports whether obj is currently in the graph.
func (g *Graph) Contains(obj Object) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, o := range g.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Objects returns a snapshot copy of the graph's contents.
func (g *Graph) Objects() []Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Object, len(g.objects))
	copy(out, g.objects)
	return out
}

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// ObjectSnapshot is the serializable form of one graph object, sent to
// rendering clients over the API.
type ObjectSnapshot struct {
	Kind      string          `json:"kind"`
	Vertices  []geometry.Vec3 `json:"vertices,omitempty"`
	Triangles []Triangle      `json:"triangles,omitempty"`
}

// Snapshot serializes the graph's current contents. Disposed objects
// are skipped; they hold no geometry anymore.
func (g *Graph) Snapshot() []ObjectSnapshot {
	g.mu.RLock()
	objects := make([]Object, len(g.objects))
	copy(objects, g.objects)
	g.mu.RUnlock()

	out := make([]ObjectSnapshot, 0, len(objects))
	for _, obj := range objects {
		if obj.Disposed() {
			continue
		}
		switch o := obj.(type) {
		case *Line:
			out = append(out, ObjectSnapshot{Kind: KindLine, Vertices: o.Vertices()})
		case *Mesh:
			out = append(out, ObjectSnapshot{Kind: KindMesh, Triangles: o.Triangles()})
		}
	}
	return out
}
