package scene

import (
	"sync"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
)

const (
	KindLine = "line"
	KindMesh = "mesh"
)

// Line is a polyline render object, used for the tool path overlay.
type Line struct {
	mu       sync.Mutex
	vertices []geometry.Vec3
	disposed bool
}

func NewLine(vertices []geometry.Vec3) *Line {
	// Copy so later mutation of the source slice cannot reach into an
	// object already handed to the graph.
	v := make([]geometry.Vec3, len(vertices))
	copy(v, vertices)
	return &Line{vertices: v}
}

func (l *Line) Kind() string { return KindLine }

// Vertices returns the polyline points. Empty once disposed.
func (l *Line) Vertices() []geometry.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vertices
}

func (l *Line) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return
	}
	l.disposed = true
	l.vertices = nil
}

func (l *Line) Disposed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.disposed
}

// Triangle is one face of a mesh surface.
type Triangle struct {
	Normal geometry.Vec3 `json:"normal"`
	A      geometry.Vec3 `json:"a"`
	B      geometry.Vec3 `json:"b"`
	C      geometry.Vec3 `json:"c"`
}

// Mesh is a triangle-surface render object, used for the part model.
type Mesh struct {
	mu        sync.Mutex
	triangles []Triangle
	disposed  bool
}

func NewMesh(triangles []Triangle) *Mesh {
	t := make([]Triangle, len(triangles))
	copy(t, triangles)
	return &Mesh{triangles: t}
}

func (m *Mesh) Kind() string { return KindMesh }

func (m *Mesh) Triangles() []Triangle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.triangles
}

func (m *Mesh) TriangleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.triangles)
}

// Bounds returns the axis-aligned bounding box of the surface. The
// zero box is returned for a disposed or empty mesh.
func (m *Mesh) Bounds() (min, max geometry.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.triangles) == 0 {
		return geometry.Vec3{}, geometry.Vec3{}
	}
	min = m.triangles[0].A
	max = m.triangles[0].A
	for _, tri := range m.triangles {
		for _, v := range [3]geometry.Vec3{tri.A, tri.B, tri.C} {
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return min, max
}

func (m *Mesh) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	m.triangles = nil
}

func (m *Mesh) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
