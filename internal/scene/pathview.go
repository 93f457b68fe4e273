package scene

import (
	"math"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
)

// PathView derives the currently visible portion of the tool path from
// a playback progress value and keeps the corresponding line object in
// the graph. It is the only writer of the path slot: every update swaps
// in a fresh line and disposes the one it replaces, so scrubbing back
// and forth never accumulates stale geometry.
type PathView struct {
	graph    *Graph
	vertices []geometry.Vec3
	line     *Line
}

func NewPathView(graph *Graph) *PathView {
	return &PathView{graph: graph}
}

// SetPath installs a new full vertex sequence and clears any currently
// visible portion.
func (v *PathView) SetPath(vertices []geometry.Vec3) {
	v.vertices = make([]geometry.Vec3, len(vertices))
	copy(v.vertices, vertices)
	v.swap(nil)
}

// Update rebuilds the visible sub-path for the given progress and
// returns the number of visible points.
func (v *PathView) Update(progress float64) int {
	count := VisiblePoints(len(v.vertices), progress)
	if count == 0 {
		v.swap(nil)
		return 0
	}
	v.swap(NewLine(v.vertices[:count]))
	return count
}

// Line returns the currently installed line object, or nil when no
// portion of the path is visible.
func (v *PathView) Line() *Line {
	return v.line
}

// TotalPoints returns the length of the full vertex sequence.
func (v *PathView) TotalPoints() int {
	return len(v.vertices)
}

func (v *PathView) swap(next *Line) {
	old := v.line
	v.line = next
	if next != nil {
		v.graph.Add(next)
	}
	if old != nil {
		v.graph.Remove(old)
		old.Dispose()
	}
}

// VisiblePoints maps a progress value in [0,1] to the number of leading
// vertices to show: none at 0, all at 1, and otherwise at least two so
// a line can always be formed.
func VisiblePoints(total int, progress float64) int {
	if total == 0 || progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return total
	}
	count := int(math.Ceil(float64(total) * progress))
	if count < 2 {
		count = 2
	}
	if count > total {
		count = total
	}
	return count
}
