package scene

import (
	"testing"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisiblePoints(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		progress float64
		want     int
	}{
		{"zero progress", 10, 0, 0},
		{"negative progress", 10, -0.5, 0},
		{"full progress", 10, 1, 10},
		{"beyond full", 10, 1.5, 10},
		{"midway", 10, 0.5, 5},
		{"rounds up", 10, 0.41, 5},
		{"floor of two", 10, 0.01, 2},
		{"empty path", 0, 0.5, 0},
		{"almost complete stays within total", 9, 0.99, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisiblePoints(tt.total, tt.progress))
		})
	}
}

func testVertices(n int) []geometry.Vec3 {
	out := make([]geometry.Vec3, n)
	for i := range out {
		out[i] = geometry.Vec3{X: float64(i)}
	}
	return out
}

func TestPathViewUpdate(t *testing.T) {
	graph := NewGraph()
	view := NewPathView(graph)
	view.SetPath(testVertices(10))

	require.Nil(t, view.Line())
	require.Equal(t, 0, graph.Len())

	count := view.Update(0.5)
	assert.Equal(t, 5, count)
	require.NotNil(t, view.Line())
	assert.Len(t, view.Line().Vertices(), 5)
	assert.Equal(t, 1, graph.Len())
}

func TestPathViewScrubbingDisposesReplacedLines(t *testing.T) {
	graph := NewGraph()
	view := NewPathView(graph)
	view.SetPath(testVertices(10))

	var previous *Line
	for _, progress := range []float64{0.2, 0.8, 0.4, 1, 0.1} {
		view.Update(progress)
		current := view.Line()
		require.NotNil(t, current)
		assert.False(t, current.Disposed())
		if previous != nil {
			assert.True(t, previous.Disposed())
			assert.False(t, graph.Contains(previous))
		}
		previous = current
	}

	// Only the latest line is ever in the graph.
	assert.Equal(t, 1, graph.Len())
}

func TestPathViewZeroProgressClearsLine(t *testing.T) {
	graph := NewGraph()
	view := NewPathView(graph)
	view.SetPath(testVertices(6))

	view.Update(0.5)
	line := view.Line()
	require.NotNil(t, line)

	count := view.Update(0)
	assert.Equal(t, 0, count)
	assert.Nil(t, view.Line())
	assert.True(t, line.Disposed())
	assert.Equal(t, 0, graph.Len())
}

func TestPathViewSetPathClearsVisiblePortion(t *testing.T) {
	graph := NewGraph()
	view := NewPathView(graph)
	view.SetPath(testVertices(6))
	view.Update(1)
	line := view.Line()
	require.NotNil(t, line)

	view.SetPath(testVertices(4))
	assert.Nil(t, view.Line())
	assert.True(t, line.Disposed())
	assert.Equal(t, 0, graph.Len())
}

func TestLineDisposeIdempotent(t *testing.T) {
	line := NewLine(testVertices(3))
	line.Dispose()
	line.Dispose()
	assert.True(t, line.Disposed())
	assert.Empty(t, line.Vertices())
}
