package gcode

import (
	"testing"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPathModalCarryOver(t *testing.T) {
	commands := []MotionCommand{
		{Mode: ModeLinear, X: f(10)},
		{Mode: ModeLinear, Y: f(5)},
	}

	path := BuildPath(commands)
	require.Equal(t, PathOK, path.Origin)

	want := []geometry.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 10, Y: 5, Z: 0},
	}
	assert.Equal(t, want, path.Vertices)
}

func TestBuildPathFallback(t *testing.T) {
	tests := []struct {
		name     string
		commands []MotionCommand
	}{
		{"nil input", nil},
		{"empty input", []MotionCommand{}},
		{"only non-motion commands", []MotionCommand{{Mode: ModeOther, X: f(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := BuildPath(tt.commands)
			assert.Equal(t, PathFallback, path.Origin)
			require.Len(t, path.Vertices, 2)
			assert.NotEqual(t, path.Vertices[0], path.Vertices[1])
		})
	}
}

func TestBuildPathSkipsOtherCommands(t *testing.T) {
	commands := []MotionCommand{
		{Mode: ModeLinear, X: f(10)},
		// Should not move the current position even though it has an axis.
		{Mode: ModeOther, X: f(99)},
		{Mode: ModeLinear, Y: f(5)},
	}

	path := BuildPath(commands)
	require.Equal(t, PathOK, path.Origin)
	assert.Equal(t, geometry.Vec3{X: 10, Y: 5}, path.Vertices[len(path.Vertices)-1])
}

func TestBuildPathEvenVertexCount(t *testing.T) {
	commands := []MotionCommand{
		{Mode: ModeRapid, Z: f(5)},
		{Mode: ModeRapid, X: f(0), Y: f(0)},
		{Mode: ModeLinear, Z: f(-1)},
		{Mode: ModeLinear, X: f(50)},
	}

	path := BuildPath(commands)
	require.Equal(t, PathOK, path.Origin)
	assert.Zero(t, len(path.Vertices)%2)
	assert.Len(t, path.Vertices, 8)
}

func TestInterpretAndBuildEndToEnd(t *testing.T) {
	input := "G21\nG90\nG0 Z5\nG0 X0 Y0\nG1 Z-1 F100\nG1 X50 F200\nG1 Y50\n"

	path := BuildPath(Interpret(input))
	require.Equal(t, PathOK, path.Origin)
	require.Len(t, path.Vertices, 8)
	assert.Equal(t, geometry.Vec3{X: 50, Y: 50, Z: -1}, path.Vertices[7])
}
