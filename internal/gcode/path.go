package gcode

import (
	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
)

// PathOrigin tells a consumer whether the vertices came from the program
// or from the degenerate-input fallback.
type PathOrigin string

const (
	// PathOK means the vertices were built from actual motion commands.
	PathOK PathOrigin = "ok"
	// PathFallback means the program yielded no usable motion and the
	// vertices are the default placeholder segment.
	PathFallback PathOrigin = "fallback"
)

// Path is the flattened trajectory: each motion command contributes its
// start and end position as two consecutive vertices.
type Path struct {
	Vertices []geometry.Vec3
	Origin   PathOrigin
}

// Half-extent of the placeholder segment shown when a program contains
// no usable motion.
const fallbackHalfExtent = 10.0

// BuildPath walks the command sequence from the origin and produces the
// trajectory vertices. Axes missing from a command carry over from the
// current position.
//
// Downstream rendering needs at least two points to form a line, so a
// sequence with no motion commands yields a short fallback segment
// centered at the origin instead of an empty list.
func BuildPath(commands []MotionCommand) Path {
	var vertices []geometry.Vec3
	current := geometry.Vec3{}

	for _, cmd := range commands {
		if cmd.Mode != ModeRapid && cmd.Mode != ModeLinear {
			continue
		}

		target := current
		if cmd.X != nil {
			target.X = *cmd.X
		}
		if cmd.Y != nil {
			target.Y = *cmd.Y
		}
		if cmd.Z != nil {
			target.Z = *cmd.Z
		}

		vertices = append(vertices, current, target)
		current = target
	}

	if len(vertices) < 2 {
		return Path{
			Vertices: []geometry.Vec3{
				{X: -fallbackHalfExtent},
				{X: fallbackHalfExtent},
			},
			Origin: PathFallback,
		}
	}

	return Path{Vertices: vertices, Origin: PathOK}
}
