package resources

import (
	"context"
	_ "embed"
)

// Built-in demo assets shown when no user file has been supplied.

//go:embed assets/default.gcode
var defaultProgram []byte

//go:embed assets/default.stl
var defaultModel []byte

const (
	DefaultProgramName = "default.gcode"
	DefaultModelName   = "default.stl"
)

type embeddedSource struct {
	name string
	data []byte
}

func (s embeddedSource) Name() string { return s.name }

func (s embeddedSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}

// DefaultProgram is the embedded demo G-code program.
func DefaultProgram() Source {
	return embeddedSource{name: DefaultProgramName, data: defaultProgram}
}

// DefaultModel is the embedded demo part mesh.
func DefaultModel() Source {
	return embeddedSource{name: DefaultModelName, data: defaultModel}
}
