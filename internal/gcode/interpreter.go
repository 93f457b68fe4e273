// Package gcode turns raw G-code text into tool-path geometry.
//
// The interpreter is deliberately permissive: anything it does not
// recognize is skipped, never rejected. The goal is a best-effort
// visualization of whatever geometry the program contains, not
// validation of the program itself.
package gcode

import (
	"strconv"
	"strings"
	"unicode"
)

// Mode classifies a parsed instruction's motion semantics.
type Mode string

const (
	// ModeRapid is a G0 positioning move (tool travels without cutting).
	ModeRapid Mode = "rapid"
	// ModeLinear is a G1 feed move (tool cuts along a straight line).
	ModeLinear Mode = "linear"
	// ModeOther is any recognized word that contributes no geometry.
	ModeOther Mode = "other"
)

// MotionCommand is one parsed instruction. Nil coordinates mean the axis
// was not mentioned on the line and carries over from the previous
// position (modal behavior).
type MotionCommand struct {
	Mode Mode
	X    *float64
	Y    *float64
	Z    *float64
}

const commentMarker = ";"

// Interpret parses a G-code program into its motion commands.
//
// A line survives only if it names a motion word (G0/G1) and sets at
// least one axis to a nonzero value; a line whose every coordinate is
// zero produces no move worth plotting and is dropped like a modal-only
// line. Modal-only lines (G21, G90, ...), comments, blank lines, and
// unparsable tokens (feed rates, spindle speeds, stray text) are
// dropped without error.
func Interpret(text string) []MotionCommand {
	var commands []MotionCommand

	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, commentMarker); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, ok := interpretLine(line)
		if ok {
			commands = append(commands, cmd)
		}
	}

	return commands
}

func interpretLine(line string) (MotionCommand, bool) {
	cmd := MotionCommand{Mode: ModeOther}
	eligible := false

	for _, token := range strings.Fields(line) {
		letter := unicode.ToUpper(rune(token[0]))
		rest := token[1:]

		switch letter {
		case 'G':
			switch {
			case strings.HasPrefix(rest, "0"):
				cmd.Mode = ModeRapid
			case strings.HasPrefix(rest, "1"):
				cmd.Mode = ModeLinear
			}
			// Other G words (G21, G90, ...) stay ModeOther.
		case 'X', 'Y', 'Z':
			value, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				// Malformed coordinate, skip the token.
				continue
			}
			switch letter {
			case 'X':
				cmd.X = &value
			case 'Y':
				cmd.Y = &value
			case 'Z':
				cmd.Z = &value
			}
			if value != 0 {
				eligible = true
			}
		}
		// All other letters (F, S, M, T, ...) are accepted and ignored.
	}

	if cmd.Mode == ModeOther || !eligible {
		return MotionCommand{}, false
	}
	return cmd, true
}
