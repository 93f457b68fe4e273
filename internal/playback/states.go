package playback

import "time"

type State string

const (
	// StateIdle is the rest state: nothing traversed, clock stopped.
	StateIdle State = "idle"
	// StatePlaying advances progress on every render tick.
	StatePlaying State = "playing"
	// StatePaused holds the current progress with the clock stopped.
	StatePaused State = "paused"
	// StateCompleted means the full path has been traversed.
	StateCompleted State = "completed"
)

type Command string

const (
	CommandPlay  Command = "play"
	CommandPause Command = "pause"
	CommandReset Command = "reset"
)

type Status struct {
	State      State         `json:"state"`
	Progress   float64       `json:"progress"`
	Duration   time.Duration `json:"duration"`
	LastChange time.Time     `json:"last_change"`
}
