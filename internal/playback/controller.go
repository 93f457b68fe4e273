// Package playback drives the time-based traversal of a loaded tool
// path. The controller is a small state machine advanced by the render
// loop; it never blocks and owns the progress value exclusively.
package playback

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StateBroadcaster receives state-transition notifications, typically
// forwarded to WebSocket clients.
type StateBroadcaster interface {
	PlaybackStateChanged(current, previous State, progress float64)
}

type Controller struct {
	logger      *zap.Logger
	broadcaster StateBroadcaster
	duration    time.Duration

	mu         sync.Mutex
	state      State
	progress   float64
	lastTick   *time.Time // nil means no tick observed since the clock last started
	lastChange time.Time
}

func NewController(logger *zap.Logger, duration time.Duration, broadcaster StateBroadcaster) *Controller {
	return &Controller{
		logger:      logger,
		broadcaster: broadcaster,
		duration:    duration,
		state:       StateIdle,
		lastChange:  time.Now(),
	}
}

// ExecuteCommand handles playback commands coming from the API.
func (c *Controller) ExecuteCommand(cmd Command) error {
	switch cmd {
	case CommandPlay:
		c.Play()
	case CommandPause:
		c.Pause()
	case CommandReset:
		c.Reset()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

// Play starts or resumes the traversal. Playing again after completion
// restarts from the beginning.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		return
	}
	if c.state == StateCompleted {
		c.progress = 0
	}
	c.lastTick = nil
	c.setStateLocked(StatePlaying)
}

// Pause stops the clock at the current progress. No-op unless playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}
	c.lastTick = nil
	c.setStateLocked(StatePaused)
}

// Reset returns to the idle state with progress zero.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.progress = 0
	c.lastTick = nil
	if c.state != StateIdle {
		c.setStateLocked(StateIdle)
	}
}

// Seek jumps directly to the given progress, clamped to [0,1], and
// stops playback. Seeking to 1 lands in the completed state.
func (c *Controller) Seek(value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	c.progress = value
	c.lastTick = nil

	target := StatePaused
	if value == 1 {
		target = StateCompleted
	}
	if c.state != target {
		c.setStateLocked(target)
	}
}

// Tick advances progress from the elapsed wall-clock time. Invoked by
// the render loop; a no-op unless playing. The first tick after the
// clock starts only captures the timestamp so resuming never causes a
// progress jump. Returns true when progress or state changed.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return false
	}
	if c.lastTick == nil {
		c.lastTick = &now
		return false
	}

	delta := now.Sub(*c.lastTick)
	c.lastTick = &now
	if delta <= 0 {
		return false
	}

	c.progress += float64(delta) / float64(c.duration)
	if c.progress >= 1 {
		c.progress = 1
		c.lastTick = nil
		c.setStateLocked(StateCompleted)
	}
	return true
}

// Progress returns the current progress in [0,1].
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Playing reports whether the clock is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StatePlaying
}

func (c *Controller) GetStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:      c.state,
		Progress:   c.progress,
		Duration:   c.duration,
		LastChange: c.lastChange,
	}
}

func (c *Controller) setStateLocked(state State) {
	previous := c.state
	c.state = state
	c.lastChange = time.Now()

	c.logger.Info("Playback state changed",
		zap.String("state", string(state)),
		zap.String("previous_state", string(previous)),
		zap.Float64("progress", c.progress))

	if c.broadcaster != nil {
		c.broadcaster.PlaybackStateChanged(state, previous, c.progress)
	}
}
