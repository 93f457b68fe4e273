package system

import (
	"context"
	"testing"
	"time"

	"github.com/KevinKickass/OpenToolpathViewer/internal/config"
	"github.com/KevinKickass/OpenToolpathViewer/internal/gcode"
	"github.com/KevinKickass/OpenToolpathViewer/internal/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			HTTPPort:        0,
			ShutdownTimeout: 5 * time.Second,
			TickInterval:    time.Millisecond,
		},
		Playback: config.PlaybackConfig{Duration: 5 * time.Second},
		Upload:   config.UploadConfig{MaxBytes: 1 << 20},
	}
}

func TestPendingPathAppliedOnStep(t *testing.T) {
	v := NewViewer(testConfig(), zap.NewNop())

	path := gcode.BuildPath(gcode.Interpret("G0 Z5\nG1 X10\nG1 Y10\n"))
	v.PathInstalled("square.gcode", path)

	lastProgress := -1.0
	var lastState playback.State
	v.step(time.Now(), &lastProgress, &lastState)

	assert.Equal(t, 6, v.pathView.TotalPoints())
	assert.Equal(t, playback.StateIdle, v.controller.GetStatus().State)
	assert.Zero(t, v.controller.Progress())
}

func TestStepAdvancesVisiblePath(t *testing.T) {
	v := NewViewer(testConfig(), zap.NewNop())

	path := gcode.BuildPath(gcode.Interpret("G0 Z5\nG1 X10\nG1 Y10\nG1 X20\nG1 Y20\n"))
	v.PathInstalled("square.gcode", path)

	lastProgress := -1.0
	var lastState playback.State
	now := time.Now()
	v.step(now, &lastProgress, &lastState)
	require.Equal(t, 10, v.pathView.TotalPoints())

	v.controller.Play()
	// First tick captures the clock, the second advances 1s of 5s.
	v.step(now, &lastProgress, &lastState)
	v.step(now.Add(time.Second), &lastProgress, &lastState)

	assert.InDelta(t, 0.2, v.controller.Progress(), 1e-9)
	require.NotNil(t, v.pathView.Line())
	assert.Len(t, v.pathView.Line().Vertices(), 2)

	v.step(now.Add(4*time.Second), &lastProgress, &lastState)
	assert.InDelta(t, 0.8, v.controller.Progress(), 1e-9)
	assert.Len(t, v.pathView.Line().Vertices(), 8)

	v.step(now.Add(6*time.Second), &lastProgress, &lastState)
	assert.Equal(t, playback.StateCompleted, v.controller.GetStatus().State)
	assert.Len(t, v.pathView.Line().Vertices(), 10)
}

func TestNewPathResetsPlayback(t *testing.T) {
	v := NewViewer(testConfig(), zap.NewNop())

	lastProgress := -1.0
	var lastState playback.State

	v.PathInstalled("a.gcode", gcode.BuildPath(gcode.Interpret("G1 X1\n")))
	v.step(time.Now(), &lastProgress, &lastState)

	v.controller.Seek(0.7)
	v.step(time.Now(), &lastProgress, &lastState)
	require.InDelta(t, 0.7, v.controller.Progress(), 1e-9)

	v.PathInstalled("b.gcode", gcode.BuildPath(gcode.Interpret("G1 X2\nG1 Y2\n")))
	v.step(time.Now(), &lastProgress, &lastState)

	assert.Equal(t, playback.StateIdle, v.controller.GetStatus().State)
	assert.Zero(t, v.controller.Progress())
	assert.Equal(t, 4, v.pathView.TotalPoints())
	assert.Nil(t, v.pathView.Line())
}

func TestFailedPathLoadClearsView(t *testing.T) {
	v := NewViewer(testConfig(), zap.NewNop())

	lastProgress := -1.0
	var lastState playback.State

	v.PathInstalled("a.gcode", gcode.BuildPath(gcode.Interpret("G1 X10\nG1 Y10\n")))
	v.step(time.Now(), &lastProgress, &lastState)
	require.Equal(t, 4, v.pathView.TotalPoints())

	v.controller.Seek(0.5)
	v.step(time.Now(), &lastProgress, &lastState)
	require.NotNil(t, v.pathView.Line())
	stale := v.pathView.Line()

	// A failed load empties the slot; the previously installed
	// trajectory must stop being rendered, not linger on screen.
	v.PathCleared("broken.gcode")
	v.step(time.Now(), &lastProgress, &lastState)

	assert.Equal(t, 0, v.pathView.TotalPoints())
	assert.Nil(t, v.pathView.Line())
	assert.True(t, stale.Disposed())
	assert.Equal(t, playback.StateIdle, v.controller.GetStatus().State)
}

func TestViewerStartShutdown(t *testing.T) {
	v := NewViewer(testConfig(), zap.NewNop())
	require.NoError(t, v.Start())

	// Both slots come up with the embedded defaults.
	require.Eventually(t, func() bool {
		return v.manager.CurrentModel() != nil
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := v.manager.CurrentPath()
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	status := v.GetCurrentStatus()
	assert.True(t, status.Model.Loaded)
	assert.True(t, status.Path.Loaded)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Shutdown(ctx))

	assert.Nil(t, v.manager.CurrentModel())
	assert.Equal(t, 0, v.graph.Len())
}
