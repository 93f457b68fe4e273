// Package system wires the viewer together: resources, playback, the
// scene graph, the REST/WebSocket surface, and the render loop that
// drives them every tick.
package system

import (
	"context"
	"sync"
	"time"

	"github.com/KevinKickass/OpenToolpathViewer/internal/api/rest"
	"github.com/KevinKickass/OpenToolpathViewer/internal/api/websocket"
	"github.com/KevinKickass/OpenToolpathViewer/internal/config"
	"github.com/KevinKickass/OpenToolpathViewer/internal/gcode"
	"github.com/KevinKickass/OpenToolpathViewer/internal/interfaces"
	"github.com/KevinKickass/OpenToolpathViewer/internal/mesh"
	"github.com/KevinKickass/OpenToolpathViewer/internal/playback"
	"github.com/KevinKickass/OpenToolpathViewer/internal/resources"
	"github.com/KevinKickass/OpenToolpathViewer/internal/scene"
	"go.uber.org/zap"
)

type Viewer struct {
	config     *config.Config
	logger     *zap.Logger
	graph      *scene.Graph
	pathView   *scene.PathView
	controller *playback.Controller
	manager    *resources.Manager
	watcher    *resources.Watcher
	wsHub      *websocket.Hub
	restServer *rest.Server

	// Paths installed by load goroutines are parked here and picked up
	// by the render loop, which is the only mutator of the path view.
	pendingMu   sync.Mutex
	pendingPath *gcode.Path

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	loopDone     chan struct{}
}

func NewViewer(cfg *config.Config, logger *zap.Logger) *Viewer {
	v := &Viewer{
		config:       cfg,
		logger:       logger,
		graph:        scene.NewGraph(),
		wsHub:        websocket.NewHub(logger),
		shutdownChan: make(chan struct{}),
		loopDone:     make(chan struct{}),
	}

	v.pathView = scene.NewPathView(v.graph)
	v.controller = playback.NewController(logger, cfg.Playback.Duration, hubBroadcaster{v.wsHub})
	v.manager = resources.NewManager(logger, v.graph, mesh.Decode, v, hubBroadcaster{v.wsHub})
	v.restServer = rest.NewServer(cfg, v, logger, v.wsHub)

	return v
}

func (v *Viewer) Config() *config.Config { return v.config }

func (v *Viewer) Playback() *playback.Controller { return v.controller }

func (v *Viewer) Resources() *resources.Manager { return v.manager }

func (v *Viewer) Scene() *scene.Graph { return v.graph }

func (v *Viewer) GetCurrentStatus() interfaces.ViewerStatus {
	return interfaces.ViewerStatus{
		Playback: v.controller.GetStatus(),
		Model:    v.manager.ModelStatus(),
		Path:     v.manager.PathStatus(),
		Clients:  v.wsHub.GetClientCount(),
	}
}

// PathInstalled implements resources.PathSink. Called from a load
// goroutine; the path is handed to the render loop instead of being
// applied here.
func (v *Viewer) PathInstalled(name string, path gcode.Path) {
	v.pendingMu.Lock()
	v.pendingPath = &path
	v.pendingMu.Unlock()
}

// PathCleared implements resources.PathSink. A failed load empties the
// slot, so the render loop must tear down the stale line rather than
// keep showing a trajectory that no longer exists.
func (v *Viewer) PathCleared(name string) {
	v.pendingMu.Lock()
	v.pendingPath = &gcode.Path{}
	v.pendingMu.Unlock()
}

// Start brings the whole viewer up: initial asset loads, source
// watching, API server, render loop.
func (v *Viewer) Start() error {
	v.logger.Info("Starting toolpath viewer")

	go v.wsHub.Run()

	if err := v.loadInitialAssets(); err != nil {
		return err
	}

	if err := v.restServer.Start(); err != nil {
		return err
	}

	go v.renderLoop()

	v.logger.Info("Viewer started",
		zap.Int("http_port", v.config.Server.HTTPPort),
		zap.Duration("tick_interval", v.config.Server.TickInterval))
	return nil
}

func (v *Viewer) loadInitialAssets() error {
	ctx := context.Background()

	watched := map[string]resources.SlotKind{}

	if file := v.config.Assets.ProgramFile; file != "" {
		v.manager.LoadPath(ctx, resources.FileSource{Path: file})
		watched[file] = resources.SlotPath
	} else {
		v.manager.LoadPath(ctx, resources.DefaultProgram())
	}

	if file := v.config.Assets.ModelFile; file != "" {
		v.manager.LoadModel(ctx, resources.FileSource{Path: file})
		watched[file] = resources.SlotModel
	} else {
		v.manager.LoadModel(ctx, resources.DefaultModel())
	}

	if len(watched) == 0 {
		return nil
	}

	watcher, err := resources.NewWatcher(v.logger, v.manager)
	if err != nil {
		return err
	}
	for file, slot := range watched {
		if err := watcher.Watch(file, slot); err != nil {
			watcher.Close()
			return err
		}
	}
	v.watcher = watcher
	go watcher.Run()
	return nil
}

// renderLoop is the single mutator of the path view. It applies pending
// path installs, advances playback, and emits a frame whenever the
// visible state changed.
func (v *Viewer) renderLoop() {
	defer close(v.loopDone)

	ticker := time.NewTicker(v.config.Server.TickInterval)
	defer ticker.Stop()

	lastProgress := -1.0
	var lastState playback.State

	for {
		select {
		case <-v.shutdownChan:
			return
		case now := <-ticker.C:
			v.step(now, &lastProgress, &lastState)
		}
	}
}

func (v *Viewer) step(now time.Time, lastProgress *float64, lastState *playback.State) {
	v.pendingMu.Lock()
	pending := v.pendingPath
	v.pendingPath = nil
	v.pendingMu.Unlock()

	if pending != nil {
		v.pathView.SetPath(pending.Vertices)
		v.controller.Reset()
		*lastProgress = -1 // force a frame for the new path
	}

	v.controller.Tick(now)

	status := v.controller.GetStatus()
	if status.Progress == *lastProgress && status.State == *lastState {
		return
	}
	*lastProgress = status.Progress
	*lastState = status.State

	visible := v.pathView.Update(status.Progress)
	v.wsHub.Broadcast(websocket.NewFrameMessage(
		string(status.State), status.Progress, visible, v.pathView.TotalPoints()))
}

// Shutdown stops the render loop, the API server, and disposes both
// resource slots.
func (v *Viewer) Shutdown(ctx context.Context) error {
	var err error
	v.shutdownOnce.Do(func() {
		v.logger.Info("Shutting down viewer")

		close(v.shutdownChan)
		select {
		case <-v.loopDone:
		case <-ctx.Done():
		}

		if v.watcher != nil {
			if werr := v.watcher.Close(); werr != nil {
				v.logger.Warn("Failed to close file watcher", zap.Error(werr))
			}
		}

		err = v.restServer.Shutdown(ctx)
		v.wsHub.Stop()

		// The loop is stopped, so the path view can be torn down here.
		v.pathView.SetPath(nil)
		v.manager.Close()
	})
	return err
}

// hubBroadcaster forwards playback and resource events to WebSocket
// clients.
type hubBroadcaster struct {
	hub *websocket.Hub
}

func (b hubBroadcaster) PlaybackStateChanged(current, previous playback.State, progress float64) {
	b.hub.Broadcast(websocket.NewPlaybackStateMessage(string(current), string(previous), progress))
}

func (b hubBroadcaster) ResourceLoaded(slot resources.SlotKind, name string) {
	b.hub.Broadcast(websocket.NewResourceLoadedMessage(string(slot), name))
}

func (b hubBroadcaster) ResourceError(slot resources.SlotKind, name string, err error) {
	b.hub.Broadcast(websocket.NewResourceErrorMessage(string(slot), name, err.Error()))
}
