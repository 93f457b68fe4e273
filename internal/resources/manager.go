// Package resources owns the two renderable-resource slots of the
// viewer: the part model and the tool path. Loads are asynchronous;
// a per-slot generation counter guarantees that only the most recently
// triggered load can ever install its result, and that superseded
// results are disposed instead.
package resources

import (
	"context"
	"sync"
	"time"

	"github.com/KevinKickass/OpenToolpathViewer/internal/gcode"
	"github.com/KevinKickass/OpenToolpathViewer/internal/scene"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotKind string

const (
	SlotModel SlotKind = "model"
	SlotPath  SlotKind = "path"
)

// ModelDecoder turns raw mesh bytes into a renderable surface.
type ModelDecoder func(data []byte) (*scene.Mesh, error)

// Notifier receives load lifecycle events. May be nil.
type Notifier interface {
	ResourceLoaded(slot SlotKind, name string)
	ResourceError(slot SlotKind, name string, err error)
}

// PathSink receives each newly installed path. The viewer wires this to
// the path view and the playback reset.
type PathSink interface {
	PathInstalled(name string, path gcode.Path)
	// PathCleared is called when a failed load empties the slot, so the
	// previously installed path stops being rendered.
	PathCleared(name string)
}

// SlotStatus describes one slot for the status API.
type SlotStatus struct {
	Slot      SlotKind  `json:"slot"`
	Name      string    `json:"name,omitempty"`
	Loaded    bool      `json:"loaded"`
	Error     string    `json:"error,omitempty"`
	Triangles int       `json:"triangles,omitempty"`
	Vertices  int       `json:"vertices,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	LoadedAt  time.Time `json:"loaded_at,omitzero"`
}

type Manager struct {
	logger   *zap.Logger
	graph    *scene.Graph
	decode   ModelDecoder
	notifier Notifier
	pathSink PathSink

	// Each slot has its own lock and generation counter. Installs and
	// sink callbacks run under the slot lock so a superseding load can
	// never interleave with a stale one.
	modelMu       sync.Mutex
	modelGen      uint64
	model         *scene.Mesh
	modelName     string
	modelErr      error
	modelLoadedAt time.Time

	pathMu       sync.Mutex
	pathGen      uint64
	path         gcode.Path
	pathLoaded   bool
	pathName     string
	pathErr      error
	pathLoadedAt time.Time
}

func NewManager(logger *zap.Logger, graph *scene.Graph, decode ModelDecoder, pathSink PathSink, notifier Notifier) *Manager {
	return &Manager{
		logger:   logger,
		graph:    graph,
		decode:   decode,
		pathSink: pathSink,
		notifier: notifier,
	}
}

// LoadModel starts an asynchronous load of the model slot and returns
// the load's ID. A load triggered later for the same slot supersedes
// this one; a superseded result is disposed, never installed.
func (m *Manager) LoadModel(ctx context.Context, src Source) uuid.UUID {
	m.modelMu.Lock()
	m.modelGen++
	gen := m.modelGen
	m.modelMu.Unlock()

	loadID := uuid.New()
	m.logger.Info("Model load started",
		zap.String("load_id", loadID.String()),
		zap.String("source", src.Name()))

	go func() {
		data, err := src.Read(ctx)
		if err != nil {
			m.failModel(gen, src.Name(), &SourceReadError{Source: src.Name(), Err: err})
			return
		}
		mesh, err := m.decode(data)
		if err != nil {
			m.failModel(gen, src.Name(), &DecodeError{Source: src.Name(), Err: err})
			return
		}
		m.installModel(gen, src.Name(), mesh)
	}()

	return loadID
}

func (m *Manager) installModel(gen uint64, name string, mesh *scene.Mesh) {
	m.modelMu.Lock()
	defer m.modelMu.Unlock()

	if gen != m.modelGen {
		// A newer load owns the slot; this result must never be seen.
		mesh.Dispose()
		m.logger.Info("Discarded superseded model load", zap.String("source", name))
		return
	}

	m.replaceModelLocked(mesh)
	m.modelName = name
	m.modelErr = nil
	m.modelLoadedAt = time.Now()

	m.logger.Info("Model installed",
		zap.String("source", name),
		zap.Int("triangles", mesh.TriangleCount()))
	if m.notifier != nil {
		m.notifier.ResourceLoaded(SlotModel, name)
	}
}

func (m *Manager) failModel(gen uint64, name string, err error) {
	m.modelMu.Lock()
	defer m.modelMu.Unlock()

	if gen != m.modelGen {
		m.logger.Info("Discarded superseded model failure", zap.String("source", name))
		return
	}

	// Failure clears the slot rather than leaving a stale occupant.
	m.replaceModelLocked(nil)
	m.modelName = name
	m.modelErr = err

	m.logger.Error("Model load failed", zap.String("source", name), zap.Error(err))
	if m.notifier != nil {
		m.notifier.ResourceError(SlotModel, name, err)
	}
}

func (m *Manager) replaceModelLocked(next *scene.Mesh) {
	old := m.model
	m.model = next
	if next != nil {
		m.graph.Add(next)
	}
	if old != nil {
		m.graph.Remove(old)
		old.Dispose()
	}
}

// LoadPath starts an asynchronous load of the path slot from G-code
// text. Interpretation is permissive and cannot fail; only the source
// read can.
func (m *Manager) LoadPath(ctx context.Context, src Source) uuid.UUID {
	m.pathMu.Lock()
	m.pathGen++
	gen := m.pathGen
	m.pathMu.Unlock()

	loadID := uuid.New()
	m.logger.Info("Path load started",
		zap.String("load_id", loadID.String()),
		zap.String("source", src.Name()))

	go func() {
		data, err := src.Read(ctx)
		if err != nil {
			m.failPath(gen, src.Name(), &SourceReadError{Source: src.Name(), Err: err})
			return
		}
		path := gcode.BuildPath(gcode.Interpret(string(data)))
		m.installPath(gen, src.Name(), path)
	}()

	return loadID
}

func (m *Manager) installPath(gen uint64, name string, path gcode.Path) {
	m.pathMu.Lock()
	defer m.pathMu.Unlock()

	if gen != m.pathGen {
		m.logger.Info("Discarded superseded path load", zap.String("source", name))
		return
	}

	m.path = path
	m.pathLoaded = true
	m.pathName = name
	m.pathErr = nil
	m.pathLoadedAt = time.Now()

	m.logger.Info("Path installed",
		zap.String("source", name),
		zap.Int("vertices", len(path.Vertices)),
		zap.String("origin", string(path.Origin)))
	if m.pathSink != nil {
		m.pathSink.PathInstalled(name, path)
	}
	if m.notifier != nil {
		m.notifier.ResourceLoaded(SlotPath, name)
	}
}

func (m *Manager) failPath(gen uint64, name string, err error) {
	m.pathMu.Lock()
	defer m.pathMu.Unlock()

	if gen != m.pathGen {
		m.logger.Info("Discarded superseded path failure", zap.String("source", name))
		return
	}

	m.path = gcode.Path{}
	m.pathLoaded = false
	m.pathName = name
	m.pathErr = err

	m.logger.Error("Path load failed", zap.String("source", name), zap.Error(err))
	if m.pathSink != nil {
		m.pathSink.PathCleared(name)
	}
	if m.notifier != nil {
		m.notifier.ResourceError(SlotPath, name, err)
	}
}

// CurrentModel returns the installed part mesh, or nil when the slot is
// empty.
func (m *Manager) CurrentModel() *scene.Mesh {
	m.modelMu.Lock()
	defer m.modelMu.Unlock()
	return m.model
}

// CurrentPath returns the installed path and whether the slot is
// populated.
func (m *Manager) CurrentPath() (gcode.Path, bool) {
	m.pathMu.Lock()
	defer m.pathMu.Unlock()
	return m.path, m.pathLoaded
}

func (m *Manager) ModelStatus() SlotStatus {
	m.modelMu.Lock()
	defer m.modelMu.Unlock()

	status := SlotStatus{
		Slot:     SlotModel,
		Name:     m.modelName,
		Loaded:   m.model != nil,
		LoadedAt: m.modelLoadedAt,
	}
	if m.model != nil {
		status.Triangles = m.model.TriangleCount()
	}
	if m.modelErr != nil {
		status.Error = m.modelErr.Error()
	}
	return status
}

func (m *Manager) PathStatus() SlotStatus {
	m.pathMu.Lock()
	defer m.pathMu.Unlock()

	status := SlotStatus{
		Slot:     SlotPath,
		Name:     m.pathName,
		Loaded:   m.pathLoaded,
		Vertices: len(m.path.Vertices),
		Origin:   string(m.path.Origin),
		LoadedAt: m.pathLoadedAt,
	}
	if m.pathErr != nil {
		status.Error = m.pathErr.Error()
	}
	return status
}

// Close disposes both slots. In-flight loads find a bumped generation
// and discard themselves.
func (m *Manager) Close() {
	m.modelMu.Lock()
	m.modelGen++
	m.replaceModelLocked(nil)
	m.modelMu.Unlock()

	m.pathMu.Lock()
	m.pathGen++
	m.path = gcode.Path{}
	m.pathLoaded = false
	m.pathMu.Unlock()
}
