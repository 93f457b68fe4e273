package interfaces

import (
	"context"

	"github.com/KevinKickass/OpenToolpathViewer/internal/config"
	"github.com/KevinKickass/OpenToolpathViewer/internal/playback"
	"github.com/KevinKickass/OpenToolpathViewer/internal/resources"
	"github.com/KevinKickass/OpenToolpathViewer/internal/scene"
)

// ViewerStatus represents the current viewer state
type ViewerStatus struct {
	Playback playback.Status      `json:"playback"`
	Model    resources.SlotStatus `json:"model"`
	Path     resources.SlotStatus `json:"path"`
	Clients  int                  `json:"connected_clients"`
}

// Viewer is the surface the API layer programs against.
type Viewer interface {
	Config() *config.Config
	Playback() *playback.Controller
	Resources() *resources.Manager
	Scene() *scene.Graph
	GetCurrentStatus() ViewerStatus
	Shutdown(ctx context.Context) error
}
