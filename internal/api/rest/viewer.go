package rest

import (
	"net/http"

	"github.com/KevinKickass/OpenToolpathViewer/internal/types"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/viewer/status
func (s *Server) getViewerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.viewer.GetCurrentStatus())
}

// GET /api/v1/path
func (s *Server) getPath(c *gin.Context) {
	path, ok := s.viewer.Resources().CurrentPath()
	if !ok {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(
			types.CodeNotFound, "No path loaded", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"origin":   path.Origin,
		"vertices": path.Vertices,
	})
}

// GET /api/v1/model
func (s *Server) getModel(c *gin.Context) {
	model := s.viewer.Resources().CurrentModel()
	if model == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(
			types.CodeNotFound, "No model loaded", nil))
		return
	}

	min, max := model.Bounds()
	size := max.Sub(min)
	c.JSON(http.StatusOK, gin.H{
		"name":      s.viewer.Resources().ModelStatus().Name,
		"triangles": model.Triangles(),
		"bounds": gin.H{
			"min":      min,
			"max":      max,
			"size":     size,
			"center":   min.Add(max).Scale(0.5),
			"diagonal": size.Length(),
		},
	})
}

// GET /api/v1/scene
func (s *Server) getScene(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"objects": s.viewer.Scene().Snapshot(),
	})
}
