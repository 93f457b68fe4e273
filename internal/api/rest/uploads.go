package rest

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/KevinKickass/OpenToolpathViewer/internal/resources"
	"github.com/KevinKickass/OpenToolpathViewer/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	extGcode = ".gcode"
	extSTL   = ".stl"
)

// POST /api/v1/programs
func (s *Server) uploadProgram(c *gin.Context) {
	data, name, ok := s.readUpload(c, extGcode)
	if !ok {
		return
	}

	// Loads outlive the request, so they must not use its context.
	loadID := s.viewer.Resources().LoadPath(context.Background(), resources.NewBytesSource(name, data))

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Program load started",
		"name":    name,
		"load_id": loadID.String(),
	})
}

// POST /api/v1/models
func (s *Server) uploadModel(c *gin.Context) {
	data, name, ok := s.readUpload(c, extSTL)
	if !ok {
		return
	}

	loadID := s.viewer.Resources().LoadModel(context.Background(), resources.NewBytesSource(name, data))

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Model load started",
		"name":    name,
		"load_id": loadID.String(),
	})
}

// POST /api/v1/programs/default
func (s *Server) loadDefaultProgram(c *gin.Context) {
	loadID := s.viewer.Resources().LoadPath(context.Background(), resources.DefaultProgram())
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Program load started",
		"name":    resources.DefaultProgramName,
		"load_id": loadID.String(),
	})
}

// POST /api/v1/models/default
func (s *Server) loadDefaultModel(c *gin.Context) {
	loadID := s.viewer.Resources().LoadModel(context.Background(), resources.DefaultModel())
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Model load started",
		"name":    resources.DefaultModelName,
		"load_id": loadID.String(),
	})
}

// readUpload pulls the "file" form field, enforcing the size limit and
// the case-insensitive extension check.
func (s *Server) readUpload(c *gin.Context, wantExt string) ([]byte, string, bool) {
	maxBytes := s.viewer.Config().Upload.MaxBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeUploadError, "Missing or oversized file upload", err.Error()))
		return nil, "", false
	}

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), wantExt) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeUploadError, "Unsupported file extension",
			gin.H{"filename": name, "expected": wantExt}))
		return nil, "", false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeUploadError, "Failed to open upload", err.Error()))
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read upload", zap.String("filename", name), zap.Error(err))
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeUploadError, "Failed to read upload", err.Error()))
		return nil, "", false
	}

	return data, name, true
}
