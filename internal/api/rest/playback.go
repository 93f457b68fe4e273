package rest

import (
	"net/http"

	"github.com/KevinKickass/OpenToolpathViewer/internal/playback"
	"github.com/KevinKickass/OpenToolpathViewer/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /api/v1/playback
func (s *Server) getPlaybackStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.viewer.Playback().GetStatus())
}

// POST /api/v1/playback/command
func (s *Server) executePlaybackCommand(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	cmd := playback.Command(req.Command)

	if err := s.viewer.Playback().ExecuteCommand(cmd); err != nil {
		s.logger.Error("Playback command failed",
			zap.String("command", req.Command),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeBadRequest, "Command execution failed", err.Error()))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Command accepted",
		"command": req.Command,
	})
}

// POST /api/v1/playback/seek
func (s *Server) seekPlayback(c *gin.Context) {
	var req struct {
		Progress *float64 `json:"progress" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.CodeBadRequest, "Invalid request body", err.Error()))
		return
	}

	s.viewer.Playback().Seek(*req.Progress)

	c.JSON(http.StatusOK, s.viewer.Playback().GetStatus())
}
