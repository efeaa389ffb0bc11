package handlers

import (
	"net/http"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progress *usecase.ProgressUseCase
}

func NewProgressHandler(p *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{progress: p}
}

// POST /api/v1/progress/:courseId/videos/:videoId
func (h *ProgressHandler) MarkVideoComplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	progress, err := h.progress.MarkVideoComplete(c, userID, courseID, videoID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "video marked as completed", progress)
}
