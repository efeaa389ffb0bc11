package handlers

import (
	"net/http"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *usecase.FavoriteUseCase
}

func NewFavoriteHandler(f *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{favorites: f}
}

// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courses, err := h.favorites.List(c, userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "favorites", courses)
}

// POST /api/v1/favorites/:courseId
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	courses, err := h.favorites.Add(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course added to favorites", courses)
}

// DELETE /api/v1/favorites/:courseId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	courses, err := h.favorites.Remove(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course removed from favorites", courses)
}
