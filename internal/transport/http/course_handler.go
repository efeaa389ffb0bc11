package handlers

import (
	"net/http"
	"strconv"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	catalog *usecase.CatalogUseCase
}

func NewCourseHandler(catalog *usecase.CatalogUseCase) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.catalog.List(c, search, category, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "courses", list)
}

// GET /api/v1/courses/:id — публичная, но если юзер авторизован,
// в видео подмешиваются его пометки "просмотрено".
func (h *CourseHandler) GetOne(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	// userId кладет OptionalAuth, может отсутствовать
	userID := uuid.Nil
	if raw := c.GetString("userId"); raw != "" {
		if uid, err := uuid.Parse(raw); err == nil {
			userID = uid
		}
	}

	detail, err := h.catalog.Get(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course", detail)
}

// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req usecase.NewCourse
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: err.Error()})
		return
	}

	course, err := h.catalog.Create(c, userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "course published", course)
}

// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c, userID, courseID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course deleted", nil)
}
