package handlers

import (
	"net/http"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart *usecase.CartUseCase
}

func NewCartHandler(cart *usecase.CartUseCase) *CartHandler {
	return &CartHandler{cart: cart}
}

// GET /api/v1/cart
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courses, err := h.cart.List(c, userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "cart", courses)
}

// POST /api/v1/cart/:courseId
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	courses, err := h.cart.Add(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course added to cart", courses)
}

// DELETE /api/v1/cart/:courseId
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	courses, err := h.cart.Remove(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "course removed from cart", courses)
}
