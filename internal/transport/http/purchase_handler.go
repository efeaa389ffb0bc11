package handlers

import (
	"net/http"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	purchases *usecase.PurchaseUseCase
}

func NewPurchaseHandler(p *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{purchases: p}
}

// GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.purchases.List(c, userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "purchases", list)
}

// POST /api/v1/purchases/:courseId
func (h *PurchaseHandler) Buy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	p, err := h.purchases.Buy(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "course bought", p)
}

type checkoutReq struct {
	CourseIDs []string `json:"course_ids" binding:"required"`
}

// POST /api/v1/purchases/checkout
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "course_ids is required"})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.CourseIDs))
	for _, raw := range req.CourseIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response{Success: false, Message: "malformed course id: " + raw})
			return
		}
		ids = append(ids, id)
	}

	purchases, err := h.purchases.Checkout(c, userID, ids)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "checkout done", purchases)
}

// DELETE /api/v1/purchases/:courseId
func (h *PurchaseHandler) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	if err := h.purchases.Withdraw(c, userID, courseID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "purchase removed", nil)
}
