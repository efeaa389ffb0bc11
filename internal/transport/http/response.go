package handlers

import (
	"net/http"

	"courseledger/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Единый конверт ответа: {success, message, data}.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, response{Success: true, Message: message, Data: data})
}

func respondErr(c *gin.Context, err error) {
	f, ok := err.(*domain.Fault)
	if !ok {
		c.JSON(http.StatusInternalServerError, response{Success: false, Message: "internal error"})
		return
	}
	c.JSON(statusOf(f.Kind), response{Success: false, Message: f.Message})
}

func statusOf(kind domain.FaultKind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// currentUserID достает userId, положенный AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("userId")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "unauthorized"})
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response{Success: false, Message: "unauthorized"})
		return uuid.Nil, false
	}
	return uid, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "invalid " + name})
		return uuid.Nil, false
	}
	return uid, true
}
