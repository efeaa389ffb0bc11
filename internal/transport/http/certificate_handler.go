package handlers

import (
	"net/http"

	"courseledger/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type CertificateHandler struct {
	certs *usecase.CertificateUseCase
}

func NewCertificateHandler(certs *usecase.CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{certs: certs}
}

// GET /api/v1/certificates
func (h *CertificateHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	certs, err := h.certs.List(c, userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "certificates", certs)
}

// POST /api/v1/certificates/:courseId
func (h *CertificateHandler) Issue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	cert, err := h.certs.Issue(c, userID, courseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "certificate issued", cert)
}
