package handler

import (
	"github.com/bizgrid/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// CompanyHandler exposes company provisioning over HTTP.
type CompanyHandler struct {
	BaseHandler
	provisioning *identity.ProvisioningService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(provisioning *identity.ProvisioningService) *CompanyHandler {
	return &CompanyHandler{provisioning: provisioning}
}

// Create registers a company together with its initial admin account.
// Uniqueness conflicts come back as 409 with the colliding attribute in
// the error code.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req identity.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.provisioning.CreateCompanyWithAdmin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, company)
}
