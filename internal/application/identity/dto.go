package identity

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// CreateCompanyRequest is the input for provisioning a company together
// with its administrative account
type CreateCompanyRequest struct {
	LegalName string `json:"legal_name" binding:"required,min=1,max=200"`
	TradeName string `json:"trade_name" binding:"max=200"`
	TaxID     string `json:"tax_id" binding:"required,min=1,max=50"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Phone     string `json:"phone" binding:"required,min=1,max=50"`

	AdminFullName string `json:"admin_full_name" binding:"required,min=1,max=200"`
	AdminUsername string `json:"admin_username" binding:"required,min=1,max=100"`
	AdminPassword string `json:"admin_password" binding:"required,min=8,max=128"`
}

// CompanyResponse is the outward representation of a company
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	LegalName string    `json:"legal_name"`
	TradeName string    `json:"trade_name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCompanyResponse maps a company aggregate to its response form
func ToCompanyResponse(c *identity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}
