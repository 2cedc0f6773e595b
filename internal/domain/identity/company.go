package identity

import (
	"strings"
	"time"

	"github.com/bizgrid/backend/internal/domain/shared"
)

// CompanyStatus represents the lifecycle status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// Company is the tenant aggregate: the top-level business entity that
// owns staff, products and orders. Legal name, trade name, tax ID,
// email and phone must each be unique among non-deleted companies at
// the instant of creation; the database enforces this with partial
// unique indexes, the provisioning service pre-checks them for clean
// error messages.
type Company struct {
	shared.BaseAggregateRoot
	LegalName string        `gorm:"type:varchar(200);not null"`
	TradeName string        `gorm:"type:varchar(200);not null"`
	TaxID     string        `gorm:"type:varchar(50);not null;column:tax_id"`
	Email     string        `gorm:"type:varchar(200);not null"`
	Phone     string        `gorm:"type:varchar(50);not null"`
	Status    CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company with required fields
func NewCompany(legalName, tradeName, taxID, email, phone string) (*Company, error) {
	legalName = strings.TrimSpace(legalName)
	tradeName = strings.TrimSpace(tradeName)
	taxID = strings.TrimSpace(taxID)
	email = strings.TrimSpace(strings.ToLower(email))
	phone = strings.TrimSpace(phone)

	if legalName == "" {
		return nil, shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name is required")
	}
	if len(legalName) > 200 {
		return nil, shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot exceed 200 characters")
	}
	if tradeName == "" {
		tradeName = legalName
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Tax ID is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone is required")
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LegalName:         legalName,
		TradeName:         tradeName,
		TaxID:             taxID,
		Email:             email,
		Phone:             phone,
		Status:            CompanyStatusActive,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Update updates the company's display names
func (c *Company) Update(legalName, tradeName string) error {
	legalName = strings.TrimSpace(legalName)
	if legalName == "" {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name is required")
	}
	c.LegalName = legalName
	if tradeName = strings.TrimSpace(tradeName); tradeName != "" {
		c.TradeName = tradeName
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the company as inactive
func (c *Company) Deactivate() error {
	if c.Status == CompanyStatusInactive {
		return shared.ErrInvalidState
	}
	c.Status = CompanyStatusInactive
	c.UpdatedAt = time.Now()
	return nil
}

// Activate marks the company as active
func (c *Company) Activate() error {
	if c.Status == CompanyStatusActive {
		return shared.ErrInvalidState
	}
	c.Status = CompanyStatusActive
	c.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Specifications used by the provisioning conflict checks. Each one is
// a single independent predicate; the check order in the provisioning
// service is contractual.

// CompanyByLegalName matches a company by exact legal name
func CompanyByLegalName(legalName string) shared.Specification {
	return shared.Where("legal_name", strings.TrimSpace(legalName))
}

// CompanyByTradeName matches a company by exact trade name
func CompanyByTradeName(tradeName string) shared.Specification {
	return shared.Where("trade_name", strings.TrimSpace(tradeName))
}

// CompanyByTaxID matches a company by tax identifier
func CompanyByTaxID(taxID string) shared.Specification {
	return shared.Where("tax_id", strings.TrimSpace(taxID))
}

// CompanyByEmail matches a company by email (stored lowercase)
func CompanyByEmail(email string) shared.Specification {
	return shared.Where("email", strings.TrimSpace(strings.ToLower(email)))
}

// CompanyByPhone matches a company by phone
func CompanyByPhone(phone string) shared.Specification {
	return shared.Where("phone", strings.TrimSpace(phone))
}
