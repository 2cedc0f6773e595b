package identity

import (
	"github.com/bizgrid/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated     = "CompanyCreated"
	EventTypeCompanyDeactivated = "CompanyDeactivated"
)

// CompanyCreatedEvent is published when a new company is provisioned
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	Email     string `json:"email"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID, company.ID),
		LegalName:       company.LegalName,
		TradeName:       company.TradeName,
		Email:           company.Email,
	}
}

// CompanyDeactivatedEvent is published when a company is deactivated
type CompanyDeactivatedEvent struct {
	shared.BaseDomainEvent
	LegalName string `json:"legal_name"`
}

// NewCompanyDeactivatedEvent creates a new CompanyDeactivatedEvent
func NewCompanyDeactivatedEvent(company *Company) *CompanyDeactivatedEvent {
	return &CompanyDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyDeactivated, AggregateTypeCompany, company.ID, company.ID),
		LegalName:       company.LegalName,
	}
}
