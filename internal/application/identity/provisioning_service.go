package identity

import (
	"context"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/notification"
	"github.com/bizgrid/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const welcomeTemplate = "welcome.html"

// ProvisioningService creates a company together with its administrative
// account. The relational writes run inside one unit-of-work transaction;
// the identity subsystem call sits between insert and commit so a
// provisioning failure rolls the company back. The reverse gap remains:
// a commit failure after successful provisioning can strand an identity
// account, which the provisioner contract absorbs through idempotency.
type ProvisioningService struct {
	uowFactory  identity.UnitOfWorkFactory
	provisioner identity.AccountProvisioner
	publisher   shared.EventPublisher
	mailFrom    string
	logger      *zap.Logger
}

// NewProvisioningService creates a new ProvisioningService
func NewProvisioningService(
	uowFactory identity.UnitOfWorkFactory,
	provisioner identity.AccountProvisioner,
	publisher shared.EventPublisher,
	mailFrom string,
	logger *zap.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		uowFactory:  uowFactory,
		provisioner: provisioner,
		publisher:   publisher,
		mailFrom:    mailFrom,
		logger:      logger,
	}
}

// CreateCompanyWithAdmin provisions a new company and its admin account.
// Conflicts on legal name, tax ID, email and phone are checked in that
// order; the first hit wins and no transaction is opened.
func (s *ProvisioningService) CreateCompanyWithAdmin(ctx context.Context, req CreateCompanyRequest) (resp *CompanyResponse, err error) {
	company, err := identity.NewCompany(req.LegalName, req.TradeName, req.TaxID, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	if err := s.checkConflicts(ctx, uow.Companies(), company); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if uow.HasActiveTransaction() {
			if rbErr := uow.Rollback(ctx); rbErr != nil {
				s.logger.Error("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err := uow.Companies().Create(ctx, company); err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(company.ID, req.AdminFullName, req.AdminUsername, req.Email)
	if err != nil {
		return nil, err
	}
	admin.IsAdmin = true
	if err := uow.Users().Create(ctx, admin); err != nil {
		return nil, err
	}

	// not covered by the transaction above
	accountReq := identity.AdminAccountRequest{
		FullName:  req.AdminFullName,
		Username:  req.AdminUsername,
		Email:     company.Email,
		Password:  req.AdminPassword,
		Phone:     company.Phone,
		TaxID:     company.TaxID,
		Roles:     []string{"admin"},
		CompanyID: company.ID,
	}
	if err := s.provisioner.CreateCompleteUser(ctx, accountReq); err != nil {
		s.logger.Error("admin account provisioning failed",
			zap.String("company_id", company.ID.String()),
			zap.String("username", req.AdminUsername),
			zap.Error(err),
		)
		return nil, shared.NewDomainError("ADMIN_PROVISIONING_FAILED",
			fmt.Sprintf("Failed to provision the administrative account: %v", err))
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("company provisioned",
		zap.String("company_id", company.ID.String()),
		zap.String("legal_name", company.LegalName),
		zap.String("admin_username", admin.Username),
	)

	s.publishProvisioned(ctx, company, admin)

	response := ToCompanyResponse(company)
	return &response, nil
}

// checkConflicts runs the four existence checks in contractual order:
// legal name, tax ID, email, phone. The store's unique indexes remain
// the backstop for races between check and commit.
func (s *ProvisioningService) checkConflicts(ctx context.Context, companies identity.CompanyRepository, company *identity.Company) error {
	checks := []struct {
		spec shared.Specification
		code string
		msg  string
	}{
		{identity.CompanyByLegalName(company.LegalName), "LEGAL_NAME_TAKEN", "A company with this legal name already exists"},
		{identity.CompanyByTaxID(company.TaxID), "TAX_ID_TAKEN", "A company with this tax ID already exists"},
		{identity.CompanyByEmail(company.Email), "EMAIL_TAKEN", "A company with this email already exists"},
		{identity.CompanyByPhone(company.Phone), "PHONE_TAKEN", "A company with this phone number already exists"},
	}

	for _, check := range checks {
		exists, err := companies.Exists(ctx, check.spec)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(check.code, check.msg)
		}
	}
	return nil
}

// publishProvisioned emits the post-commit events: the CompanyCreated
// notification and the welcome email for the new admin. Neither failure
// affects the already-committed provisioning.
func (s *ProvisioningService) publishProvisioned(ctx context.Context, company *identity.Company, admin *identity.User) {
	events := company.GetDomainEvents()
	company.ClearDomainEvents()

	welcome := notification.NewSendEmailEvent(
		company.ID,
		s.mailFrom,
		admin.Email,
		"Welcome to "+company.TradeName,
		welcomeTemplate,
		map[string]string{
			"CompanyName": company.TradeName,
			"AdminName":   admin.FullName,
			"Username":    admin.Username,
		},
	)
	events = append(events, welcome)

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish provisioning events",
			zap.String("company_id", company.ID.String()),
			zap.Error(err),
		)
	}
}
