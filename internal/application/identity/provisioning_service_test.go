package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/notification"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompanyRepo answers existence checks from a field set and records
// the order in which fields were checked
type fakeCompanyRepo struct {
	taken        map[string]bool
	checkedOrder []string
	existsErr    error
	createErr    error
	created      []*identity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{taken: make(map[string]bool)}
}

func (r *fakeCompanyRepo) Exists(ctx context.Context, spec shared.Specification) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	field := spec.Conditions()[0].Field
	r.checkedOrder = append(r.checkedOrder, field)
	return r.taken[field], nil
}

func (r *fakeCompanyRepo) FindOne(ctx context.Context, spec shared.Specification) (*identity.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *identity.Company) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, company)
	return nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, company *identity.Company) error { return nil }
func (r *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

type fakeUserRepo struct {
	createErr error
	created   []*identity.User
}

func (r *fakeUserRepo) Exists(ctx context.Context, spec shared.Specification) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, spec shared.Specification) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *identity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *identity.User) error { return nil }

// fakeUnitOfWork tracks the transaction lifecycle without a database
type fakeUnitOfWork struct {
	companies *fakeCompanyRepo
	users     *fakeUserRepo

	active    bool
	begins    int
	commits   int
	rollbacks int
	commitErr error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return shared.NewDomainError("TRANSACTION_ACTIVE", "a transaction is already in progress")
	}
	u.active = true
	u.begins++
	return nil
}

func (u *fakeUnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return shared.NewDomainError("NO_TRANSACTION", "no transaction in progress")
	}
	u.active = false
	u.commits++
	return u.commitErr
}

func (u *fakeUnitOfWork) Rollback(ctx context.Context) error {
	if !u.active {
		return shared.NewDomainError("NO_TRANSACTION", "no transaction in progress")
	}
	u.active = false
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) HasActiveTransaction() bool            { return u.active }
func (u *fakeUnitOfWork) Companies() identity.CompanyRepository { return u.companies }
func (u *fakeUnitOfWork) Users() identity.UserRepository        { return u.users }

type fakeUoWFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUoWFactory) New() identity.UnitOfWork { return f.uow }

type fakeProvisioner struct {
	err      error
	requests []identity.AdminAccountRequest
}

func (p *fakeProvisioner) CreateCompleteUser(ctx context.Context, req identity.AdminAccountRequest) error {
	if p.err != nil {
		return p.err
	}
	p.requests = append(p.requests, req)
	return nil
}

type fakePublisher struct {
	events []shared.DomainEvent
}

func (p *fakePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type provisioningFixture struct {
	service     *ProvisioningService
	uow         *fakeUnitOfWork
	companies   *fakeCompanyRepo
	users       *fakeUserRepo
	provisioner *fakeProvisioner
	publisher   *fakePublisher
}

func newProvisioningFixture() *provisioningFixture {
	companies := newFakeCompanyRepo()
	users := &fakeUserRepo{}
	uow := &fakeUnitOfWork{companies: companies, users: users}
	provisioner := &fakeProvisioner{}
	publisher := &fakePublisher{}

	service := NewProvisioningService(
		&fakeUoWFactory{uow: uow},
		provisioner,
		publisher,
		"noreply@bizgrid.test",
		zap.NewNop(),
	)

	return &provisioningFixture{
		service:     service,
		uow:         uow,
		companies:   companies,
		users:       users,
		provisioner: provisioner,
		publisher:   publisher,
	}
}

func validRequest() CreateCompanyRequest {
	return CreateCompanyRequest{
		LegalName:     "Acme Foods LLC",
		TradeName:     "Acme Foods",
		TaxID:         "12-3456789",
		Email:         "owner@acme.test",
		Phone:         "+15550100",
		AdminFullName: "Ada Smith",
		AdminUsername: "ada",
		AdminPassword: "correct-horse",
	}
}

func TestProvisioningService_CreateCompanyWithAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions company, admin row and identity account", func(t *testing.T) {
		f := newProvisioningFixture()

		resp, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "Acme Foods LLC", resp.LegalName)
		assert.Equal(t, "active", resp.Status)

		require.Len(t, f.companies.created, 1)
		require.Len(t, f.users.created, 1)
		assert.True(t, f.users.created[0].IsAdmin)
		assert.Equal(t, f.companies.created[0].ID, f.users.created[0].CompanyID)

		require.Len(t, f.provisioner.requests, 1)
		assert.Equal(t, "ada", f.provisioner.requests[0].Username)
		assert.Equal(t, []string{"admin"}, f.provisioner.requests[0].Roles)

		assert.Equal(t, 1, f.uow.begins)
		assert.Equal(t, 1, f.uow.commits)
		assert.Equal(t, 0, f.uow.rollbacks)
		assert.False(t, f.uow.HasActiveTransaction())
	})

	t.Run("publishes company created and welcome email after commit", func(t *testing.T) {
		f := newProvisioningFixture()

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())
		require.NoError(t, err)

		require.Len(t, f.publisher.events, 2)
		assert.Equal(t, identity.EventTypeCompanyCreated, f.publisher.events[0].EventType())

		email, ok := f.publisher.events[1].(*notification.SendEmailEvent)
		require.True(t, ok)
		assert.Equal(t, "owner@acme.test", email.To)
		assert.Equal(t, "noreply@bizgrid.test", email.From)
		assert.Equal(t, "welcome.html", email.TemplatePath)
		assert.Equal(t, "Acme Foods", email.Model["CompanyName"])
	})

	t.Run("checks conflicts in contractual order", func(t *testing.T) {
		f := newProvisioningFixture()

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, []string{"legal_name", "tax_id", "email", "phone"}, f.companies.checkedOrder)
	})

	t.Run("legal name conflict wins and stops further checks", func(t *testing.T) {
		f := newProvisioningFixture()
		f.companies.taken["legal_name"] = true
		f.companies.taken["tax_id"] = true

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LEGAL_NAME_TAKEN", domainErr.Code)
		assert.Equal(t, []string{"legal_name"}, f.companies.checkedOrder)
		assert.Equal(t, 0, f.uow.begins)
	})

	t.Run("duplicate tax ID is rejected before any transaction", func(t *testing.T) {
		f := newProvisioningFixture()
		f.companies.taken["tax_id"] = true

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TAX_ID_TAKEN", domainErr.Code)
		assert.Equal(t, []string{"legal_name", "tax_id"}, f.companies.checkedOrder)
		assert.Equal(t, 0, f.uow.begins)
		assert.Empty(t, f.companies.created)
		assert.Empty(t, f.users.created)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("email and phone conflicts report their own codes", func(t *testing.T) {
		for field, code := range map[string]string{"email": "EMAIL_TAKEN", "phone": "PHONE_TAKEN"} {
			f := newProvisioningFixture()
			f.companies.taken[field] = true

			_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, code, domainErr.Code)
		}
	})

	t.Run("provisioner failure rolls back and surfaces its own code", func(t *testing.T) {
		f := newProvisioningFixture()
		f.provisioner.err = errors.New("identity subsystem unreachable")

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ADMIN_PROVISIONING_FAILED", domainErr.Code)
		assert.Equal(t, 0, f.uow.commits)
		assert.Equal(t, 1, f.uow.rollbacks)
		assert.False(t, f.uow.HasActiveTransaction())
		assert.Empty(t, f.publisher.events)
	})

	t.Run("company insert failure rolls back and propagates untranslated", func(t *testing.T) {
		f := newProvisioningFixture()
		insertErr := errors.New("connection reset")
		f.companies.createErr = insertErr

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		assert.ErrorIs(t, err, insertErr)
		assert.Equal(t, 1, f.uow.rollbacks)
		assert.Equal(t, 0, f.uow.commits)
	})

	t.Run("admin row failure rolls back before provisioning", func(t *testing.T) {
		f := newProvisioningFixture()
		f.users.createErr = errors.New("disk full")

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		assert.Error(t, err)
		assert.Equal(t, 1, f.uow.rollbacks)
		assert.Empty(t, f.provisioner.requests)
	})

	t.Run("commit failure propagates and suppresses events", func(t *testing.T) {
		f := newProvisioningFixture()
		commitErr := errors.New("serialization failure")
		f.uow.commitErr = commitErr

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		assert.ErrorIs(t, err, commitErr)
		assert.Empty(t, f.publisher.events)
		assert.False(t, f.uow.HasActiveTransaction())
	})

	t.Run("invalid input fails before any repository call", func(t *testing.T) {
		f := newProvisioningFixture()
		req := validRequest()
		req.LegalName = "   "

		_, err := f.service.CreateCompanyWithAdmin(ctx, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_LEGAL_NAME", domainErr.Code)
		assert.Empty(t, f.companies.checkedOrder)
		assert.Equal(t, 0, f.uow.begins)
	})

	t.Run("existence check fault propagates without a transaction", func(t *testing.T) {
		f := newProvisioningFixture()
		checkErr := errors.New("connection refused")
		f.companies.existsErr = checkErr

		_, err := f.service.CreateCompanyWithAdmin(ctx, validRequest())

		assert.ErrorIs(t, err, checkErr)
		assert.Equal(t, 0, f.uow.begins)
	})
}
