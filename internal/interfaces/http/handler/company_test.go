package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appidentity "github.com/bizgrid/backend/internal/application/identity"
	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompanyRepo struct {
	taken map[string]bool
}

func (r *stubCompanyRepo) Exists(_ context.Context, spec shared.Specification) (bool, error) {
	return r.taken[spec.Conditions()[0].Field], nil
}

func (r *stubCompanyRepo) FindOne(context.Context, shared.Specification) (*identity.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) FindByID(context.Context, uuid.UUID) (*identity.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCompanyRepo) Create(context.Context, *identity.Company) error { return nil }

func (r *stubCompanyRepo) Update(context.Context, *identity.Company) error { return nil }

func (r *stubCompanyRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubUserRepo struct{}

func (r *stubUserRepo) Exists(context.Context, shared.Specification) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) FindOne(context.Context, shared.Specification) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) FindByID(context.Context, uuid.UUID) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (r *stubUserRepo) Create(context.Context, *identity.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *identity.User) error { return nil }

type stubUnitOfWork struct {
	companies *stubCompanyRepo
	users     *stubUserRepo
	active    bool
}

func (u *stubUnitOfWork) Begin(context.Context) error {
	u.active = true
	return nil
}

func (u *stubUnitOfWork) Commit(context.Context) error {
	u.active = false
	return nil
}

func (u *stubUnitOfWork) Rollback(context.Context) error {
	u.active = false
	return nil
}

func (u *stubUnitOfWork) HasActiveTransaction() bool { return u.active }

func (u *stubUnitOfWork) Companies() identity.CompanyRepository { return u.companies }

func (u *stubUnitOfWork) Users() identity.UserRepository { return u.users }

type stubUoWFactory struct {
	uow *stubUnitOfWork
}

func (f *stubUoWFactory) New() identity.UnitOfWork { return f.uow }

type stubProvisioner struct {
	err error
}

func (p *stubProvisioner) CreateCompleteUser(context.Context, identity.AdminAccountRequest) error {
	return p.err
}

type stubPublisher struct{}

func (p *stubPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }

func newCompanyHandler(taken map[string]bool, provisionErr error) *CompanyHandler {
	if taken == nil {
		taken = map[string]bool{}
	}
	uow := &stubUnitOfWork{
		companies: &stubCompanyRepo{taken: taken},
		users:     &stubUserRepo{},
	}
	service := appidentity.NewProvisioningService(
		&stubUoWFactory{uow: uow},
		&stubProvisioner{err: provisionErr},
		&stubPublisher{},
		"noreply@bizgrid.test",
		zap.NewNop(),
	)
	return NewCompanyHandler(service)
}

func validCompanyBody() map[string]any {
	return map[string]any{
		"legal_name":      "Acme Foods LLC",
		"trade_name":      "Acme Foods",
		"tax_id":          "12-3456789",
		"email":           "owner@acme.test",
		"phone":           "+15550100",
		"admin_full_name": "Ada Smith",
		"admin_username":  "ada",
		"admin_password":  "s3cret-pass",
	}
}

func postCompany(t *testing.T, h *CompanyHandler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/identity/companies", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	return w
}

func TestCompanyHandlerCreate(t *testing.T) {
	t.Run("returns 201 with the provisioned company", func(t *testing.T) {
		h := newCompanyHandler(nil, nil)

		w := postCompany(t, h, validCompanyBody())

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Acme Foods LLC", data["legal_name"])
		assert.NotEmpty(t, data["id"])
	})

	t.Run("returns 409 with the colliding attribute code", func(t *testing.T) {
		h := newCompanyHandler(map[string]bool{"email": true}, nil)

		w := postCompany(t, h, validCompanyBody())

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EMAIL_TAKEN", resp.Error.Code)
	})

	t.Run("returns 400 on a body failing binding", func(t *testing.T) {
		h := newCompanyHandler(nil, nil)

		body := validCompanyBody()
		body["email"] = "not-an-email"
		w := postCompany(t, h, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 502 when the identity subsystem fails", func(t *testing.T) {
		h := newCompanyHandler(nil, errors.New("identity subsystem unavailable"))

		w := postCompany(t, h, validCompanyBody())

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ADMIN_PROVISIONING_FAILED", resp.Error.Code)
	})
}
