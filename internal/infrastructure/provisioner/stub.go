// Package provisioner provides identity-subsystem integrations for
// administrative account creation.
package provisioner

import (
	"context"
	"sync"

	"github.com/bizgrid/backend/internal/domain/identity"
	"go.uber.org/zap"
)

var _ identity.AccountProvisioner = (*StubProvisioner)(nil)

// StubProvisioner stands in for the external identity subsystem in
// development wiring. It records requests and is idempotent on username:
// a repeated request for the same username succeeds as a no-op.
type StubProvisioner struct {
	logger *zap.Logger

	mu   sync.Mutex
	seen map[string]identity.AdminAccountRequest
}

// NewStubProvisioner creates a new StubProvisioner
func NewStubProvisioner(logger *zap.Logger) *StubProvisioner {
	return &StubProvisioner{
		logger: logger,
		seen:   make(map[string]identity.AdminAccountRequest),
	}
}

// CreateCompleteUser records the account request and logs it
func (p *StubProvisioner) CreateCompleteUser(ctx context.Context, req identity.AdminAccountRequest) error {
	p.mu.Lock()
	_, repeat := p.seen[req.Username]
	p.seen[req.Username] = req
	p.mu.Unlock()

	p.logger.Info("admin account provisioned (stub)",
		zap.String("username", req.Username),
		zap.String("company_id", req.CompanyID.String()),
		zap.Bool("repeat", repeat),
	)
	return nil
}

// Provisioned reports whether an account was created for the username
func (p *StubProvisioner) Provisioned(username string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.seen[username]
	return ok
}
