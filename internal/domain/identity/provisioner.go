package identity

import (
	"context"

	"github.com/google/uuid"
)

// AdminAccountRequest is the value bundle passed whole into the
// identity subsystem when provisioning the administrative login paired
// with a new company. It is not a stored entity here.
type AdminAccountRequest struct {
	FullName  string
	Username  string
	Email     string
	Password  string
	Phone     string
	TaxID     string
	Roles     []string
	CompanyID uuid.UUID
}

// AccountProvisioner creates complete login accounts in the external
// identity subsystem. The call is not covered by the relational
// transaction: if the relational side rolls back afterwards, a
// partially created account may remain. Implementations should be
// idempotent on username/email so a repeated provisioning attempt
// converges instead of duplicating.
type AccountProvisioner interface {
	CreateCompleteUser(ctx context.Context, req AdminAccountRequest) error
}
