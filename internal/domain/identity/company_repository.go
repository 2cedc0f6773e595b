package identity

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies.
// Exists and FindOne execute Specifications; they are read-only.
// Create enqueues an insert which is flushed by the owning unit of
// work's transaction when one is active.
type CompanyRepository interface {
	Exists(ctx context.Context, spec shared.Specification) (bool, error)
	FindOne(ctx context.Context, spec shared.Specification) (*Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Create(ctx context.Context, company *Company) error
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}
