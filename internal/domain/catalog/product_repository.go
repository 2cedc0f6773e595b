package catalog

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Exists(ctx context.Context, spec shared.Specification) (bool, error)
	FindOne(ctx context.Context, spec shared.Specification) (*Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDWithCategory loads a product together with its category,
	// as needed for building the embedding text.
	FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
}
