package catalog

import (
	"context"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductEmbedding is the stored vector representation of a product,
// tied to the product and its owning company. The similarity search
// over these vectors lives elsewhere; this core only produces them.
type ProductEmbedding struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Text      string    `gorm:"type:text;not null"`
	Vector    []float32 `gorm:"serializer:json;type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (ProductEmbedding) TableName() string {
	return "product_embeddings"
}

// NewProductEmbedding wraps a generated vector in a model tied to the
// product and its owning company
func NewProductEmbedding(companyID, productID uuid.UUID, text string, vector []float32) *ProductEmbedding {
	return &ProductEmbedding{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		ProductID:           productID,
		Text:                text,
		Vector:              vector,
	}
}

// EmbeddingRepository persists product embeddings
type EmbeddingRepository interface {
	Create(ctx context.Context, embedding *ProductEmbedding) error
	FindByProductID(ctx context.Context, productID uuid.UUID) (*ProductEmbedding, error)
}
