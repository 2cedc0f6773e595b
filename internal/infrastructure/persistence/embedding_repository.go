package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmbeddingRepository implements catalog.EmbeddingRepository using GORM
type GormEmbeddingRepository struct {
	db *gorm.DB
}

// NewGormEmbeddingRepository creates a new GORM-based embedding repository
func NewGormEmbeddingRepository(db *gorm.DB) *GormEmbeddingRepository {
	return &GormEmbeddingRepository{db: db}
}

// Create persists a new product embedding
func (r *GormEmbeddingRepository) Create(ctx context.Context, embedding *catalog.ProductEmbedding) error {
	if err := r.db.WithContext(ctx).Create(embedding).Error; err != nil {
		return fmt.Errorf("failed to create product embedding: %w", err)
	}
	return nil
}

// FindByProductID retrieves the embedding stored for a product
func (r *GormEmbeddingRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*catalog.ProductEmbedding, error) {
	var embedding catalog.ProductEmbedding
	if err := r.db.WithContext(ctx).First(&embedding, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find embedding for product: %w", err)
	}
	return &embedding, nil
}
