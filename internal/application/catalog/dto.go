package catalog

import (
	"time"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	ImageKey    string          `json:"image_key" binding:"max=500"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageKey    string          `json:"image_key,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToProductResponse maps a product aggregate to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageKey:    p.ImageKey,
		CategoryID:  p.CategoryID,
		Enabled:     p.Enabled,
		CreatedAt:   p.CreatedAt,
	}
}

// UploadURLRequest asks for a presigned product-image upload URL
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// UploadURLResponse carries the presigned URL and the storage key the
// client must pass back when creating the product
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}
