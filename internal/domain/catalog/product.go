package catalog

import (
	"strings"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by a company. ImageKey points at the
// object-storage key of the product image uploaded ahead of creation;
// if creation fails after the upload, the orphaned object is removed by
// the image-cleanup consumer.
type Product struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ImageKey    string          `gorm:"type:varchar(500)"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Enabled     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product under the given company
func NewProduct(companyID uuid.UUID, name, description string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Name:                name,
		Description:         strings.TrimSpace(description),
		Price:               price,
		Enabled:             true,
	}

	return product, nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
}

// SetImageKey records the object-storage key of the product image
func (p *Product) SetImageKey(key string) {
	p.ImageKey = strings.TrimSpace(key)
}

// EmbeddingText builds the textual representation handed to the
// embedding generator: name, description and category name, in that
// order, skipping empty parts.
func (p *Product) EmbeddingText() string {
	parts := make([]string, 0, 3)
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Category != nil && p.Category.Name != "" {
		parts = append(parts, p.Category.Name)
	}
	return strings.Join(parts, "\n")
}
