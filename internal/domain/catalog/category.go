package catalog

import (
	"strings"

	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products for browsing and search
type Category struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category under the given company
func NewCategory(companyID uuid.UUID, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name is required")
	}
	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(companyID),
		Name:                name,
		Description:         strings.TrimSpace(description),
	}, nil
}
