package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/identity"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GORM-based company repository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Exists reports whether any company matches the specification
func (r *GormCompanyRepository) Exists(ctx context.Context, spec shared.Specification) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.Company{})
	if err := applySpecification(query, spec).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return count > 0, nil
}

// FindOne retrieves the first company matching the specification
func (r *GormCompanyRepository) FindOne(ctx context.Context, spec shared.Specification) (*identity.Company, error) {
	var company identity.Company
	query := applySpecification(r.db.WithContext(ctx), spec)
	if err := query.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

// FindByID retrieves a company by its unique identifier
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var company identity.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by id: %w", err)
	}
	return &company, nil
}

// Create persists a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// Update persists changes to an existing company
func (r *GormCompanyRepository) Update(ctx context.Context, company *identity.Company) error {
	if err := r.db.WithContext(ctx).Save(company).Error; err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

// Delete soft-deletes a company by its unique identifier
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Company{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
