package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations. Creating a
// product publishes a GenerateProductEmbeddings event; when creation fails
// after the image object was already uploaded, it publishes a
// ProductImageCreationFailed event so the cleanup consumer can remove the
// orphaned object.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ObjectStorage
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ObjectStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create creates a new product for a company
func (s *ProductService) Create(ctx context.Context, companyID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	nameTaken := shared.Where("company_id", companyID).And("name", req.Name)
	exists, err := s.productRepo.Exists(ctx, nameTaken)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(companyID, req.Name, req.Description, req.Price)
	if err != nil {
		s.compensateImage(ctx, companyID, req.ImageKey)
		return nil, err
	}
	if req.CategoryID != nil {
		product.SetCategory(*req.CategoryID)
	}
	if req.ImageKey != "" {
		product.SetImageKey(req.ImageKey)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.compensateImage(ctx, companyID, req.ImageKey)
		return nil, err
	}

	if err := s.publisher.Publish(ctx, catalog.NewGenerateProductEmbeddingsEvent(companyID, product.ID)); err != nil {
		s.logger.Error("failed to publish embeddings event",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.String("name", product.Name),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GenerateUploadURL issues a presigned URL for a product-image upload.
// The returned storage key is echoed back on the create request.
func (s *ProductService) GenerateUploadURL(ctx context.Context, companyID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	ext := path.Ext(req.FileName)
	storageKey := fmt.Sprintf("products/%s/%s%s", companyID, uuid.New(), ext)

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &UploadURLResponse{
		UploadURL:  url,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// compensateImage publishes a cleanup event for an already-uploaded image
// whose product row never materialized. Publishing failures are logged and
// swallowed; the caller's error is the one that matters.
func (s *ProductService) compensateImage(ctx context.Context, companyID uuid.UUID, imageKey string) {
	if imageKey == "" {
		return
	}
	if err := s.publisher.Publish(ctx, catalog.NewProductImageCreationFailedEvent(companyID, imageKey)); err != nil {
		s.logger.Error("failed to publish image cleanup event",
			zap.String("storage_key", imageKey),
			zap.Error(err),
		)
	}
}
