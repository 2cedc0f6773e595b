package catalog

import (
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeGenerateProductEmbeddings  = "GenerateProductEmbeddings"
	EventTypeProductImageCreationFailed = "ProductImageCreationFailed"
)

// GenerateProductEmbeddingsEvent asks the embeddings consumer to build
// and persist a search embedding for a product, off the request path.
type GenerateProductEmbeddingsEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
}

// NewGenerateProductEmbeddingsEvent creates a new GenerateProductEmbeddingsEvent
func NewGenerateProductEmbeddingsEvent(companyID, productID uuid.UUID) *GenerateProductEmbeddingsEvent {
	return &GenerateProductEmbeddingsEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGenerateProductEmbeddings, AggregateTypeProduct, productID, companyID),
		ProductID:       productID,
	}
}

// ProductImageCreationFailedEvent compensates a failed product creation
// whose image upload already happened: the consumer deletes the
// orphaned object identified by StorageKey.
type ProductImageCreationFailedEvent struct {
	shared.BaseDomainEvent
	StorageKey string `json:"storage_key"`
}

// NewProductImageCreationFailedEvent creates a new ProductImageCreationFailedEvent.
// The product row never existed, so the aggregate ID is the nil UUID.
func NewProductImageCreationFailedEvent(companyID uuid.UUID, storageKey string) *ProductImageCreationFailedEvent {
	return &ProductImageCreationFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductImageCreationFailed, AggregateTypeProduct, uuid.Nil, companyID),
		StorageKey:      storageKey,
	}
}
