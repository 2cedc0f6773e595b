package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EmbeddingsHandler consumes GenerateProductEmbeddings events and stores
// an embedding vector for the product's searchable text.
type EmbeddingsHandler struct {
	productRepo   catalog.ProductRepository
	embeddingRepo catalog.EmbeddingRepository
	generator     EmbeddingGenerator
	logger        *zap.Logger
}

// NewEmbeddingsHandler creates a new EmbeddingsHandler
func NewEmbeddingsHandler(
	productRepo catalog.ProductRepository,
	embeddingRepo catalog.EmbeddingRepository,
	generator EmbeddingGenerator,
	logger *zap.Logger,
) *EmbeddingsHandler {
	return &EmbeddingsHandler{
		productRepo:   productRepo,
		embeddingRepo: embeddingRepo,
		generator:     generator,
		logger:        logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *EmbeddingsHandler) EventTypes() []string {
	return []string{catalog.EventTypeGenerateProductEmbeddings}
}

// Handle builds and persists the embedding for the product named by the
// event. A product that has disappeared since publication is not an error.
func (h *EmbeddingsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*catalog.GenerateProductEmbeddingsEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	product, err := h.productRepo.FindByIDWithCategory(ctx, e.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("skipping embeddings for missing product",
				zap.String("product_id", e.ProductID.String()),
			)
			return nil
		}
		return fmt.Errorf("failed to load product: %w", err)
	}

	text := product.EmbeddingText()
	if text == "" {
		h.logger.Warn("product has no text to embed",
			zap.String("product_id", e.ProductID.String()),
		)
		return nil
	}

	vector, err := h.generator.Generate(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	embedding := catalog.NewProductEmbedding(product.CompanyID, product.ID, text, vector)
	if err := h.embeddingRepo.Create(ctx, embedding); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	h.logger.Info("product embedding stored",
		zap.String("product_id", product.ID.String()),
		zap.Int("dimensions", len(vector)),
	)
	return nil
}
