package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageCleanupHandler consumes ProductImageCreationFailed events and
// removes the orphaned image object from storage.
type ImageCleanupHandler struct {
	storage ObjectStorage
	logger  *zap.Logger
}

// NewImageCleanupHandler creates a new ImageCleanupHandler
func NewImageCleanupHandler(storage ObjectStorage, logger *zap.Logger) *ImageCleanupHandler {
	return &ImageCleanupHandler{
		storage: storage,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *ImageCleanupHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductImageCreationFailed}
}

// Handle deletes the orphaned object. An event without a storage key is a
// no-op; there is nothing to clean up.
func (h *ImageCleanupHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*catalog.ProductImageCreationFailedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	key := strings.TrimSpace(e.StorageKey)
	if key == "" {
		h.logger.Warn("image cleanup event without a storage key",
			zap.String("event_id", e.EventID().String()),
		)
		return nil
	}

	h.logger.Info("removing orphaned product image",
		zap.String("storage_key", key),
		zap.String("company_id", e.CompanyID().String()),
	)

	failed, err := h.storage.DeleteObjects(ctx, []string{key})
	if err != nil {
		return fmt.Errorf("failed to delete orphaned image: %w", err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("storage rejected deletion of %q", failed[0])
	}

	h.logger.Info("orphaned product image removed", zap.String("storage_key", key))
	return nil
}
