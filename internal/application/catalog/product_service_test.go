package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizgrid/backend/internal/domain/catalog"
	"github.com/bizgrid/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	exists    bool
	existsErr error
	createErr error
	created   []*catalog.Product
	byID      map[uuid.UUID]*catalog.Product
	findErr   error
	findCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) Exists(ctx context.Context, spec shared.Specification) (bool, error) {
	return r.exists, r.existsErr
}

func (r *fakeProductRepo) FindOne(ctx context.Context, spec shared.Specification) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) Create(ctx context.Context, product *catalog.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, product)
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *catalog.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

type fakeCategoryRepo struct {
	byID map[uuid.UUID]*catalog.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[uuid.UUID]*catalog.Category)}
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *catalog.Category) error { return nil }
func (r *fakeCategoryRepo) Update(ctx context.Context, category *catalog.Category) error { return nil }

type fakeStorage struct {
	deleteCalls  [][]string
	deleteErr    error
	failedKeys   []string
	uploadURLErr error
}

func (s *fakeStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if s.uploadURLErr != nil {
		return "", time.Time{}, s.uploadURLErr
	}
	return "https://storage.test/upload/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *fakeStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://storage.test/download/" + storageKey, time.Now().Add(expiresIn), nil
}

func (s *fakeStorage) DeleteObjects(ctx context.Context, storageKeys []string) ([]string, error) {
	s.deleteCalls = append(s.deleteCalls, storageKeys)
	return s.failedKeys, s.deleteErr
}

func (s *fakeStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	return true, nil
}

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type productFixture struct {
	service    *ProductService
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	storage    *fakeStorage
	publisher  *capturingPublisher
}

func newProductFixture() *productFixture {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	storage := &fakeStorage{}
	publisher := &capturingPublisher{}

	return &productFixture{
		service:    NewProductService(products, categories, storage, publisher, zap.NewNop()),
		products:   products,
		categories: categories,
		storage:    storage,
		publisher:  publisher,
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("creates product and publishes embeddings request", func(t *testing.T) {
		f := newProductFixture()

		resp, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:  "Espresso Beans",
			Price: decimal.NewFromInt(18),
		})

		require.NoError(t, err)
		require.Len(t, f.products.created, 1)
		assert.Equal(t, companyID, resp.CompanyID)

		require.Len(t, f.publisher.events, 1)
		evt, ok := f.publisher.events[0].(*catalog.GenerateProductEmbeddingsEvent)
		require.True(t, ok)
		assert.Equal(t, resp.ID, evt.ProductID)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		f := newProductFixture()
		f.products.exists = true

		_, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:  "Espresso Beans",
			Price: decimal.NewFromInt(18),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		assert.Empty(t, f.products.created)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newProductFixture()
		categoryID := uuid.New()

		_, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:       "Espresso Beans",
			Price:      decimal.NewFromInt(18),
			CategoryID: &categoryID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("persistence failure after image upload triggers compensation", func(t *testing.T) {
		f := newProductFixture()
		f.products.createErr = errors.New("constraint violation")

		_, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:     "Espresso Beans",
			Price:    decimal.NewFromInt(18),
			ImageKey: "products/acme/beans.png",
		})

		require.Error(t, err)
		require.Len(t, f.publisher.events, 1)
		evt, ok := f.publisher.events[0].(*catalog.ProductImageCreationFailedEvent)
		require.True(t, ok)
		assert.Equal(t, "products/acme/beans.png", evt.StorageKey)
	})

	t.Run("persistence failure without an image publishes nothing", func(t *testing.T) {
		f := newProductFixture()
		f.products.createErr = errors.New("constraint violation")

		_, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:  "Espresso Beans",
			Price: decimal.NewFromInt(18),
		})

		require.Error(t, err)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("invalid product input triggers compensation for uploaded image", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.service.Create(ctx, companyID, CreateProductRequest{
			Name:     "  ",
			Price:    decimal.NewFromInt(18),
			ImageKey: "products/acme/beans.png",
		})

		require.Error(t, err)
		require.Len(t, f.publisher.events, 1)
		_, ok := f.publisher.events[0].(*catalog.ProductImageCreationFailedEvent)
		assert.True(t, ok)
	})
}

func TestProductService_GenerateUploadURL(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("returns a key scoped to the company with the file extension", func(t *testing.T) {
		f := newProductFixture()

		resp, err := f.service.GenerateUploadURL(ctx, companyID, UploadURLRequest{
			FileName:    "beans.png",
			ContentType: "image/png",
		})

		require.NoError(t, err)
		assert.Contains(t, resp.StorageKey, "products/"+companyID.String()+"/")
		assert.Contains(t, resp.StorageKey, ".png")
		assert.Contains(t, resp.UploadURL, resp.StorageKey)
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		f := newProductFixture()
		f.storage.uploadURLErr = errors.New("endpoint unreachable")

		_, err := f.service.GenerateUploadURL(ctx, companyID, UploadURLRequest{
			FileName:    "beans.png",
			ContentType: "image/png",
		})
		assert.Error(t, err)
	})
}
