package handler

import (
	"errors"

	"github.com/bizgrid/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyIDHeader scopes catalog requests to a company. Authentication is
// handled upstream; the gateway injects this header from the session.
const CompanyIDHeader = "X-Company-ID"

func getCompanyID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(CompanyIDHeader)
	if raw == "" {
		return uuid.Nil, errors.New("company ID not found in request")
	}
	return uuid.Parse(raw)
}

// ProductHandler exposes the product catalog over HTTP.
type ProductHandler struct {
	BaseHandler
	products *catalog.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products *catalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create adds a product to the calling company's catalog.
func (h *ProductHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing company ID")
		return
	}

	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.products.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID retrieves a single product.
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GenerateUploadURL issues a presigned URL for uploading a product image
// ahead of product creation.
func (h *ProductHandler) GenerateUploadURL(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid or missing company ID")
		return
	}

	var req catalog.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	upload, err := h.products.GenerateUploadURL(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}
