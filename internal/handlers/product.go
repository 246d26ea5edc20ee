// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	supplierID, ok := queryID(c, "supplier_id")
	if !ok {
		return
	}

	filter := services.ProductFilter{
		PaginationParams: params,
		SupplierID:       supplierID,
		Category:         c.Query("category"),
	}
	if verifiedStr := c.Query("verified"); verifiedStr != "" {
		if verified, err := strconv.ParseBool(verifiedStr); err == nil {
			filter.Verified = &verified
		}
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, total, params)
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /products/supplier/:supplierId
func (h *ProductHandler) ListBySupplier(c *gin.Context) {
	supplierID, ok := paramID(c, "supplierId", "supplier")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListBySupplier(c.Request.Context(), supplierID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, total, params)
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// PUT /products/:id/verify
func (h *ProductHandler) Verify(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	var req services.VerifyProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Verify(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Product")
}
