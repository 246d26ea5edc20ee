// internal/handlers/supplier.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
	}
}

// GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orgID, ok := queryID(c, "organization_id")
	if !ok {
		return
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), services.SupplierFilter{
		PaginationParams: params,
		OrganizationID:   orgID,
		Type:             models.SupplierType(c.Query("type")),
		Country:          c.Query("country"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, suppliers, total, params)
}

// GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	supplier, err := h.supplierService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, supplier)
}

// POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req services.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, supplier)
}

// PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	var req services.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, supplier)
}

// DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Supplier")
}

// POST /suppliers/:id/calculate-risk
func (h *SupplierHandler) CalculateRisk(c *gin.Context) {
	id, ok := paramID(c, "id", "supplier")
	if !ok {
		return
	}

	assessment, err := h.supplierService.CalculateRisk(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, assessment)
}
