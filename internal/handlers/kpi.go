// internal/handlers/kpi.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type KPIHandler struct {
	kpiService *services.KPIService
}

func NewKPIHandler(kpiService *services.KPIService) *KPIHandler {
	return &KPIHandler{
		kpiService: kpiService,
	}
}

// GET /kpis
func (h *KPIHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orgID, ok := queryID(c, "organization_id")
	if !ok {
		return
	}

	kpis, total, err := h.kpiService.List(c.Request.Context(), services.KPIFilter{
		PaginationParams: params,
		OrganizationID:   orgID,
		Category:         models.KPICategory(c.Query("category")),
		Name:             c.Query("name"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, kpis, total, params)
}

// GET /kpis/:id
func (h *KPIHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "KPI")
	if !ok {
		return
	}

	kpi, err := h.kpiService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, kpi)
}

// GET /kpis/organization/:organizationId
func (h *KPIHandler) ByOrganization(c *gin.Context) {
	orgID, ok := paramID(c, "organizationId", "organization")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	kpis, total, err := h.kpiService.ByOrganization(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, kpis, total, params)
}

// GET /kpis/category/:category
func (h *KPIHandler) ByCategory(c *gin.Context) {
	orgID, ok := queryID(c, "organization_id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	kpis, total, err := h.kpiService.ByCategory(c.Request.Context(), models.KPICategory(c.Param("category")), orgID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, kpis, total, params)
}

// POST /kpis
func (h *KPIHandler) Create(c *gin.Context) {
	var req services.CreateKPIRequest
	if !bindJSON(c, &req) {
		return
	}

	kpi, err := h.kpiService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, kpi)
}

// PUT /kpis/:id
func (h *KPIHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "KPI")
	if !ok {
		return
	}

	var req services.UpdateKPIRequest
	if !bindJSON(c, &req) {
		return
	}

	kpi, err := h.kpiService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, kpi)
}

// DELETE /kpis/:id
func (h *KPIHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "KPI")
	if !ok {
		return
	}

	if err := h.kpiService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "KPI")
}

// GET /kpis/calculate/dcf/:organizationId
func (h *KPIHandler) CalculateDCF(c *gin.Context) {
	h.calculate(c, h.kpiService.DCFPercentage)
}

// GET /kpis/calculate/grievance-resolution/:organizationId
func (h *KPIHandler) CalculateGrievanceResolution(c *gin.Context) {
	h.calculate(c, h.kpiService.GrievanceResolutionRate)
}

// GET /kpis/calculate/supplier-sustainability/:organizationId
func (h *KPIHandler) CalculateSupplierSustainability(c *gin.Context) {
	h.calculate(c, h.kpiService.SupplierSustainabilityRate)
}

func (h *KPIHandler) calculate(c *gin.Context, fn func(context.Context, uuid.UUID) (*services.KPIResult, error)) {
	orgID, ok := paramID(c, "organizationId", "organization")
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}
