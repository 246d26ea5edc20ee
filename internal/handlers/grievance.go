// internal/handlers/grievance.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type GrievanceHandler struct {
	grievanceService *services.GrievanceService
}

func NewGrievanceHandler(grievanceService *services.GrievanceService) *GrievanceHandler {
	return &GrievanceHandler{
		grievanceService: grievanceService,
	}
}

// GET /grievances
func (h *GrievanceHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	supplierID, ok := queryID(c, "supplier_id")
	if !ok {
		return
	}

	grievances, total, err := h.grievanceService.List(c.Request.Context(), services.GrievanceFilter{
		PaginationParams: params,
		SupplierID:       supplierID,
		Status:           models.GrievanceStatus(c.Query("status")),
		Severity:         models.Severity(c.Query("severity")),
		Type:             models.GrievanceType(c.Query("type")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, grievances, total, params)
}

// GET /grievances/:id
func (h *GrievanceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "grievance")
	if !ok {
		return
	}

	grievance, err := h.grievanceService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, grievance)
}

// GET /grievances/supplier/:supplierId
func (h *GrievanceHandler) ListBySupplier(c *gin.Context) {
	supplierID, ok := paramID(c, "supplierId", "supplier")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	grievances, total, err := h.grievanceService.ListBySupplier(c.Request.Context(), supplierID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, grievances, total, params)
}

// GET /grievances/heatmap/data
func (h *GrievanceHandler) Heatmap(c *gin.Context) {
	points, err := h.grievanceService.Heatmap(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, points)
}

// POST /grievances
func (h *GrievanceHandler) Create(c *gin.Context) {
	var req services.CreateGrievanceRequest
	if !bindJSON(c, &req) {
		return
	}

	grievance, err := h.grievanceService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, grievance)
}

// PUT /grievances/:id
func (h *GrievanceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "grievance")
	if !ok {
		return
	}

	var req services.UpdateGrievanceRequest
	if !bindJSON(c, &req) {
		return
	}

	grievance, err := h.grievanceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, grievance)
}

// DELETE /grievances/:id
func (h *GrievanceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "grievance")
	if !ok {
		return
	}

	if err := h.grievanceService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Grievance")
}
