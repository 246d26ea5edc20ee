// internal/handlers/satellite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/sustainchain-backend/internal/i18n"
	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/services"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

type SatelliteHandler struct {
	satelliteService *services.SatelliteService
}

func NewSatelliteHandler(satelliteService *services.SatelliteService) *SatelliteHandler {
	return &SatelliteHandler{
		satelliteService: satelliteService,
	}
}

// GET /satellite
func (h *SatelliteHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	alerts, total, err := h.satelliteService.List(c.Request.Context(), services.AlertFilter{
		PaginationParams: params,
		Region:           c.Query("region"),
		Status:           models.AlertStatus(c.Query("status")),
		Severity:         models.Severity(c.Query("severity")),
		Type:             models.AlertType(c.Query("type")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, alerts, total, params)
}

// GET /satellite/:id
func (h *SatelliteHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "satellite alert")
	if !ok {
		return
	}

	alert, err := h.satelliteService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, alert)
}

// GET /satellite/region/:region
func (h *SatelliteHandler) ListByRegion(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	alerts, total, err := h.satelliteService.ListByRegion(c.Request.Context(), c.Param("region"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, alerts, total, params)
}

// POST /satellite
func (h *SatelliteHandler) Create(c *gin.Context) {
	var req services.CreateAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	alert, err := h.satelliteService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, alert)
}

// PUT /satellite/:id
func (h *SatelliteHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "satellite alert")
	if !ok {
		return
	}

	var req services.UpdateAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	alert, err := h.satelliteService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, alert)
}

// DELETE /satellite/:id
func (h *SatelliteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "satellite alert")
	if !ok {
		return
	}

	if err := h.satelliteService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, "Satellite alert")
}

// POST /satellite/generate-mock
func (h *SatelliteHandler) GenerateMock(c *gin.Context) {
	var req services.GenerateAlertsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	alerts, err := h.satelliteService.GenerateMock(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.T(c, i18n.KeySatelliteGenerated, len(alerts)),
		"alerts":  alerts,
	})
}
